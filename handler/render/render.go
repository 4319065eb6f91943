package render

import (
	"encoding/json"
	"net/http"

	"rwalend/core"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorln(err)
	}
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(t)); err != nil {
		logrus.Errorln(err)
	}
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(H{"code": errCode, "msg": err.Error()}); err != nil {
		logrus.Errorln(err)
	}
}

// Err write a service error with its protocol code and a matching
// http status
func Err(w http.ResponseWriter, err error) {
	if code, ok := err.(core.ErrorCode); ok {
		Error(w, httpStatus(code), int(code), code)
		return
	}

	if terr, ok := err.(twirp.Error); ok {
		Error(w, twirp.ServerHTTPStatusFromErrorCode(terr.Code()), -1, terr)
		return
	}

	Error(w, http.StatusInternalServerError, int(core.ErrUnknown), err)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

func httpStatus(code core.ErrorCode) int {
	switch code {
	case core.ErrUnauthorized, core.ErrNotOwner:
		return http.StatusUnauthorized
	case core.ErrPositionNotFound, core.ErrAuctionNotFound, core.ErrItemNotFound, core.ErrPriceNotAvailable:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
