package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rwalend/core"

	"github.com/stretchr/testify/require"
	"github.com/twitchtv/twirp"
)

func TestErr(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{core.ErrUnauthorized, http.StatusUnauthorized, 100001},
		{core.ErrAuctionNotFound, http.StatusNotFound, 100101},
		{core.ErrItemExists, http.StatusBadRequest, 100207},
		{core.ErrBidTooLow, http.StatusBadRequest, 100301},
		{twirp.NotFoundError("not found"), http.StatusNotFound, -1},
		{errors.New("boom"), http.StatusInternalServerError, 100000},
	}

	for _, c := range cases {
		w := httptest.NewRecorder()
		Err(w, c.err)
		require.Equal(t, c.status, w.Code, c.err.Error())

		var body struct {
			Code int `json:"code"`
		}
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, c.code, body.Code, c.err.Error())
	}
}
