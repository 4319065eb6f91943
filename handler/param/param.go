package param

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/spf13/cast"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

// Binding bind query values or the json body into v
func Binding(r *http.Request, v interface{}) error {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return decoder.Decode(v, r.URL.Query())
	default:
		defer r.Body.Close()
		return json.NewDecoder(r.Body).Decode(v)
	}
}

// Int read an integer query value, zero on absence or garbage
func Int(r *http.Request, key string) int {
	return cast.ToInt(r.URL.Query().Get(key))
}
