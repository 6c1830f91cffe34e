package v1

import (
	"mime"
	"net/http"
)

const jsonMediaType = "application/json"

// requireJSON answers 415 unless the body is declared as JSON. Parameters
// such as charset are accepted.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != jsonMediaType {
		writeErr(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", "unsupported_media_type")
		return false
	}
	return true
}
