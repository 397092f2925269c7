// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the small response helpers every handler in
// the API uses. Bodies always carry a stable "message" field on error
// so clients can rely on its shape.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"message": msg} with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, map[string]string{"message": msg})
}

// Decode parses the request body into v. It enforces a modest size cap
// and rejects unknown fields so typos surface as 400s instead of being
// silently dropped.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
