// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the request/response encoding helpers shared
// by the feature handlers. All responses are JSON; errors are rendered
// as {"message": "..."} with the status taken from the apperr kind.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusconnect/campushub/internal/app/system/apperr"
)

// maxBodyBytes caps request bodies; attendance sheets for large events
// stay well under this.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Message string `json:"message"`
}

// Write encodes v with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err as a JSON error body. The status comes from
// the apperr kind in the chain; unclassified errors become 500 with a
// generic message so internals are not leaked.
func WriteError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	msg := "internal server error"
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	Write(w, apperr.HTTPStatus(kind), errorBody{Message: msg})
}

// Decode reads the request body into dst, rejecting unknown fields and
// oversized bodies.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.ValidationFailed, "malformed request body", err)
	}
	return nil
}
