/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates the logic for decoding JSON bodies and integrates error handling to ensure
data format correctness and size constraints, facilitating subsequent business logic processing.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"usergraph/internal/pkg/errs"
)

// MaxRequestBodySize defines the maximum allowed size (1 MB) for a JSON request body.
// This limit is enforced via http.MaxBytesReader.
const MaxRequestBodySize int64 = 1 << 20

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
// Unknown fields, trailing content and bodies above MaxRequestBodySize are rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	return bindJSON(w, r, dst, true)
}

// BindJSONAllowUnknown is BindJSON for protocols whose clients may send keys dst does not
// declare (for example GraphQL persisted query ids). Unknown keys are ignored.
func BindJSONAllowUnknown(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	return bindJSON(w, r, dst, false)
}

func bindJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	decoder := json.NewDecoder(r.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}

	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
