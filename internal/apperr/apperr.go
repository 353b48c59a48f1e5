// Package apperr defines the error taxonomy shared by services and the
// request layer. Services wrap these sentinels with context; handlers map
// them to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrForbidden    = fmt.Errorf("forbidden")
	ErrConflict     = fmt.Errorf("conflict")
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrInternal     = fmt.Errorf("internal error")
)

// StatusCode maps an error to its HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrInvalidInput):
		return 400
	default:
		return 500
	}
}
