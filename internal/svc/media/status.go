// If you are AI: This file maps library and container errors to HTTP statuses.

package media

import (
	"errors"
	"net/http"

	"flvkit/internal/core/protocol/flv"
)

// StatusOf returns the HTTP status for a library or container error.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadName):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, flv.ErrNotFLV), errors.Is(err, flv.ErrOpenRead):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
