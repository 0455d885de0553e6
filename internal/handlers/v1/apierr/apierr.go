// Package apierr maps domain errors onto HTTP status codes for the v1
// handlers.
package apierr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
)

// Map converts a domain error into a huma error with the right status.
// Unrecognized errors become a 500 carrying msg.
func Map(err error, msg string) error {
	switch {
	case errors.Is(err, finance.ErrValidation):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, finance.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, finance.ErrConflict):
		return huma.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, finance.ErrInsufficientFunds):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, finance.ErrAlreadyProcessed):
		return huma.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, finance.ErrRateLimited):
		return huma.NewError(http.StatusTooManyRequests, err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, msg, err)
}

// ParseUserID parses the X-User-ID header value every endpoint carries.
func ParseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-User-ID header", err)
	}
	return id, nil
}

// ParseID parses a path or body UUID, naming the field on failure.
func ParseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}
