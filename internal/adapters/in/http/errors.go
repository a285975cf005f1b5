package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFromError maps domain and application errors onto HTTP status codes.
// A definitive provider rejection maps to 422 because the failed state was
// persisted; a transport failure maps to 503 because nothing changed and the
// caller should retry.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, commands.ErrDimensionSourceIsAmbiguous),
		errors.Is(err, commands.ErrDimensionEditIsAmbiguous):
		return http.StatusBadRequest

	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrStaleQuote),
		errors.Is(err, ports.ErrConcurrentModification),
		errors.Is(err, commands.ErrPurchaseAttemptInFlight):
		return http.StatusConflict

	case errors.Is(err, errs.ErrNoQuoteSelected),
		errors.Is(err, errs.ErrProviderRejected):
		return http.StatusUnprocessableEntity

	case errors.Is(err, errs.ErrProviderUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error envelope for err.
func respondError(ctx echo.Context, err error) error {
	status := statusFromError(err)
	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

// respondBadRequest writes a 400 with an explicit message, used for body and
// path parsing failures before a command exists.
func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
