package http

import (
	"errors"
	"net/http"

	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps a use case error to the HTTP status it is reported with.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errNoActor):
		return http.StatusUnauthorized
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrIllegalTransition), errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. Details of 5xx errors stay in the log.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = http.StatusText(status)
	}
	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
