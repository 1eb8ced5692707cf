package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrOrderPlacementFailed),
		errors.Is(err, commands.ErrAssignmentFailed),
		errors.Is(err, commands.ErrDeliveryCreationFailed):
		return http.StatusInternalServerError
	case errors.Is(err, commands.ErrEmptyCart), errs.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, delivery.ErrInvalidState),
		errors.Is(err, commands.ErrDeliveryAlreadyActive),
		errors.Is(err, commands.ErrPlacementInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. 5xx responses carry a generic message;
// the cause goes to the log together with attrs.
func (s *Server) fail(ctx echo.Context, operation string, err error, attrs ...any) error {
	status := statusFor(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			append([]any{"operation", operation, "error", err}, attrs...)...)
		message = internalErrorMessage
	}

	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}
