package middleware

import (
	"log/slog"
	"net/http"

	"parcel/internal/delivery/http/response"
	domainerrors "parcel/internal/domain/errors"
	"parcel/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// notFoundSentinels are repository errors that surface as plain 404s
// without an AppError wrapper.
var notFoundSentinels = []error{
	repository.ErrOrderNotFound,
	repository.ErrCourierNotFound,
	repository.ErrDriverNotFound,
	repository.ErrPricingNotFound,
	repository.ErrProfileNotFound,
	repository.ErrAdminNotFound,
	repository.ErrPaymentMethodNotFound,
	repository.ErrRoomNotFound,
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPCode(), response.Response{
			Success: false,
			Code:    appErr.HTTPCode(),
			Message: appErr.Message(),
			Error: &response.ErrorInfo{
				Code:    appErr.ErrorCode(),
				Details: appErr.Details(),
			},
		})

		return
	}

	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			response.NotFound(c, "NOT_FOUND", sentinel.Error())

			return
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			message = s
		}
		response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err.Error())
}
