package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yangsb/account-ledger/internal/apperrors"
	"github.com/yangsb/account-ledger/internal/middleware"
)

// errorResponse is the uniform error body for every failed request.
type errorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// respondError maps an application error to its HTTP status and writes the
// uniform error body. Unknown errors are reported as internal without leaking
// their details to the client.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unhandled error in handler", slog.String("error", err.Error()))
		appErr = apperrors.ErrInternal
	}

	status := statusForCode(appErr.Code)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error_code", appErr.Code), slog.String("error", err.Error()))
	} else {
		logger.Info("Request rejected", slog.String("error_code", appErr.Code), slog.Int("status", status))
	}

	c.JSON(status, errorResponse{
		ErrorCode:    appErr.Code,
		ErrorMessage: appErr.Message,
	})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Invalid request payload", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, errorResponse{
		ErrorCode:    apperrors.ErrInvalidRequest.Code,
		ErrorMessage: apperrors.ErrInvalidRequest.Message,
	})
}

func statusForCode(code string) int {
	switch code {
	case apperrors.ErrUserNotFound.Code,
		apperrors.ErrAccountNotFound.Code,
		apperrors.ErrTransactionNotFound.Code:
		return http.StatusNotFound
	case apperrors.ErrLockTimeout.Code:
		return http.StatusConflict
	case apperrors.ErrInternal.Code:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
