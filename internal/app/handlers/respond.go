package handlers

import (
	"errors"
	"net/http"

	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/models"

	"github.com/gin-gonic/gin"
)

func statusForCode(code string) int {
	switch code {
	case models.ErrCodeNotFound:
		return http.StatusNotFound
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case models.ErrCodeForbidden:
		return http.StatusForbidden
	case models.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	var customErr models.CustomError
	if errors.As(err, &customErr) {
		if customErr.Code == models.ErrCodeInternal {
			logger.CtxError(c.Request.Context(), "Request failed", err)
		}
		c.JSON(statusForCode(customErr.Code), models.APIResponse{
			Success: false,
			Message: customErr.Message,
		})
		return
	}

	logger.CtxError(c.Request.Context(), "Request failed", err)
	c.JSON(http.StatusInternalServerError, models.APIResponse{
		Success: false,
		Message: "internal server error",
	})
}

func writeSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
