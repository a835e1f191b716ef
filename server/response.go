package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/logger"
)

// RespondWithError derives status and body from an AppError; anything else
// becomes a generic 500. Server-side failures are logged.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.Wrap(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.GetGlobalLogger().WithContext(c.Request.Context()).Error("request failed", logger.Fields(
			logger.FieldError, err.Error(),
			"code", string(appErr.Code),
			"path", c.Request.URL.Path,
		))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
