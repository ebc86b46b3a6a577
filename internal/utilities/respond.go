package utilities

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
)

// RespondError writes err as an ErrorResponse with the status of its kind.
// Causes of internal errors are logged, never returned to the client.
func RespondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	msg := err.Error()

	if kind == apperror.KindInternal {
		slog.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("error", err))

		msg = "Internal server error"
		var appErr *apperror.Error
		if errors.As(err, &appErr) && appErr.Message != "" {
			msg = appErr.Message
		}
	}

	c.AbortWithStatusJSON(apperror.HTTPStatus(kind), ErrorResponse{
		Error: msg,
		Kind:  string(kind),
	})
}
