package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
)

// respondError writes the error response. Errors that reach the client as a
// 500 are logged with their detail first.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if apierrors.StatusFor(apierrors.KindOf(err)) >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	apierrors.Respond(c, err)
}

// bindJSON decodes the request body into req. A value of the wrong JSON type
// is reported against its field like any other validation failure.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{
			typeErr.Field: "is invalid",
		})
		return false
	}

	apierrors.BadRequest(c, "Invalid request body")
	return false
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
