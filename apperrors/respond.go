package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Respond writes err as a JSON error response and aborts the gin chain.
// Internal causes are logged, never sent to the client.
func Respond(c *gin.Context, err error) {
	appErr := As(err)
	status := appErr.HTTPStatus()

	attrs := []any{
		"kind", appErr.Kind,
		"status", status,
		"method", c.Request.Method,
		"path", c.FullPath(),
	}
	if author := c.GetString("username"); author != "" {
		attrs = append(attrs, "author", author)
	}
	if appErr.Cause != nil {
		attrs = append(attrs, "error", appErr.Cause)
	}

	if appErr.Kind == KindInternal {
		slog.ErrorContext(c.Request.Context(), appErr.Message, attrs...)
	} else {
		slog.DebugContext(c.Request.Context(), appErr.Message, attrs...)
	}

	_ = c.Error(appErr)
	c.AbortWithStatusJSON(status, ErrorResponse{Message: appErr.Message})
}
