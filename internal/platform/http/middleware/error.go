// Package middleware provides the Gin middleware shared by every route.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dalfonso062004/gestion-productos/internal/shared/apperror"
)

// MsgInternal is the body message for errors that carry no client-facing kind.
const MsgInternal = "Error interno del servidor"

// MsgRouteNotFound is returned for unknown routes.
const MsgRouteNotFound = "Ruta no encontrada"

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Message string `json:"mensaje"`
}

// ErrorHandler translates the last error recorded with c.Error into a JSON response.
// The status comes from the error kind; errors without a kind become 500 and their
// details are only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		ae, ok := apperror.As(err)
		if !ok || ae.Kind == apperror.KindInternal {
			slog.Error("request failed",
				"error", err,
				"method", c.Request.Method,
				"path", c.FullPath(),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: MsgInternal})
			return
		}

		if ae.Kind == apperror.KindUnauthorized {
			slog.Warn("request unauthorized",
				"reason", ae.Message,
				"path", c.FullPath(),
				"remote_addr", c.ClientIP(),
			)
		}
		c.AbortWithStatusJSON(ae.Kind.Status(), ErrorResponse{Message: ae.Message})
	}
}

// NoRoute answers unknown routes with the standard error body.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: MsgRouteNotFound})
}
