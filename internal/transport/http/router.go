package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the authenticated appointment routes. Sessions and file
// uploads are served elsewhere; this process only books, lists and cancels.
func NewRouter(h *AppointmentsHandler, jwtSecret string, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestLog(log))

	authed := r.Group("/", Auth(jwtSecret))
	authed.POST("/appointments", h.Create)
	authed.GET("/appointments", h.List)
	authed.DELETE("/appointments/:id", h.Cancel)
	authed.GET("/providers", h.ListProviders)

	return r
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug(
			"request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("took", time.Since(start)),
		)
	}
}
