package web

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine serving /api/v1.
func NewRouter(api *API, dev bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog(api.logger()))
	if dev {
		r.Use(DevCORS())
	}
	RegisterAPIV1(r, api)
	return r
}

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(r gin.IRouter, api *API) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", api.health)
		v1.GET("/topics", api.topics)
		v1.GET("/poster/:kind/:topic", api.poster)
	}
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	}
}
