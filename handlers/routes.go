package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-shorturl-relay/types"
)

// RegisterRoutes sets up all the routes for the relay.
// metricsHandler may be nil, in which case /metrics is not exposed.
func RegisterRoutes(r *gin.Engine, handler RelayHandlerInterface, metricsHandler http.Handler, logger *zap.Logger) {
	r.Use(RequestIDMiddleware(), LoggingMiddleware(logger), CORSMiddleware())

	r.POST(types.RelayPath, handler.ShortenURL)
	r.GET("/health", handler.HealthCheck)

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}
}
