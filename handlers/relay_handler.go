// Package handlers provides HTTP request handlers for the short URL relay.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-shorturl-relay/config"
	"go-shorturl-relay/metrics"
	"go-shorturl-relay/services"
	"go-shorturl-relay/types"
)

// RelayHandlerInterface defines the methods that a relay handler should implement.
type RelayHandlerInterface interface {
	ShortenURL(c *gin.Context)
	HealthCheck(c *gin.Context)
}

// RelayHandler struct holds the dependencies for relaying shortening requests.
type RelayHandler struct {
	service services.RelayService
	config  *config.Config
	metrics *metrics.Relay
	logger  *zap.Logger
}

// NewRelayHandler creates and returns a new RelayHandler instance.
// m may be nil, in which case nothing is recorded.
func NewRelayHandler(ctx context.Context, service services.RelayService, cfg *config.Config, m *metrics.Relay, logger *zap.Logger) (RelayHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	handler := &RelayHandler{
		service: service,
		config:  cfg,
		metrics: m,
		logger:  logger,
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// ShortenURL relays a creation request to the remote shortening service.
// The remote success body is returned verbatim with 200; every failure yields the
// fixed error payload with 500 and the cause is only logged.
func (h *RelayHandler) ShortenURL(c *gin.Context) {
	ctx := c.Request.Context()
	if h.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.RequestTimeout)
		defer cancel()
	}

	var input types.RelayRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Error decoding request body", zap.Error(err), zap.String("request_id", requestID(c)))
		h.fail(c)
		return
	}

	resp, err := h.service.CreateShortURL(ctx, input)
	if err != nil {
		h.logger.Error("Error relaying short URL request",
			zap.Error(err),
			zap.String("original_url", input.OriginalURL),
			zap.String("request_id", requestID(c)))
		h.fail(c)
		return
	}

	h.metrics.ObserveRequest(metrics.OutcomeSuccess)
	h.logger.Info("Short URL request relayed",
		zap.String("original_url", input.OriginalURL),
		zap.String("request_id", requestID(c)))
	c.Data(http.StatusOK, resp.ContentType, resp.Body)
}

func (h *RelayHandler) fail(c *gin.Context) {
	h.metrics.ObserveRequest(metrics.OutcomeFailure)
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{Message: types.ErrorCreatingShortURL})
}
