package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"go-shorturl-relay/metrics"
	"go-shorturl-relay/types"
	"go-shorturl-relay/upstream"
)

// ErrRelayUpstream is returned for every failure to obtain a short token from the remote
// service. The wrapped cause is for logs only and never reaches the client.
var ErrRelayUpstream = errors.New("error creating shortened URL")

func handleUpstreamError(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: circuit open: %v", ErrRelayUpstream, err)
	case errors.Is(err, upstream.ErrUpstreamUnavailable),
		errors.Is(err, upstream.ErrUpstreamStatus),
		errors.Is(err, upstream.ErrMalformedResponse),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrRelayUpstream, err)
	default:
		return fmt.Errorf("%w: unexpected: %v", ErrRelayUpstream, err)
	}
}

// RelayService forwards creation requests to the remote shortening service.
type RelayService interface {
	CreateShortURL(ctx context.Context, req types.RelayRequest) (types.UpstreamResponse, error)
}

// BreakerSettings configures the circuit breaker around upstream calls.
// MaxFailures of zero disables the breaker.
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

type relayService struct {
	client  upstream.Client
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Relay
	logger  *zap.Logger
}

// NewRelayService creates a RelayService on top of client. m may be nil.
func NewRelayService(client upstream.Client, settings BreakerSettings, m *metrics.Relay, logger *zap.Logger) RelayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &relayService{client: client, metrics: m, logger: logger}
	if settings.MaxFailures > 0 {
		s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "remote-shortener",
			Timeout: settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= settings.MaxFailures
			},
			// Caller cancellations do not count against the remote.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		})
	}
	return s
}

func (s *relayService) CreateShortURL(ctx context.Context, req types.RelayRequest) (types.UpstreamResponse, error) {
	// Only the two contract fields are forwarded.
	payload, err := json.Marshal(req)
	if err != nil {
		return types.UpstreamResponse{}, handleUpstreamError(err)
	}

	start := time.Now()
	resp, err := s.call(ctx, payload)
	s.metrics.ObserveUpstream(time.Since(start))
	if err != nil {
		return types.UpstreamResponse{}, handleUpstreamError(err)
	}
	return resp, nil
}

func (s *relayService) call(ctx context.Context, payload []byte) (types.UpstreamResponse, error) {
	if s.breaker == nil {
		return s.client.CreateShortURL(ctx, payload)
	}
	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.client.CreateShortURL(ctx, payload)
	})
	if err != nil {
		return types.UpstreamResponse{}, err
	}
	return out.(types.UpstreamResponse), nil
}
