package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-shorturl-relay/config"
	"go-shorturl-relay/metrics"
	"go-shorturl-relay/services"
	"go-shorturl-relay/services/mocks"
	"go-shorturl-relay/types"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}

func TestNewRelayHandler(t *testing.T) {
	tests := []struct {
		name        string
		service     services.RelayService
		cfg         *config.Config
		logger      *zap.Logger
		expectedErr string
	}{
		{
			name:    "Valid configuration",
			service: &mocks.MockRelayService{},
			cfg:     testConfig(),
			logger:  zap.NewNop(),
		},
		{
			name:        "Nil service",
			service:     nil,
			cfg:         testConfig(),
			logger:      zap.NewNop(),
			expectedErr: "service cannot be nil",
		},
		{
			name:        "Nil config",
			service:     &mocks.MockRelayService{},
			cfg:         nil,
			logger:      zap.NewNop(),
			expectedErr: "config cannot be nil",
		},
		{
			name:        "Nil logger",
			service:     &mocks.MockRelayService{},
			cfg:         testConfig(),
			logger:      nil,
			expectedErr: "logger cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewRelayHandler(context.Background(), tt.service, tt.cfg, nil, tt.logger)

			if tt.expectedErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, handler)
				return
			}
			require.NoError(t, err)

			concreteHandler, ok := handler.(*RelayHandler)
			require.True(t, ok, "Handler is not of type *RelayHandler")
			assert.Equal(t, tt.service, concreteHandler.service)
			assert.Equal(t, tt.cfg, concreteHandler.config)
			assert.Equal(t, tt.logger, concreteHandler.logger)
		})
	}
}

func TestNewRelayHandlerWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	handler, err := NewRelayHandler(ctx, &mocks.MockRelayService{}, testConfig(), nil, zap.NewNop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
	assert.Nil(t, handler)
}

func TestShortenURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name                string
		body                string
		expectedRequest     *types.RelayRequest
		serviceResponse     types.UpstreamResponse
		serviceErr          error
		expectedStatus      int
		expectedBody        string
		expectedContentType string
	}{
		{
			name:                "Token relayed verbatim",
			body:                `{"originalUrl":"example.com/path","expiryInDays":"30"}`,
			expectedRequest:     &types.RelayRequest{OriginalURL: "example.com/path", ExpiryInDays: json.RawMessage(`"30"`)},
			serviceResponse:     types.UpstreamResponse{Body: []byte(`"abc123"`), ContentType: "application/json; charset=utf-8"},
			expectedStatus:      http.StatusOK,
			expectedBody:        `"abc123"`,
			expectedContentType: "application/json; charset=utf-8",
		},
		{
			name:                "Numeric expiry and object body",
			body:                `{"originalUrl":"example.com","expiryInDays":7}`,
			expectedRequest:     &types.RelayRequest{OriginalURL: "example.com", ExpiryInDays: json.RawMessage(`7`)},
			serviceResponse:     types.UpstreamResponse{Body: []byte(`{"shortCode":"xyz"}`), ContentType: "application/json"},
			expectedStatus:      http.StatusOK,
			expectedBody:        `{"shortCode":"xyz"}`,
			expectedContentType: "application/json",
		},
		{
			name:                "Plain text body",
			body:                `{"originalUrl":"example.com","expiryInDays":"0"}`,
			expectedRequest:     &types.RelayRequest{OriginalURL: "example.com", ExpiryInDays: json.RawMessage(`"0"`)},
			serviceResponse:     types.UpstreamResponse{Body: []byte("abc123"), ContentType: "text/plain"},
			expectedStatus:      http.StatusOK,
			expectedBody:        "abc123",
			expectedContentType: "text/plain",
		},
		{
			name:            "Upstream failure is not leaked",
			body:            `{"originalUrl":"example.com","expiryInDays":"30"}`,
			expectedRequest: &types.RelayRequest{OriginalURL: "example.com", ExpiryInDays: json.RawMessage(`"30"`)},
			serviceErr:      fmt.Errorf("%w: dial tcp 10.0.0.7:443: connection refused", services.ErrRelayUpstream),
			expectedStatus:  http.StatusInternalServerError,
			expectedBody:    `{"message":"Error creating shortened URL"}`,
		},
		{
			name:           "Invalid JSON body",
			body:           "invalid json",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Error creating shortened URL"}`,
		},
		{
			name:           "Empty body",
			body:           "",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Error creating shortened URL"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.MockRelayService)
			if tt.expectedRequest != nil {
				service.On("CreateShortURL", mock.Anything, *tt.expectedRequest).Return(tt.serviceResponse, tt.serviceErr).Once()
			}

			reg := prometheus.NewRegistry()
			m := metrics.NewRelay(reg)
			handler, err := NewRelayHandler(context.Background(), service, testConfig(), m, zap.NewNop())
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			c.Request, _ = http.NewRequest(http.MethodPost, types.RelayPath, bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			handler.ShortenURL(c)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedBody, rr.Body.String())
				assert.Equal(t, tt.expectedContentType, rr.Header().Get("Content-Type"))
				assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests(metrics.OutcomeSuccess)))
			} else {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
				assert.NotContains(t, rr.Body.String(), "10.0.0.7")
				assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests(metrics.OutcomeFailure)))
			}

			if tt.expectedRequest == nil {
				service.AssertNotCalled(t, "CreateShortURL", mock.Anything, mock.Anything)
			} else {
				service.AssertExpectations(t)
			}
		})
	}
}

func TestShortenURLAppliesRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.RequestTimeout = 2 * time.Second

	service := new(mocks.MockRelayService)
	service.On("CreateShortURL", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= cfg.RequestTimeout
	}), mock.Anything).Return(types.UpstreamResponse{Body: []byte(`"t"`), ContentType: "application/json"}, nil).Once()

	handler, err := NewRelayHandler(context.Background(), service, cfg, nil, zap.NewNop())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request, _ = http.NewRequest(http.MethodPost, types.RelayPath, bytes.NewBufferString(`{"originalUrl":"a.co","expiryInDays":"1"}`))

	handler.ShortenURL(c)

	assert.Equal(t, http.StatusOK, rr.Code)
	service.AssertExpectations(t)
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler, err := NewRelayHandler(context.Background(), &mocks.MockRelayService{}, testConfig(), nil, zap.NewNop())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request, _ = http.NewRequest(http.MethodGet, "/health", nil)

	handler.HealthCheck(c)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}
