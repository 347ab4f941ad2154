package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"go-shorturl-relay/types"
)

// ErrRelayStatus is returned by RelayClient when the relay answers with a non-success status.
var ErrRelayStatus = errors.New("relay returned non-success status")

// Transport delivers a normalized request to the relay and returns the raw success body.
type Transport interface {
	Shorten(ctx context.Context, req types.NormalizedRequest) ([]byte, error)
}

// RelayClient is the HTTP Transport to the relay's fixed local path.
type RelayClient struct {
	http     *resty.Client
	endpoint string
}

// NewRelayClient creates a transport for the relay at relayBaseURL. A zero timeout leaves
// the call bounded only by the caller's context.
func NewRelayClient(relayBaseURL string, timeout time.Duration) *RelayClient {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &RelayClient{
		http:     client,
		endpoint: strings.TrimRight(relayBaseURL, "/") + types.RelayPath,
	}
}

// Shorten posts req as JSON and returns the relay's body on a 2xx response.
func (c *RelayClient) Shorten(ctx context.Context, req types.NormalizedRequest) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(req).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("relay request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %d", ErrRelayStatus, resp.StatusCode())
	}
	return resp.Body(), nil
}
