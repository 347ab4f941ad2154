// Package upstream provides the client for the remote shortening service and its common errors.
package upstream

import (
	"context"
	"errors"

	"go-shorturl-relay/types"
)

// CreatePath is the creation endpoint of the remote shortening service.
const CreatePath = "/api/ShortUrl"

// RedirectPath is the redirect resolution prefix of the remote shortening service.
// It is only used to build links, never called.
const RedirectPath = "/api/ShortUrl/rd/"

// Common errors returned by upstream operations.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamStatus      = errors.New("upstream returned non-success status")
	ErrMalformedResponse   = errors.New("upstream returned malformed response")
)

// Client defines the operations the relay needs from the remote shortening service.
type Client interface {
	CreateShortURL(ctx context.Context, payload []byte) (types.UpstreamResponse, error)
}
