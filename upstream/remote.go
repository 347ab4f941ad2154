package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"go-shorturl-relay/types"
)

const defaultContentType = "application/json; charset=utf-8"

// RemoteClient implements Client over HTTP using resty.
type RemoteClient struct {
	http    *resty.Client
	baseURL string
	logger  *zap.Logger
}

// NewRemoteClient creates a client for the service at baseURL. A zero timeout
// leaves the call unbounded apart from the caller's context.
func NewRemoteClient(baseURL string, timeout time.Duration, logger *zap.Logger) *RemoteClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &RemoteClient{
		http:    client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// CreateShortURL posts payload to the remote creation endpoint and returns its body verbatim.
func (c *RemoteClient) CreateShortURL(ctx context.Context, payload []byte) (types.UpstreamResponse, error) {
	select {
	case <-ctx.Done():
		c.logger.Warn("Create operation cancelled before dispatch")
		return types.UpstreamResponse{}, ctx.Err()
	default:
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(payload).
		Post(c.baseURL + CreatePath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Info("Create operation cancelled by caller",
				zap.Error(ctxErr),
				zap.Duration("elapsed", time.Since(start)))
			return types.UpstreamResponse{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, ctxErr)
		}
		c.logger.Warn("Remote shortening service unreachable",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
		return types.UpstreamResponse{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	if !resp.IsSuccess() {
		c.logger.Warn("Remote shortening service rejected request",
			zap.Int("status", resp.StatusCode()),
			zap.Duration("elapsed", time.Since(start)))
		return types.UpstreamResponse{}, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode())
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")
	if err := checkBody(body, contentType); err != nil {
		c.logger.Warn("Remote shortening service returned malformed body",
			zap.String("contentType", contentType),
			zap.Int("size", len(body)))
		return types.UpstreamResponse{}, err
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	c.logger.Debug("Remote shortening service responded",
		zap.Int("status", resp.StatusCode()),
		zap.Int("size", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return types.UpstreamResponse{Body: body, ContentType: contentType}, nil
}

// checkBody rejects empty bodies and bodies that claim to be JSON but are not.
func checkBody(body []byte, contentType string) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	if isJSON(contentType) && !json.Valid(body) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	return nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
