// Package controller implements the submission lifecycle of a short URL request:
// local validation, normalization, a single relay call, and the resulting state.
//
// A Controller is the Go counterpart of one shortening form. It moves through
// Idle → Validating → Submitting → Succeeded | Failed and never has more than one
// request in flight.
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-shorturl-relay/types"
	"go-shorturl-relay/upstream"
)

// Controller owns the state of one submission form.
type Controller struct {
	transport     Transport
	remoteBaseURL string
	validate      *validator.Validate
	logger        *zap.Logger

	mu     sync.Mutex
	result types.SubmissionResult
}

// New creates a Controller in the Idle state. remoteBaseURL is the remote shortening
// service used to build links; it is never called directly.
func New(transport Transport, remoteBaseURL string, logger *zap.Logger) (*Controller, error) {
	if transport == nil {
		return nil, errors.New("transport cannot be nil")
	}
	if remoteBaseURL == "" {
		return nil, errors.New("remote base URL cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		transport:     transport,
		remoteBaseURL: strings.TrimRight(remoteBaseURL, "/"),
		validate:      newValidator(),
		logger:        logger,
		result:        types.SubmissionResult{Status: types.StatusIdle},
	}, nil
}

// Submit runs one shortening attempt and returns its final result. Validation happens
// before any network call; on success the returned error is nil, otherwise it is a
// *SubmissionError. If an attempt is already in flight Submit returns
// ErrSubmissionInFlight without touching the state.
func (c *Controller) Submit(ctx context.Context, req types.SubmissionRequest) (types.SubmissionResult, error) {
	c.mu.Lock()
	if c.result.Status == types.StatusSubmitting {
		c.mu.Unlock()
		c.logger.Debug("Submission rejected while another is in flight")
		return types.SubmissionResult{Status: types.StatusSubmitting}, ErrSubmissionInFlight
	}

	// The previous result and link are cleared before anything else happens.
	c.result = types.SubmissionResult{Status: types.StatusValidating}

	if verr := validateRequest(c.validate, req); verr != nil {
		c.result = types.SubmissionResult{Status: types.StatusFailed, ErrorMessage: verr.Message}
		result := c.result
		c.mu.Unlock()
		c.logger.Info("Submission failed validation",
			zap.String("kind", verr.Kind.String()),
			zap.String("original_url", req.OriginalURL),
			zap.String("expiry_in_days", req.ExpiryInDays))
		return result, verr
	}

	normalized := Normalize(req)
	c.result = types.SubmissionResult{Status: types.StatusSubmitting}
	c.mu.Unlock()

	c.logger.Debug("Submitting to relay",
		zap.String("original_url", normalized.OriginalURL),
		zap.String("expiry_in_days", normalized.ExpiryInDays))

	body, err := c.shorten(ctx, normalized)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		terr := newTransportError(err)
		c.result = types.SubmissionResult{Status: types.StatusFailed, ErrorMessage: terr.Message}
		c.logger.Warn("Submission failed", zap.Error(err))
		return c.result, terr
	}

	c.result = types.SubmissionResult{Status: types.StatusSucceeded, ShortToken: extractToken(body)}
	c.logger.Info("Submission succeeded", zap.String("short_token", c.result.ShortToken))
	return c.result, nil
}

// shorten calls the transport and turns a panic into an error so the controller
// never stays in Submitting.
func (c *Controller) shorten(ctx context.Context, req types.NormalizedRequest) (body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transport panicked: %v", r)
		}
	}()
	return c.transport.Shorten(ctx, req)
}

// Result returns a snapshot of the current state.
func (c *Controller) Result() types.SubmissionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Status returns the current lifecycle state.
func (c *Controller) Status() types.Status {
	return c.Result().Status
}

// Busy reports whether a submission is in flight; a form should disable its submit
// control while this is true.
func (c *Controller) Busy() bool {
	return c.Status() == types.StatusSubmitting
}

// ShortLink returns the user-facing link for the current token, or "" when the last
// attempt did not succeed or produced no token.
func (c *Controller) ShortLink() string {
	result := c.Result()
	if result.Status != types.StatusSucceeded || result.ShortToken == "" {
		return ""
	}
	return BuildShortLink(c.remoteBaseURL, result.ShortToken)
}

// Reset returns the controller to Idle, discarding the last result. It fails with
// ErrSubmissionInFlight while a submission is running.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result.Status == types.StatusSubmitting {
		return ErrSubmissionInFlight
	}
	c.result = types.SubmissionResult{Status: types.StatusIdle}
	return nil
}

// BuildShortLink concatenates the remote redirect path and token.
func BuildShortLink(remoteBaseURL, token string) string {
	return strings.TrimRight(remoteBaseURL, "/") + upstream.RedirectPath + token
}

// extractToken unquotes a JSON string body and otherwise keeps the body as is.
func extractToken(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	return string(trimmed)
}
