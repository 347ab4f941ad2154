// Package types defines the data structures shared by the submission controller and the relay.
package types

import "encoding/json"

// RelayPath is the fixed local path of the relay.
const RelayPath = "/api/shorturl"

// ErrorCreatingShortURL is the generic message for any failure after validation.
// It is both the relay's only error payload and the controller's transport failure message.
const ErrorCreatingShortURL = "Error creating shortened URL"

// SubmissionRequest is the raw user input for one shortening attempt.
type SubmissionRequest struct {
	OriginalURL  string `json:"originalUrl" validate:"required,shorturl_target"`
	ExpiryInDays string `json:"expiryInDays" validate:"required,expiry_days"`
}

// NormalizedRequest is a validated SubmissionRequest with the URL scheme stripped.
// It is the body the controller sends to the relay.
type NormalizedRequest struct {
	OriginalURL  string `json:"originalUrl"`
	ExpiryInDays string `json:"expiryInDays"`
}

// RelayRequest is the body accepted by the relay. ExpiryInDays is kept raw so that
// both string and number values are forwarded untouched.
type RelayRequest struct {
	OriginalURL  string          `json:"originalUrl"`
	ExpiryInDays json.RawMessage `json:"expiryInDays"`
}

// UpstreamResponse is a successful reply from the remote shortening service.
type UpstreamResponse struct {
	Body        []byte
	ContentType string
}

// ErrorResponse is the single error payload the relay ever returns.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Status is a state of the submission lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusValidating:
		return "validating"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SubmissionResult is the observable outcome of a submission attempt.
// ShortToken is set only when Status is StatusSucceeded and ErrorMessage only
// when Status is StatusFailed.
type SubmissionResult struct {
	Status       Status
	ShortToken   string
	ErrorMessage string
}
