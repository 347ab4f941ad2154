package controller

import (
	"errors"

	"go-shorturl-relay/types"
)

// User-facing messages for failed submissions.
const (
	MsgInvalidURLFormat   = "Invalid URL format"
	MsgInvalidExpiryRange = "Expiry days must be a whole number between 0 and 365"
	MsgTransport          = types.ErrorCreatingShortURL
)

// ErrSubmissionInFlight is returned when a submission is attempted while another is still
// waiting for the relay. The controller state is left untouched.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Kind classifies why a submission failed.
type Kind int

const (
	// KindInvalidURLFormat means the URL did not match the accepted grammar. No request was sent.
	KindInvalidURLFormat Kind = iota + 1
	// KindInvalidExpiryRange means the expiry was not a whole number in [0, 365]. No request was sent.
	KindInvalidExpiryRange
	// KindTransport means the relay could not be reached or answered with a non-success status.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURLFormat:
		return "invalid_url_format"
	case KindInvalidExpiryRange:
		return "invalid_expiry_range"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Validation reports whether the kind was raised locally before any network call.
func (k Kind) Validation() bool {
	return k == KindInvalidURLFormat || k == KindInvalidExpiryRange
}

// SubmissionError is a failed submission. Message is the fixed text shown to the user;
// Err holds the underlying transport cause, if any, and is never shown.
type SubmissionError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func newValidationError(kind Kind) *SubmissionError {
	msg := MsgInvalidURLFormat
	if kind == KindInvalidExpiryRange {
		msg = MsgInvalidExpiryRange
	}
	return &SubmissionError{Kind: kind, Message: msg}
}

func newTransportError(err error) *SubmissionError {
	return &SubmissionError{Kind: KindTransport, Message: MsgTransport, Err: err}
}
