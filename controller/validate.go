package controller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-shorturl-relay/types"
)

const (
	tagTargetURL  = "shorturl_target"
	tagExpiryDays = "expiry_days"

	minExpiryDays = 0
	maxExpiryDays = 365
)

// targetURLPattern accepts an optional http(s) scheme, a domain or IPv4 host, and optional
// port, path, query and fragment.
var targetURLPattern = regexp.MustCompile(`(?i)^(https?://)?` +
	`((([a-z\d]([a-z\d-]*[a-z\d])*)\.)+[a-z]{2,}|((\d{1,3}\.){3}\d{1,3}))` +
	`(:\d+)?` +
	`(/[-a-z\d%_.~+]*)*` +
	`(\?[;&a-z\d%_.~+=-]*)?` +
	`(#[-a-z\d_]*)?$`)

var schemes = []string{"https://", "http://"}

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation(tagTargetURL, func(fl validator.FieldLevel) bool {
		return targetURLPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation(tagExpiryDays, func(fl validator.FieldLevel) bool {
		_, ok := parseExpiryDays(fl.Field().String())
		return ok
	})
	return v
}

func parseExpiryDays(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, n >= minExpiryDays && n <= maxExpiryDays
}

// fieldChecks lists the SubmissionRequest fields in the order they are validated.
var fieldChecks = []struct {
	field string
	kind  Kind
}{
	{field: "OriginalURL", kind: KindInvalidURLFormat},
	{field: "ExpiryInDays", kind: KindInvalidExpiryRange},
}

// validateRequest checks the URL first and the expiry second, returning the first failure.
func validateRequest(v *validator.Validate, req types.SubmissionRequest) *SubmissionError {
	for _, check := range fieldChecks {
		if err := v.StructPartial(req, check.field); err != nil {
			return newValidationError(check.kind)
		}
	}
	return nil
}

// Normalize strips a leading http:// or https:// from the URL. The expiry is kept as typed.
func Normalize(req types.SubmissionRequest) types.NormalizedRequest {
	u := req.OriginalURL
	for _, scheme := range schemes {
		if len(u) >= len(scheme) && strings.EqualFold(u[:len(scheme)], scheme) {
			u = u[len(scheme):]
			break
		}
	}
	return types.NormalizedRequest{OriginalURL: u, ExpiryInDays: req.ExpiryInDays}
}
