package gateway

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/payfront/payfront/provider"
)

// RedactionMarker replaces any secret-shaped substring in outbound error text.
const RedactionMarker = "[REDACTED]"

// maxMessageLen bounds the length of any message leaving the error boundary.
const maxMessageLen = 200

// secretPattern matches opaque tokens with a known secret-type prefix:
// Stripe secret keys (sk_), restricted keys (rk_) and webhook signing
// secrets (whsec_). Matching is case-insensitive so casing tricks in
// upstream messages cannot leak a key.
var secretPattern = regexp.MustCompile(`(?i)\b(?:sk_(?:live|test)_|rk_(?:live|test)_|whsec_)[A-Za-z0-9]+`)

// Redact replaces every secret-shaped substring in s with the redaction
// marker.
func Redact(s string) string {
	return secretPattern.ReplaceAllString(s, RedactionMarker)
}

// Classify turns an arbitrary failure into a safe client-facing message and
// an HTTP status. The message is redacted and truncated; the status comes
// from the provider error kind when the failure is a typed provider error,
// and is 500 otherwise. Classify never panics and always returns a usable
// result.
func Classify(err error) (string, int) {
	if err == nil {
		return "internal error", http.StatusInternalServerError
	}

	message := Redact(err.Error())
	if runes := []rune(message); len(runes) > maxMessageLen {
		message = string(runes[:maxMessageLen])
	}

	var provErr *provider.Error
	if errors.As(err, &provErr) {
		switch provErr.Kind {
		case provider.KindValidation:
			return message, http.StatusBadRequest
		case provider.KindAuthentication:
			return message, http.StatusUnauthorized
		case provider.KindRateLimit:
			return message, http.StatusTooManyRequests
		case provider.KindConfiguration:
			return message, http.StatusServiceUnavailable
		}
	}

	return message, http.StatusInternalServerError
}
