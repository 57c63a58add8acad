package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// Kind classifies a failed API call. The fallback policies do not distinguish
// kinds, but user-facing messages and tests do.
type Kind string

const (
	KindTimeout    Kind = "timeout"
	KindNetwork    Kind = "network"
	KindHTTPStatus Kind = "http_status"
)

// Error is the normalized failure type for every live API call. Transport
// errors, timeouts, and non-2xx statuses all surface as *Error so callers
// apply one fallback decision.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 for transport failures
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsTimeout reports whether err is a normalized timeout failure.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTimeout
}

// classifyTransport normalizes a transport-level error from the HTTP client.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:    KindTimeout,
			Message: "Request timeout. Please check your internet connection and try again.",
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{
			Kind:    KindTimeout,
			Message: "Request timeout. Please check your internet connection and try again.",
		}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{
			Kind:    KindNetwork,
			Message: "Unable to connect to the server. The API may be unavailable or there may be a CORS issue.",
		}
	}
	return &Error{Kind: KindNetwork, Message: err.Error()}
}

// statusError builds an *Error from a non-2xx response, extracting the
// message from the body when one is present.
func statusError(status int, body []byte) *Error {
	return &Error{
		Kind:    KindHTTPStatus,
		Status:  status,
		Message: errorMessage(status, body),
	}
}

// errorMessage extracts a human-readable message from an API error body.
// The API returns either a JSON object with one of message|detail|error, or
// a raw JSON string; anything else falls back to the HTTP status line.
func errorMessage(status int, body []byte) string {
	fallback := fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "detail", "error"} {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return s
			}
		}
		return fallback
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil && s != "" {
		return s
	}
	return fallback
}
