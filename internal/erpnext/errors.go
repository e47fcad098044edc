package erpnext

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	maxExcLen     = 1500
	maxMessageLen = 500
)

// ConfigError reports missing accounting-backend configuration. It is
// raised before any network call is made.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"erpnext configuration is missing; check environment variables: %s",
		strings.Join(e.Missing, ", "),
	)
}

// APIError is a non-2xx response from the accounting backend, with
// diagnostics extracted from the response body.
type APIError struct {
	Status   int
	Endpoint string
	Details  string
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("erpnext API error (status %d) on %s", e.Status, e.Endpoint)
	}
	return fmt.Sprintf("erpnext API error (status %d) on %s: %s", e.Status, e.Endpoint, e.Details)
}

// Retryable reports whether the submission fallback endpoint should be
// tried. The backend answers 404 when the API key cannot reach the
// resource endpoint and 417 when document validation fails there; both
// are known to succeed via the RPC-style method endpoint.
func (e *APIError) Retryable() bool {
	return e.Status == http.StatusNotFound || e.Status == http.StatusExpectationFailed
}

// errorBody is the error envelope the backend returns. Fields are
// populated inconsistently across versions, so all are optional.
type errorBody struct {
	Exc         string   `json:"exc"`
	ExcMessages []string `json:"exc_messages"`
	Message     string   `json:"message"`
	ErrMsg      string   `json:"error"`
}

// extractDetails pulls a human-readable diagnostic out of an error
// response body, preferring the exception traceback, then the message
// fields, then the raw body. Output length is bounded.
func extractDetails(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return truncate(string(body), maxMessageLen)
	}

	var parts []string
	if eb.Exc != "" {
		parts = append(parts, truncate(eb.Exc, maxExcLen))
	}
	if eb.Message != "" {
		parts = append(parts, truncate(eb.Message, maxMessageLen))
	}
	if eb.ErrMsg != "" {
		parts = append(parts, truncate(eb.ErrMsg, maxMessageLen))
	}
	if len(eb.ExcMessages) > 0 {
		// Server messages are JSON-encoded strings; surface the first one.
		var inner struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(eb.ExcMessages[0]), &inner); err == nil && inner.Message != "" {
			parts = append(parts, truncate(inner.Message, maxMessageLen))
		}
	}
	if len(parts) == 0 {
		return truncate(string(body), maxMessageLen)
	}
	return strings.Join(parts, "; ")
}

// truncate bounds s to at most n bytes without splitting a UTF-8
// sequence; tracebacks from the backend can carry non-ASCII text.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
