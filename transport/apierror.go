package transport

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is the structured failure returned for every error response and
// every local pre-send rejection. It wraps one of the package sentinels, so
// callers classify with errors.Is.
type APIError struct {
	RequestID string
	Method    string
	URL       string
	// Status is 0 for local rejections that never reached the network.
	Status int
	// Detail is the backend's human-readable message, when present.
	Detail string
	// Fields carries field-level validation errors from a 400 body.
	Fields map[string][]string
	// HTMLBody marks a 5xx whose body is an HTML error page rather than
	// structured JSON; the two need different operator follow-up.
	HTMLBody bool
	Body     []byte

	kind error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.kind)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.Status, e.kind)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// errorBody is the superset of backend error payload shapes.
type errorBody struct {
	Detail string              `json:"detail"`
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

func parseErrorBody(body []byte) errorBody {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)
	if parsed.Detail == "" {
		parsed.Detail = parsed.Error
	}
	return parsed
}

// looksLikeHTML reports whether body is an HTML document rather than JSON.
// Debug-mode backends serve full HTML error pages on 5xx.
func looksLikeHTML(body []byte) bool {
	head := strings.TrimSpace(string(body))
	if len(head) > 256 {
		head = head[:256]
	}
	lower := strings.ToLower(head)
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}
