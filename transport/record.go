package transport

import (
	"net/http"
	"strings"
)

const maxLoggedBody = 2048

// ErrorRecord is the diagnostic snapshot logged for a failed call. The
// bearer header value is replaced with the redaction marker before the
// record exists, so no log sink ever sees the credential.
type ErrorRecord struct {
	RequestID       string
	Method          string
	URL             string
	Status          int
	StatusText      string
	ResponseBody    string
	ResponseHeaders map[string]string
	RequestHeaders  map[string]string
}

func newErrorRecord(requestID string, req *http.Request, status int, respHeader http.Header, body []byte, marker string) ErrorRecord {
	rec := ErrorRecord{
		RequestID:       requestID,
		Method:          req.Method,
		URL:             req.URL.String(),
		Status:          status,
		StatusText:      http.StatusText(status),
		ResponseBody:    truncate(string(body), maxLoggedBody),
		ResponseHeaders: flattenHeaders(respHeader, ""),
		RequestHeaders:  flattenHeaders(req.Header, marker),
	}
	return rec
}

// flattenHeaders folds a header map into single values, redacting the
// Authorization header when a marker is supplied.
func flattenHeaders(h http.Header, marker string) map[string]string {
	if h == nil {
		return nil
	}
	out := make(map[string]string, len(h))
	for name, values := range h {
		value := strings.Join(values, ", ")
		if marker != "" && http.CanonicalHeaderKey(name) == "Authorization" {
			value = marker
		}
		out[name] = value
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
