// pkg/extractor/errors.go
package extractor

import (
	"fmt"
	"net/url"
	"strings"
)

// previewLimit bounds how much of a response body is carried in errors.
const previewLimit = 300

// TransportError indicates an HTTP-level failure while talking to the
// provider API: the request never succeeded or came back with a non-success
// status. It carries the effective URL (token redacted) and a bounded body
// preview for diagnosis.
type TransportError struct {
	URL        string
	StatusCode int
	Preview    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("HTTP error %d at %s -> %s", e.StatusCode, e.URL, e.Preview)
	}
	return fmt.Sprintf("request failed at %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PayloadShapeError indicates the provider answered successfully but the
// body did not have the expected shape (malformed JSON, missing record
// array, or a non-object row).
type PayloadShapeError struct {
	URL     string
	Table   string
	Reason  string
	Preview string
}

func (e *PayloadShapeError) Error() string {
	return fmt.Sprintf("unexpected response for %s at %s: %s -> %s",
		e.Table, e.URL, e.Reason, e.Preview)
}

// redactURL masks the token query parameter so credentials never reach logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// bodyPreview flattens a response body to a single bounded line.
func bodyPreview(body []byte) string {
	s := strings.ReplaceAll(string(body), "\n", " ")
	if len(s) > previewLimit {
		return s[:previewLimit] + "..."
	}
	return s
}
