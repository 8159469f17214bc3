// Package relay captures inbound webhook requests as broadcastable events.
package relay

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// deniedHeaders are transport-level headers stripped before broadcast; they
// describe the hop to the relay, not the webhook call itself.
var deniedHeaders = map[string]struct{}{
	"accept":         {},
	"content-type":   {},
	"user-agent":     {},
	"content-length": {},
	"host":           {},
	"connection":     {},
}

// Event is the payload delivered to subscribers and echoed to the caller.
type Event struct {
	OriginalURL string            `json:"originalUrl"`
	Method      string            `json:"method"`
	Headers     map[string]string `json:"headers"`
	Query       map[string]string `json:"query"`
	Body        string            `json:"body"`
	Params      map[string]string `json:"params"`
}

// Capture reads the request into an Event. The body is consumed; headers on
// the denylist are dropped, everything else passes through verbatim.
func Capture(r *http.Request, code string) (*Event, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}

	return &Event{
		OriginalURL: r.URL.RequestURI(),
		Method:      r.Method,
		Headers:     sanitizeHeaders(r.Header),
		Query:       extractQuery(r),
		Body:        string(body),
		Params:      map[string]string{"code": code},
	}, nil
}

func sanitizeHeaders(header http.Header) map[string]string {
	headers := make(map[string]string)
	for name, values := range header {
		if _, denied := deniedHeaders[strings.ToLower(name)]; denied {
			continue
		}
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}
	return headers
}

func extractQuery(r *http.Request) map[string]string {
	query := make(map[string]string)
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			query[name] = values[0]
		}
	}
	return query
}
