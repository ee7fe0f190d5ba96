package auth

import (
	"bytes"
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Descriptor captures everything needed to issue a request and, after a
// token renewal, replay it: method, URL, headers and body. The retried
// marker is single-shot, so a given descriptor is replayed at most once.
type Descriptor struct {
	ID     uuid.UUID
	Method string
	URL    string
	Header http.Header
	Body   []byte

	retried bool
}

// NewDescriptor creates a descriptor for a single API call.
func NewDescriptor(method, url string, header http.Header, body []byte) *Descriptor {
	return &Descriptor{
		ID:     uuid.New(),
		Method: method,
		URL:    url,
		Header: header,
		Body:   body,
	}
}

// request builds a fresh http.Request for this descriptor. The stored
// headers are cloned minus any stale Authorization header; the current
// bearer token is attached when present.
func (d *Descriptor) request(ctx context.Context, accessToken string) (*http.Request, error) {
	var body *bytes.Reader
	if d.Body != nil {
		body = bytes.NewReader(d.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, d.URL, body)
	if err != nil {
		return nil, err
	}

	for key, values := range d.Header {
		if http.CanonicalHeaderKey(key) == "Authorization" {
			continue
		}
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return req, nil
}
