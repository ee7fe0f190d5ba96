//go:build js && wasm

package httpx

import (
	"net/http"

	"github.com/syumai/workers/cloudflare/fetch"
)

// workersDoer implements Doer on top of the Cloudflare Workers fetch API
type workersDoer struct {
	client *fetch.Client
}

// New creates a Doer for the Workers environment
func New() Doer {
	return &workersDoer{
		client: fetch.NewClient(),
	}
}

// Do performs an HTTP request using Cloudflare Workers fetch
func (d *workersDoer) Do(req *http.Request) (*http.Response, error) {
	fetchReq, err := fetch.NewRequest(req.Context(), req.Method, req.URL.String(), req.Body)
	if err != nil {
		return nil, err
	}

	for key, values := range req.Header {
		for _, value := range values {
			fetchReq.Header.Set(key, value)
		}
	}

	return d.client.Do(fetchReq, nil)
}
