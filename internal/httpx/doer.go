package httpx

import "net/http"

// Doer abstracts HTTP request execution so the client can run against
// the native transport or the Cloudflare Workers fetch API.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
