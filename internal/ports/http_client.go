package ports

import "net/http"

// HTTPClient is the HTTP transport collaborator. It owns TLS, redirects,
// connection reuse and timeouts.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}
