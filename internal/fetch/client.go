// Package fetch provides HTTP client construction shared by the outbound
// clients (page fetch, market data, holder count).
package fetch

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// NewClient returns a standard *http.Client backed by bounded retries.
// Retries only apply to idempotent requests that fail at the transport
// level or with retryable status codes.
func NewClient(timeout time.Duration) *http.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 3 * time.Second
	c.HTTPClient.Timeout = timeout
	c.Logger = nil

	client := c.StandardClient()
	client.Timeout = timeout
	return client
}

// NewPlainClient returns a client without retries for calls that must not
// be replayed, such as the generative-text request.
func NewPlainClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
