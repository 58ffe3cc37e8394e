// Package httpclient builds the retrying HTTP client shared by the font,
// publishing and indexing collaborators.
package httpclient

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// New returns a client that retries twice with the given per-attempt timeout.
// Retry chatter is suppressed; callers log the final outcome.
func New(timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = nil
	return client
}
