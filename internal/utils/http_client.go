package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client bound to baseURL.
// retryCount > 0 enables resty's retry on transport errors and 5xx/429
// responses with the given wait between attempts.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://example.supabase.co/rest/v1", 30*time.Second, 3, time.Second)
//	resp, err := client.R().Get("/orders")
func NewHTTPClient(baseURL string, timeout time.Duration, retryCount int, retryWait time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	if retryCount > 0 {
		c.SetRetryCount(retryCount).
			SetRetryWaitTime(retryWait).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				if err != nil {
					return true
				}
				return r.StatusCode() == 429 || r.StatusCode() >= 500
			})
	}

	return &HTTPClient{Client: c}
}
