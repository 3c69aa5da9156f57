// Package github provides the GitHub Releases adapter used by the
// release-tarball fetcher.
package github

import (
	"context"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client with a rate limiter.
type Client struct {
	gh          *gh.Client
	http        *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub API client. token may be empty, in which
// case requests are unauthenticated and subject to the much lower
// anonymous quota.
func NewClient(token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(hc),
		http:        hc,
		rateLimiter: NewRateLimiter(),
	}
}

// GitHub returns the underlying go-github client.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}
