package github

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

// newTestClient points a Client at a stub API server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	c.gh.BaseURL = base
	return c
}

func TestLatestRelease_SkipsDraftsAndPrereleases(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/matrix-org/synapse/releases", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[
			{"tag_name": "v1.2.0-rc1", "prerelease": true},
			{"tag_name": "v1.1.9", "draft": true},
			{"tag_name": "v1.1.8", "assets": [
				{"name": "debs.tar.gz", "browser_download_url": "https://example.com/debs.tar.gz", "size": 42}
			]}
		]`)
	})
	c := newTestClient(t, mux)

	rel, err := c.LatestRelease(context.Background(), "matrix-org", "synapse")

	require.NoError(t, err)
	assert.Equal(t, "v1.1.8", rel.TagName)
	require.Len(t, rel.Assets, 1)
	assert.Equal(t, "debs.tar.gz", rel.Assets[0].Name)
	assert.Equal(t, "https://example.com/debs.tar.gz", rel.Assets[0].URL)
	assert.Equal(t, int64(42), rel.Assets[0].Size)
}

func TestLatestRelease_OnlyPrereleases(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/releases", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"tag_name": "v0.1.0-rc1", "prerelease": true}]`)
	})
	c := newTestClient(t, mux)

	_, err := c.LatestRelease(context.Background(), "o", "r")

	assert.ErrorIs(t, err, domain.ErrNoRelease)
}

func TestLatestRelease_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/releases", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})
	c := newTestClient(t, mux)

	_, err := c.LatestRelease(context.Background(), "o", "r")

	assert.Error(t, err)
}

func TestDownloadAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "tarball-bytes")
	}))
	t.Cleanup(srv.Close)

	c := NewClient("")
	var buf bytes.Buffer

	err := c.DownloadAsset(context.Background(), domain.ReleaseAsset{
		Name: "debs.tar.gz",
		URL:  srv.URL + "/debs.tar.gz",
	}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "tarball-bytes", buf.String())
}

func TestDownloadAsset_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("")
	var buf bytes.Buffer

	err := c.DownloadAsset(context.Background(), domain.ReleaseAsset{
		Name: "debs.tar.gz",
		URL:  srv.URL + "/debs.tar.gz",
	}, &buf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	rl := NewRateLimiter()
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "17")
	resp.Header.Set(HeaderRateLimit, "5000")

	rl.UpdateFromResponse(resp)

	assert.Equal(t, 17, rl.remaining)
	assert.Equal(t, 5000, rl.limit)
}
