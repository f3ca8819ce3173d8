// SPDX-License-Identifier: Unlicense OR MIT

package texture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher retrieves image data by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher fetches http(s) URLs with Client and reads file URLs and
// bare paths from disk. Relative URLs are resolved against Origin when
// it is set.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// Origin is the origin of the page, such as
	// "https://example.com". Requests to other origins are made in
	// CORS mode when running in a browser.
	Origin string
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	if !u.IsAbs() && f.Origin != "" {
		base, err := url.Parse(f.Origin)
		if err != nil {
			return nil, fmt.Errorf("texture: origin: %w", err)
		}
		u = base.ResolveReference(u)
	}
	switch u.Scheme {
	case "", "file":
		return os.Open(filepath.FromSlash(u.Path))
	case "http", "https":
	default:
		return nil, fmt.Errorf("texture: unsupported URL scheme %q", u.Scheme)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	if f.crossOrigin(u) {
		setCORS(req)
	}
	c := f.Client
	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("texture: GET %s: %s", u, resp.Status)
	}
	return resp.Body, nil
}

func (f *HTTPFetcher) crossOrigin(u *url.URL) bool {
	if f.Origin == "" {
		return false
	}
	o, err := url.Parse(f.Origin)
	if err != nil {
		return true
	}
	return !strings.EqualFold(o.Scheme, u.Scheme) || !strings.EqualFold(o.Host, u.Host)
}
