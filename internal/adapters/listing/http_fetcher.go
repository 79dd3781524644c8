// Package listing loads listing pages over plain HTTP.
package listing

import (
	"apartment-geo-enrich/internal/listing"
	"apartment-geo-enrich/internal/ports"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxBodyBytes     = 5 << 20
)

// HTTPPageFetcher implements ports.PageFetcher with a browser-like client
// that keeps cookies between requests until Reset.
type HTTPPageFetcher struct {
	client    *http.Client
	userAgent string
	settle    time.Duration
}

// Option configures the fetcher.
type Option func(*HTTPPageFetcher)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPPageFetcher) { f.client.Timeout = d }
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(f *HTTPPageFetcher) { f.userAgent = ua }
}

// WithSettle waits d after each successful load, giving slow pages time to
// finish redirects before the next request.
func WithSettle(d time.Duration) Option {
	return func(f *HTTPPageFetcher) { f.settle = d }
}

// WithTransport replaces the client transport, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *HTTPPageFetcher) { f.client.Transport = rt }
}

func NewHTTPPageFetcher(opts ...Option) *HTTPPageFetcher {
	jar, _ := cookiejar.New(nil)
	f := &HTTPPageFetcher{
		client:    &http.Client{Timeout: 30 * time.Second, Jar: jar},
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch loads url. Non-2xx responses are returned as pages, not errors, so
// the caller can tell a block page from a transport failure.
func (f *HTTPPageFetcher) Fetch(ctx context.Context, url string) (*ports.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "listing: build request %s", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "listing: fetch %s", url)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrapf(err, "listing: read body %s", url)
	}

	if f.settle > 0 {
		t := time.NewTimer(f.settle)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	return &ports.Page{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Title:      listing.Title(body),
		Body:       body,
	}, nil
}

// Reset drops all cookies.
func (f *HTTPPageFetcher) Reset() {
	jar, _ := cookiejar.New(nil)
	f.client.Jar = jar
}
