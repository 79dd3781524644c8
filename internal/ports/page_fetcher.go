package ports

import "context"

type Page struct {
	URL        string
	StatusCode int
	Title      string
	Body       []byte
}

// Contract for the transport that loads listing pages.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
	// Drop session state (cookies) before the next attempt.
	Reset()
}
