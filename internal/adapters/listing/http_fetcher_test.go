package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchKeepsCookiesUntilReset(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		c, err := r.Cookie("session")
		if err == nil {
			seen = append(seen, c.Value)
		} else {
			seen = append(seen, "")
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		w.Write([]byte("<html><head><title>Listing</title></head><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewHTTPPageFetcher()

	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 200, page.StatusCode)
	assert.Equal(t, "Listing", page.Title)

	_, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	f.Reset()
	_, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "abc", ""}, seen)
}

func TestFetchReturnsErrorStatusesAsPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("<title>Access Denied</title>"))
	}))
	defer srv.Close()

	page, err := NewHTTPPageFetcher(WithUserAgent("test-agent")).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, page.StatusCode)
	assert.Equal(t, "Access Denied", page.Title)
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPPageFetcher().Fetch(context.Background(), url)
	assert.Error(t, err)
}
