package services

import (
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/ports"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rentPage = `<html><head><title>Listing</title></head><body>
<p class="rentInfoLabel">Monthly Rent</p><p class="rentInfoDetail">$1,200 - $1,500</p>
<p class="rentInfoLabel">Square Feet</p><p class="rentInfoDetail">600 - 900 sq ft</p>
</body></html>`

const rentOnlyPage = `<html><body>
<p class="rentInfoLabel">Monthly Rent</p><p class="rentInfoDetail">Call for Rent</p>
</body></html>`

const blockPage = `<html><head><title>Access Denied</title></head><body>denied</body></html>`

// scriptedFetcher answers each URL with a queue of responses; an entry with a
// nil page is returned as a transport error.
type scriptedFetcher struct {
	script map[string][]*ports.Page
	calls  map[string]int
	resets int
}

func (f *scriptedFetcher) Fetch(ctx context.Context, url string) (*ports.Page, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	q := f.script[url]
	n := f.calls[url]
	f.calls[url]++
	if n >= len(q) {
		n = len(q) - 1
	}
	if q[n] == nil {
		return nil, errors.New("connection reset")
	}
	return q[n], nil
}

func (f *scriptedFetcher) Reset() { f.resets++ }

func htmlPage(status int, body string) *ports.Page {
	return &ports.Page{StatusCode: status, Body: []byte(body)}
}

func TestScrapeListings(t *testing.T) {
	table := tabular.New("name", "apartments_url")
	table.Append([]string{"Sycamore", "https://example.test/a"})
	table.Append([]string{"No URL", ""})
	table.Append([]string{"Blocked", "https://example.test/b"})
	table.Append([]string{"Flaky", "https://example.test/c"})
	table.Append([]string{"Empty", "https://example.test/d"})
	table.Append([]string{"Unparsable", "https://example.test/e"})

	f := &scriptedFetcher{script: map[string][]*ports.Page{
		"https://example.test/a": {htmlPage(http.StatusOK, rentPage)},
		"https://example.test/b": {htmlPage(http.StatusForbidden, blockPage)},
		"https://example.test/c": {nil, htmlPage(http.StatusOK, blockPage), htmlPage(http.StatusOK, rentPage)},
		"https://example.test/d": {htmlPage(http.StatusOK, "<html><body>nothing here</body></html>")},
		"https://example.test/e": {htmlPage(http.StatusOK, rentOnlyPage)},
	}}

	saves := 0
	req := ScrapeRequest{
		URLColumn:   "apartments_url",
		NameColumn:  "name",
		MaxAttempts: 3,
		Save:        func(*tabular.Table) error { saves++; return nil },
	}
	summary, err := ScrapeListings(context.Background(), req, table, f, pacing.None())
	require.NoError(t, err)

	assert.Equal(t, ScrapeSummary{Total: 6, Skipped: 1, Scraped: 2, Failed: 3}, summary)
	assert.Equal(t, 5, saves)

	assert.Equal(t, 1, f.calls["https://example.test/a"])
	assert.Equal(t, 3, f.calls["https://example.test/b"], "a block page is retried up to the limit")
	assert.Equal(t, 3, f.calls["https://example.test/c"])
	assert.Equal(t, 1, f.calls["https://example.test/d"], "a page without details is not retried")

	assert.Equal(t, "1200.0", table.Value(0, RentMinColumn))
	assert.Equal(t, "1500.0", table.Value(0, RentMaxColumn))
	assert.Equal(t, "600.0", table.Value(0, SqftMinColumn))
	assert.Equal(t, "900.0", table.Value(0, SqftMaxColumn))
	assert.Equal(t, "1.8", table.Value(0, RentPerSqftAvgColumn))
	assert.Equal(t, "1200.0", table.Value(3, RentMinColumn))

	for _, i := range []int{1, 2, 4, 5} {
		assert.Empty(t, table.Value(i, RentMinColumn), "row %d", i)
		assert.Empty(t, table.Value(i, RentPerSqftAvgColumn), "row %d", i)
	}
}

func TestScrapeListingsStopsOnSaveError(t *testing.T) {
	table := tabular.New("apartments_url")
	table.Append([]string{"https://example.test/a"})
	table.Append([]string{"https://example.test/a"})
	f := &scriptedFetcher{script: map[string][]*ports.Page{"https://example.test/a": {htmlPage(http.StatusOK, rentPage)}}}

	_, err := ScrapeListings(context.Background(), ScrapeRequest{
		URLColumn:   "apartments_url",
		MaxAttempts: 1,
		Save:        func(*tabular.Table) error { return errors.New("disk full") },
	}, table, f, pacing.None())

	require.Error(t, err)
	assert.Equal(t, 1, f.calls["https://example.test/a"])
}

func TestScrapeListingsValidatesInput(t *testing.T) {
	table := tabular.New("name")
	f := &scriptedFetcher{}

	_, err := ScrapeListings(context.Background(), ScrapeRequest{URLColumn: "apartments_url", MaxAttempts: 3}, table, f, pacing.None())
	assert.ErrorIs(t, err, tabular.ErrMissingColumn)

	_, err = ScrapeListings(context.Background(), ScrapeRequest{URLColumn: "name", MaxAttempts: 0}, table, f, pacing.None())
	assert.Error(t, err)
}

func TestScrapeOutcomeString(t *testing.T) {
	assert.Equal(t, "blocked", ScrapeBlocked.String())
	assert.Equal(t, "parse_failure", ScrapeParseFailure.String())
}
