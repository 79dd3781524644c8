package services

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/listing"
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Columns written by ScrapeListings.
const (
	RentMinColumn        = "rent_min"
	RentMaxColumn        = "rent_max"
	SqftMinColumn        = "sqft_min"
	SqftMaxColumn        = "sqft_max"
	RentPerSqftAvgColumn = "rent_per_sqft_avg"
)

// ScrapeOutcome is the terminal state of one listing fetch.
type ScrapeOutcome int

const (
	ScrapeSuccess ScrapeOutcome = iota
	// Every attempt hit a block page.
	ScrapeBlocked
	// Every attempt failed in transport.
	ScrapeFetchFailed
	// The page loaded but carried none of the expected details.
	ScrapeParseFailure
)

func (o ScrapeOutcome) String() string {
	switch o {
	case ScrapeSuccess:
		return "success"
	case ScrapeBlocked:
		return "blocked"
	case ScrapeFetchFailed:
		return "fetch_failed"
	case ScrapeParseFailure:
		return "parse_failure"
	default:
		return "unknown"
	}
}

type ScrapeRequest struct {
	URLColumn   string
	NameColumn  string
	MaxAttempts int
	// Wait between attempts on the same listing.
	Backoff time.Duration
	// Save is called after every listing so partial progress survives an
	// abort. Nil disables it.
	Save func(*tabular.Table) error
}

type ScrapeSummary struct {
	Total   int
	Skipped int
	Scraped int
	Failed  int
}

func (s ScrapeSummary) Processed() int { return s.Scraped + s.Failed }

// ScrapeListings fetches the listing page of every row with a URL and
// writes rent and area ranges plus the average rent per square foot.
// pacer spaces out listings; Backoff spaces out retries of one listing.
func ScrapeListings(
	ctx context.Context,
	req ScrapeRequest,
	t *tabular.Table,
	fetcher ports.PageFetcher,
	pacer ports.Pacer,
) (_ ScrapeSummary, err error) {
	defer obs.Time(ctx, "scrape_listings")(&err)

	if t == nil || fetcher == nil || pacer == nil {
		return ScrapeSummary{}, errors.New("scrape listings: table, fetcher and pacer are required")
	}
	if req.MaxAttempts < 1 {
		return ScrapeSummary{}, fmt.Errorf("scrape listings: max attempts must be >= 1, got %d", req.MaxAttempts)
	}
	cols := []string{req.URLColumn}
	if req.NameColumn != "" {
		cols = append(cols, req.NameColumn)
	}
	if err := t.Require(cols...); err != nil {
		return ScrapeSummary{}, fmt.Errorf("scrape listings: %w", err)
	}

	for _, c := range []string{RentMinColumn, RentMaxColumn, SqftMinColumn, SqftMaxColumn, RentPerSqftAvgColumn} {
		t.AddColumn(c)
	}

	var todo []int
	for i := range t.Rows {
		if strings.TrimSpace(t.Value(i, req.URLColumn)) != "" {
			todo = append(todo, i)
		}
	}

	log := obs.Logger(ctx)
	summary := ScrapeSummary{Total: t.Len(), Skipped: t.Len() - len(todo)}
	log.Info("scraping listings",
		zap.Int("rows", summary.Total),
		zap.Int("with_url", len(todo)),
		zap.Int("skipped", summary.Skipped),
	)

	for n, i := range todo {
		if err := pacer.Wait(ctx); err != nil {
			return summary, fmt.Errorf("scrape listings: %w", err)
		}

		url := strings.TrimSpace(t.Value(i, req.URLColumn))
		rowLog := log.With(zap.Int("n", n+1), zap.Int("of", len(todo)), zap.String("url", url))
		if req.NameColumn != "" {
			rowLog = rowLog.With(zap.String("name", t.Value(i, req.NameColumn)))
		}
		rowLog.Info("processing listing")

		info, outcome, err := scrapeListing(ctx, rowLog, fetcher, url, req.MaxAttempts, req.Backoff)
		if err != nil {
			return summary, fmt.Errorf("scrape listings: %w", err)
		}

		if outcome != ScrapeSuccess {
			summary.Failed++
			rowLog.Warn("failed to scrape listing", zap.Stringer("outcome", outcome))
		} else if writeRentInfo(t, i, info) {
			summary.Scraped++
			rowLog.Info("listing scraped", zap.String("rent", info.Rent), zap.String("sqft", info.SquareFeet))
		} else {
			summary.Failed++
			rowLog.Warn("could not parse listing values", zap.String("rent", info.Rent), zap.String("sqft", info.SquareFeet))
		}

		if req.Save != nil {
			if err := req.Save(t); err != nil {
				return summary, fmt.Errorf("scrape listings: save progress: %w", err)
			}
			rowLog.Debug("progress saved")
		}
	}

	log.Info("scraping done",
		zap.Int("scraped", summary.Scraped),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("processed", summary.Processed()),
	)
	return summary, nil
}

// scrapeListing runs the bounded retry loop for one URL. Block pages and
// transport errors are retried after backoff with a fresh session; a page
// that loads but lacks the details is final. The error is non-nil only when
// ctx is done.
func scrapeListing(
	ctx context.Context,
	log *zap.Logger,
	fetcher ports.PageFetcher,
	url string,
	attempts int,
	backoff time.Duration,
) (listing.RentInfo, ScrapeOutcome, error) {
	outcome := ScrapeFetchFailed
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := pacing.Sleep(ctx, backoff); err != nil {
				return listing.RentInfo{}, outcome, err
			}
		}
		fetcher.Reset()

		page, err := fetcher.Fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return listing.RentInfo{}, outcome, ctx.Err()
			}
			outcome = ScrapeFetchFailed
			log.Warn("fetch failed", zap.Int("attempt", attempt), zap.Int("max_attempts", attempts), zap.Error(err))
			continue
		}

		if blocked, reason := listing.DetectBlock(page); blocked {
			outcome = ScrapeBlocked
			log.Warn("access denied",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts),
				zap.String("reason", string(reason)),
			)
			continue
		}

		info, err := listing.ExtractRentInfo(page.Body)
		if err != nil {
			log.Warn("could not parse page", zap.Error(err))
			return listing.RentInfo{}, ScrapeParseFailure, nil
		}
		if info.Empty() {
			return info, ScrapeParseFailure, nil
		}
		return info, ScrapeSuccess, nil
	}
	return listing.RentInfo{}, outcome, nil
}

// writeRentInfo parses the raw strings into row i and reports whether
// either range produced a value.
func writeRentInfo(t *tabular.Table, i int, info listing.RentInfo) bool {
	rentMin, rentMax := listing.ParseRent(info.Rent)
	sqftMin, sqftMax := listing.ParseSquareFeet(info.SquareFeet)

	t.Set(i, RentMinColumn, tabular.FormatFloat(rentMin))
	t.Set(i, RentMaxColumn, tabular.FormatFloat(rentMax))
	t.Set(i, SqftMinColumn, tabular.FormatFloat(sqftMin))
	t.Set(i, SqftMaxColumn, tabular.FormatFloat(sqftMax))
	t.Set(i, RentPerSqftAvgColumn, tabular.FormatFloat(listing.RentPerSqftAvg(rentMin, rentMax, sqftMin, sqftMax)))

	return !domain.IsMissing(rentMin) || !domain.IsMissing(sqftMin)
}
