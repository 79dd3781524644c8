package main

import (
	"apartment-geo-enrich/internal/adapters/listing"
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/services"
	"apartment-geo-enrich/internal/tabular"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var scrapeFlags struct {
	in, out    string
	urlColumn  string
	nameColumn string
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape rent and square footage from listing pages",
	Long: `Fetches the listing page of every row with a URL, retrying block pages
and transport errors with a fresh session, and writes rent and area ranges
plus the average rent per square foot. The output is saved after every
listing so an interrupted run keeps its progress.`,
	Example: `  geoenrich scrape --in data/apartments_v2.csv --out data/apartments_v3.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := scrapeFlags

		t, err := readTable(f.in, f.urlColumn, f.nameColumn)
		if err != nil {
			return err
		}

		opts := []listing.Option{
			listing.WithTimeout(cfg.Scrape.Timeout),
			listing.WithSettle(cfg.Scrape.Settle),
		}
		if cfg.Scrape.UserAgent != "" {
			opts = append(opts, listing.WithUserAgent(cfg.Scrape.UserAgent))
		}
		fetcher := listing.NewHTTPPageFetcher(opts...)

		req := services.ScrapeRequest{
			URLColumn:   f.urlColumn,
			NameColumn:  f.nameColumn,
			MaxAttempts: cfg.Scrape.MaxAttempts,
			Backoff:     cfg.Scrape.Backoff,
			Save:        func(t *tabular.Table) error { return t.WriteFile(f.out) },
		}
		if _, err := services.ScrapeListings(cmd.Context(), req, t, fetcher, pacing.Every(cfg.Scrape.Delay)); err != nil {
			return eris.Wrap(err, "scrape")
		}
		return t.WriteFile(f.out)
	},
}

func init() {
	fl := scrapeCmd.Flags()
	fl.StringVar(&scrapeFlags.in, "in", "", "input CSV")
	fl.StringVar(&scrapeFlags.out, "out", "", "output CSV, rewritten after every listing")
	fl.StringVar(&scrapeFlags.urlColumn, "url-column", "apartments_url", "listing URL column")
	fl.StringVar(&scrapeFlags.nameColumn, "name-column", "name", "name column, for progress logs")
	for _, name := range []string{"in", "out"} {
		_ = scrapeCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(scrapeCmd)
}
