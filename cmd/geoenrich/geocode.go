package main

import (
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/services"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var geocodeFlags struct {
	in, out        string
	location       string
	classification string
	key            string
	lat, lng       string
	suffix         string
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Geocode crime report locations",
	Long: `Drops reports without a usable location or classification, geocodes the
remaining locations and appends lat/lng columns. Reports that cannot be
geocoded are dropped.`,
	Example: `  geoenrich geocode --in data/crimes_v2.csv --out data/crimes_v3.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := geocodeFlags
		ctx := cmd.Context()

		t, err := readTable(f.in, f.location, f.classification, f.key)
		if err != nil {
			return err
		}

		b, err := openBackends(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		geocoder, err := b.geocoder()
		if err != nil {
			return err
		}

		suffix := cfg.Geocode.Suffix
		if cmd.Flags().Changed("suffix") {
			suffix = f.suffix
		}
		req := services.GeocodeRequest{
			LocationColumn:       f.location,
			ClassificationColumn: f.classification,
			KeyColumn:            f.key,
			LatColumn:            f.lat,
			LngColumn:            f.lng,
			Suffix:               suffix,
		}
		if _, err := services.GeocodeTable(ctx, req, t, geocoder, pacing.Every(cfg.Geocode.Delay)); err != nil {
			return eris.Wrap(err, "geocode")
		}
		return t.WriteFile(f.out)
	},
}

func init() {
	fl := geocodeCmd.Flags()
	fl.StringVar(&geocodeFlags.in, "in", "", "input CSV")
	fl.StringVar(&geocodeFlags.out, "out", "", "output CSV")
	fl.StringVar(&geocodeFlags.location, "location", "Location", "location column")
	fl.StringVar(&geocodeFlags.classification, "classification", "Report Classification", "classification column")
	fl.StringVar(&geocodeFlags.key, "key", "Case Number", "key column, for progress logs")
	fl.StringVar(&geocodeFlags.lat, "lat", "lat", "output latitude column")
	fl.StringVar(&geocodeFlags.lng, "lng", "lng", "output longitude column")
	fl.StringVar(&geocodeFlags.suffix, "suffix", services.DefaultAddressSuffix, "text appended to each location (default geocode.suffix)")
	for _, name := range []string{"in", "out"} {
		_ = geocodeCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(geocodeCmd)
}
