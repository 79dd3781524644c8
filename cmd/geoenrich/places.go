package main

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/services"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var placesFlags struct {
	preset  string
	queries []string
	out     string
}

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "Discover places with text searches around the town center",
	Long: `Runs each text query against the places search, follows result pages,
keeps one row per place within the locality and writes them sorted by name.
Queries come from a preset, from repeated --query flags, or both.`,
	Example: `  geoenrich places --preset apartments --out data/apartments_v1.csv
  geoenrich places --preset grocery --out data/grocery_stores_v1.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := placesFlags
		ctx := cmd.Context()

		var queries []string
		if f.preset != "" {
			preset, ok := services.PlaceQueryPresets[f.preset]
			if !ok {
				return eris.Errorf("places: unknown preset %q (have %s)", f.preset, strings.Join(presetNames(), ", "))
			}
			queries = append(queries, preset...)
		}
		queries = append(queries, f.queries...)
		if len(queries) == 0 {
			return eris.New("places: set --preset or --query")
		}

		b, err := openBackends(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		searcher, err := b.placeSearcher()
		if err != nil {
			return err
		}

		req := services.PlacesRequest{
			Queries:      queries,
			Area:         cfg.Places.Area,
			Center:       domain.Coordinates{Lat: cfg.Places.CenterLat, Lon: cfg.Places.CenterLng},
			RadiusMeters: cfg.Places.RadiusMeters,
			Locality:     cfg.Places.Locality,
			PageDelay:    cfg.Places.PageDelay,
		}
		t, _, err := services.DiscoverPlaces(ctx, req, searcher, pacing.Every(cfg.Places.Delay))
		if err != nil {
			return eris.Wrap(err, "places")
		}
		return t.WriteFile(f.out)
	},
}

func presetNames() []string {
	names := make([]string, 0, len(services.PlaceQueryPresets))
	for n := range services.PlaceQueryPresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	fl := placesCmd.Flags()
	fl.StringVar(&placesFlags.preset, "preset", "", "query preset: "+strings.Join(presetNames(), ", "))
	fl.StringArrayVar(&placesFlags.queries, "query", nil, "text query, repeatable")
	fl.StringVar(&placesFlags.out, "out", "", "output CSV")
	_ = placesCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(placesCmd)
}
