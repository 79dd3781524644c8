package main

import (
	"apartment-geo-enrich/internal/adapters/repositories"
	"apartment-geo-enrich/internal/services"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var haversineFlags struct {
	sources, targets        string
	sourceKey, targetKey    string
	sourceLat, sourceLng    string
	targetLat, targetLng    string
	sourceColumn, targetCol string
	out                     string
}

var haversineCmd = &cobra.Command{
	Use:   "haversine",
	Short: "Great-circle distance from every source to every target",
	Long: `Computes the straight-line distance in miles between every source and
every target, e.g. apartments and geocoded crime reports. Rows whose
latitude or longitude does not parse are skipped and reported once.`,
	Example: `  geoenrich haversine --sources data/apartments_v5.csv --targets data/crimes_v3.csv \
    --out data/crime_distances.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := haversineFlags
		ctx := cmd.Context()

		sources, err := entityRepo(f.sources, repositories.EntityColumns{Key: f.sourceKey, Lat: f.sourceLat, Lng: f.sourceLng})
		if err != nil {
			return err
		}
		targets, err := entityRepo(f.targets, repositories.EntityColumns{Key: f.targetKey, Lat: f.targetLat, Lng: f.targetLng})
		if err != nil {
			return err
		}

		pairs, _, err := services.HaversineMatrix(ctx, sources, targets)
		if err != nil {
			return eris.Wrap(err, "haversine")
		}
		return repositories.WritePairs(f.out, repositories.PairColumns{Source: f.sourceColumn, Target: f.targetCol}, pairs)
	},
}

func init() {
	fl := haversineCmd.Flags()
	fl.StringVar(&haversineFlags.sources, "sources", "", "source CSV (e.g. apartments)")
	fl.StringVar(&haversineFlags.targets, "targets", "", "target CSV (e.g. crimes)")
	fl.StringVar(&haversineFlags.sourceKey, "source-key", "id", "source key column")
	fl.StringVar(&haversineFlags.targetKey, "target-key", "Case Number", "target key column")
	fl.StringVar(&haversineFlags.sourceLat, "source-lat", "lat", "source latitude column")
	fl.StringVar(&haversineFlags.sourceLng, "source-lng", "lng", "source longitude column")
	fl.StringVar(&haversineFlags.targetLat, "target-lat", "lat", "target latitude column")
	fl.StringVar(&haversineFlags.targetLng, "target-lng", "lng", "target longitude column")
	fl.StringVar(&haversineFlags.sourceColumn, "source-column", "apartment_id", "output column for the source key")
	fl.StringVar(&haversineFlags.targetCol, "target-column", "case_number", "output column for the target key")
	fl.StringVar(&haversineFlags.out, "out", "", "output CSV")
	for _, name := range []string{"sources", "targets", "out"} {
		_ = haversineCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(haversineCmd)
}
