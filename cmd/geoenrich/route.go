package main

import (
	"apartment-geo-enrich/internal/adapters/repositories"
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/services"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var routeFlags struct {
	sources, targets           string
	sourceKey, sourceName      string
	sourceAddress              string
	targetKey, targetAddress   string
	targetLat, targetLng       string
	sourceColumn, targetColumn string
	mode                       string
	batchSize                  int
	out                        string
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Travel distance and time from every source to every target",
	Long: `Routes every source address to every target through the configured
backend, in batches of destinations per request. Targets are routed to by
coordinates, or by address when --target-address is set. Pairs the backend
cannot route are written with empty distance and time.`,
	Example: `  # bus stops, walking
  geoenrich route --sources data/apartments_v5.csv --targets data/bus_stops_v1.csv \
    --target-key "Stop ID (Full)" --target-column bus_stop_id --mode walking \
    --out data/bus_stop_distances.csv

  # grocery stores, driving, by address
  geoenrich route --sources data/apartments_v5.csv --targets data/grocery_stores_v2.csv \
    --target-key id --target-address address --target-column grocery_store_id \
    --mode driving --out data/grocery_store_distances.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := routeFlags
		ctx := cmd.Context()

		mode, err := travelMode(f.mode)
		if err != nil {
			return err
		}
		batchSize := cfg.Routing.BatchSize
		if cmd.Flags().Changed("batch-size") {
			batchSize = f.batchSize
		}

		sources, err := entityRepo(f.sources, repositories.EntityColumns{
			Key:     f.sourceKey,
			Name:    f.sourceName,
			Address: f.sourceAddress,
		})
		if err != nil {
			return err
		}

		targetCols := repositories.EntityColumns{Key: f.targetKey}
		locateTarget := services.ByCoordinates
		if f.targetAddress != "" {
			targetCols.Address = f.targetAddress
			locateTarget = services.ByAddress
		} else {
			targetCols.Lat, targetCols.Lng = f.targetLat, f.targetLng
		}
		targets, err := entityRepo(f.targets, targetCols)
		if err != nil {
			return err
		}

		b, err := openBackends(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		provider, err := b.routeProvider()
		if err != nil {
			return err
		}

		req := services.RouteMatrixRequest{
			Mode:         mode,
			BatchSize:    batchSize,
			LocateSource: services.ByAddress,
			LocateTarget: locateTarget,
		}
		pairs, _, err := services.RouteMatrix(ctx, req, sources, targets, provider, pacing.Every(cfg.Routing.Delay))
		if err != nil {
			return eris.Wrap(err, "route")
		}
		return repositories.WritePairs(f.out, repositories.PairColumns{
			Source:       f.sourceColumn,
			Target:       f.targetColumn,
			WithDuration: true,
		}, pairs)
	},
}

func init() {
	fl := routeCmd.Flags()
	fl.StringVar(&routeFlags.sources, "sources", "", "source CSV (e.g. apartments)")
	fl.StringVar(&routeFlags.targets, "targets", "", "target CSV (e.g. bus stops)")
	fl.StringVar(&routeFlags.sourceKey, "source-key", "id", "source key column")
	fl.StringVar(&routeFlags.sourceName, "source-name", "name", "source name column, for progress logs")
	fl.StringVar(&routeFlags.sourceAddress, "source-address", "address", "source address column")
	fl.StringVar(&routeFlags.targetKey, "target-key", "Stop ID (Full)", "target key column")
	fl.StringVar(&routeFlags.targetAddress, "target-address", "", "route to this target address column instead of coordinates")
	fl.StringVar(&routeFlags.targetLat, "target-lat", "Latitude", "target latitude column")
	fl.StringVar(&routeFlags.targetLng, "target-lng", "Longitude", "target longitude column")
	fl.StringVar(&routeFlags.sourceColumn, "source-column", "apartment_id", "output column for the source key")
	fl.StringVar(&routeFlags.targetColumn, "target-column", "bus_stop_id", "output column for the target key")
	fl.StringVar(&routeFlags.mode, "mode", "", "walking or driving (default routing.mode)")
	fl.IntVar(&routeFlags.batchSize, "batch-size", services.DefaultBatchSize, "destinations per request, 0 for no cap (default routing.batch_size)")
	fl.StringVar(&routeFlags.out, "out", "", "output CSV")
	for _, name := range []string{"sources", "targets", "out"} {
		_ = routeCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(routeCmd)
}
