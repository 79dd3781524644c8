package services

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PlaceColumns is the header of a discovered-places table.
var PlaceColumns = []string{"name", "address", "lat", "lng", "place_id", "rating", "user_ratings_total", "types"}

// PlaceQueryPresets are the query sets used to discover each kind of place.
var PlaceQueryPresets = map[string][]string{
	"apartments": {
		"apartment complex",
		"apartment building",
		"apartments",
		"student housing",
		"apartment community",
		"apartment rental",
	},
	"grocery": {
		"grocery store",
		"supermarket",
		"grocery",
		"food market",
		"grocery store in Davis",
	},
}

type PlacesRequest struct {
	Queries []string
	// Appended to every query as "<query> in <Area>".
	Area         string
	Center       domain.Coordinates
	RadiusMeters int
	// Kept places must mention Locality in their address, case-insensitively.
	Locality string
	// Wait before following a next-page token; the backend rejects tokens
	// used too early.
	PageDelay time.Duration
}

type PlacesSummary struct {
	Queries int
	Failed  int
	Unique  int
	Kept    int
}

// DiscoverPlaces runs each text query, follows pagination, dedupes by place
// id and returns the places within the locality sorted by name. A failing
// query is logged and skipped.
func DiscoverPlaces(
	ctx context.Context,
	req PlacesRequest,
	searcher ports.PlaceSearcher,
	pacer ports.Pacer,
) (_ *tabular.Table, _ PlacesSummary, err error) {
	defer obs.Time(ctx, "discover_places")(&err)

	if searcher == nil || pacer == nil {
		return nil, PlacesSummary{}, errors.New("discover places: searcher and pacer are required")
	}
	if len(req.Queries) == 0 {
		return nil, PlacesSummary{}, errors.New("discover places: no queries")
	}

	log := obs.Logger(ctx)
	summary := PlacesSummary{Queries: len(req.Queries)}
	seen := map[string]struct{}{}
	var places []ports.Place

	collect := func(page ports.PlacePage) {
		for _, p := range page.Places {
			if _, dup := seen[p.PlaceID]; dup {
				continue
			}
			seen[p.PlaceID] = struct{}{}
			places = append(places, p)
		}
	}

	for _, q := range req.Queries {
		if err := pacer.Wait(ctx); err != nil {
			return nil, summary, fmt.Errorf("discover places: %w", err)
		}

		text := q
		if req.Area != "" {
			text = q + " in " + req.Area
		}
		n, err := searchAll(ctx, searcher, ports.PlaceQuery{
			Text:         text,
			Center:       req.Center,
			RadiusMeters: req.RadiusMeters,
		}, req.PageDelay, collect)
		if err != nil {
			if ctx.Err() != nil {
				return nil, summary, fmt.Errorf("discover places: %w", ctx.Err())
			}
			summary.Failed++
			log.Warn("search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		log.Info("search done", zap.String("query", q), zap.Int("results", n))
	}

	summary.Unique = len(places)
	kept := places[:0]
	for _, p := range places {
		if req.Locality == "" || strings.Contains(strings.ToLower(p.Address), strings.ToLower(req.Locality)) {
			kept = append(kept, p)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })
	summary.Kept = len(kept)

	t := tabular.New(PlaceColumns...)
	for _, p := range kept {
		t.Append(placeRow(p))
	}

	log.Info("places discovered",
		zap.Int("unique", summary.Unique),
		zap.Int("kept", summary.Kept),
		zap.Int("failed_queries", summary.Failed),
	)
	return t, summary, nil
}

// searchAll fetches the first page of q and every continuation page,
// handing each to collect. It returns the number of places seen.
func searchAll(
	ctx context.Context,
	searcher ports.PlaceSearcher,
	q ports.PlaceQuery,
	pageDelay time.Duration,
	collect func(ports.PlacePage),
) (int, error) {
	page, err := searcher.SearchText(ctx, q)
	if err != nil {
		return 0, err
	}
	n := len(page.Places)
	collect(page)

	for page.NextPageToken != "" {
		if err := pacing.Sleep(ctx, pageDelay); err != nil {
			return n, err
		}
		page, err = searcher.SearchText(ctx, ports.PlaceQuery{PageToken: page.NextPageToken})
		if err != nil {
			return n, err
		}
		n += len(page.Places)
		collect(page)
	}
	return n, nil
}

func placeRow(p ports.Place) []string {
	rating := ""
	if p.Rating != nil {
		rating = tabular.FormatFloat(*p.Rating)
	}
	total := ""
	if p.UserRatingsTotal != nil {
		total = strconv.Itoa(*p.UserRatingsTotal)
	}
	return []string{
		p.Name,
		p.Address,
		tabular.FormatFloat(p.Coords.Lat),
		tabular.FormatFloat(p.Coords.Lon),
		p.PlaceID,
		rating,
		total,
		formatTypes(p.Types),
	}
}

// formatTypes renders a type list as ['a', 'b'], the form existing place
// tables already use.
func formatTypes(types []string) string {
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = "'" + t + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
