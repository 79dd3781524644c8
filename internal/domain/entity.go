package domain

import "strings"

// Entity is one side of a pairwise computation: an apartment, a bus stop,
// a grocery store, a crime report.
// Coords is nil when the source row had no parseable position.
type Entity struct {
	Key     string
	Name    string
	Address string
	Coords  *Coordinates
}

func (e Entity) HasCoordinates() bool { return e.Coords != nil }

// Location is a waypoint handed to a routing or geocoding backend.
// Coordinates take precedence over the address when both are set.
type Location struct {
	Address string
	Coords  *Coordinates
}

func AddressLocation(address string) Location {
	return Location{Address: NormalizeAddress(address)}
}

func CoordinateLocation(c Coordinates) Location {
	return Location{Coords: &c}
}

// Key is a stable textual form of the location, used for cache keys and logs.
func (l Location) Key() string {
	if l.Coords != nil {
		return l.Coords.LatLng()
	}
	return NormalizeAddress(l.Address)
}

func (l Location) IsZero() bool {
	return l.Coords == nil && strings.TrimSpace(l.Address) == ""
}

// NormalizeAddress collapses whitespace so equal addresses produce equal keys.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
