package domain

import "math"

// EarthRadiusMiles is the mean Earth radius.
const EarthRadiusMiles = 3958.8

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// HaversineMiles returns the great-circle distance in miles between two
// points given in degrees.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lng2 - lng1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// DistanceMiles is HaversineMiles over two coordinate values.
func DistanceMiles(a, b Coordinates) float64 {
	return HaversineMiles(a.Lat, a.Lon, b.Lat, b.Lon)
}
