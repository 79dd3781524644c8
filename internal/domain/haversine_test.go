package domain

import (
	"math"
	"testing"

	"github.com/umahmood/haversine"
)

var samplePoints = []Coordinates{
	{Lat: 38.5449, Lon: -121.7405},
	{Lat: 38.5382, Lon: -121.7617},
	{Lat: 38.5616, Lon: -121.7190},
	{Lat: 0, Lon: 0},
	{Lat: -33.8688, Lon: 151.2093},
	{Lat: 51.5074, Lon: -0.1278},
	{Lat: 89.9, Lon: 45},
	{Lat: -89.9, Lon: -135},
	{Lat: 0, Lon: 180},
	{Lat: 0, Lon: -180},
}

func TestHaversineZeroIdentity(t *testing.T) {
	for _, p := range samplePoints {
		if d := DistanceMiles(p, p); d != 0 {
			t.Errorf("distance(%v, %v) = %v, want 0", p, p, d)
		}
	}

	if d := HaversineMiles(38.5449, -121.7405, 38.5449, -121.7405); d != 0 {
		t.Fatalf("campus center to itself = %v, want 0", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			ab := DistanceMiles(a, b)
			ba := DistanceMiles(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance(%v, %v) = %v but distance(%v, %v) = %v", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestHaversineTriangleInequality(t *testing.T) {
	const eps = 1e-9
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			for _, c := range samplePoints {
				ac := DistanceMiles(a, c)
				abc := DistanceMiles(a, b) + DistanceMiles(b, c)
				if ac > abc+eps {
					t.Errorf("triangle inequality violated for %v %v %v: %v > %v", a, b, c, ac, abc)
				}
			}
		}
	}
}

func TestHaversineOneDegreeOfLatitude(t *testing.T) {
	d := HaversineMiles(38.0, -121.7405, 39.0, -121.7405)
	if math.Abs(d-69.0)/69.0 > 0.01 {
		t.Fatalf("one degree of latitude = %v miles, want ~69.0", d)
	}
}

func TestHaversineAntipodes(t *testing.T) {
	d := HaversineMiles(0, 0, 0, 180)
	want := math.Pi * EarthRadiusMiles
	if math.Abs(d-want) > 1e-6 {
		t.Fatalf("antipodal distance = %v, want %v", d, want)
	}
}

// The reference package uses a 3958 mile radius, so results agree to within
// the radius ratio.
func TestHaversineMatchesReferencePackage(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			got := DistanceMiles(a, b)
			ref, _ := haversine.Distance(
				haversine.Coord{Lat: a.Lat, Lon: a.Lon},
				haversine.Coord{Lat: b.Lat, Lon: b.Lon},
			)
			if ref == 0 {
				if got > 1e-9 {
					t.Errorf("distance(%v, %v) = %v, reference says 0", a, b, got)
				}
				continue
			}
			if math.Abs(got-ref)/ref > 1e-3 {
				t.Errorf("distance(%v, %v) = %v, reference %v", a, b, got, ref)
			}
		}
	}
}
