package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// ChordAngleDistance returns the s2 angular distance between two coordinates.
// Monotonic with the haversine distance, so it is safe for ordering candidate
// nodes without paying for the full haversine per comparison.
func ChordAngleDistance(latOne, longOne, latTwo, longTwo float64) s1.Angle {
	return s2.LatLngFromDegrees(latOne, longOne).Distance(s2.LatLngFromDegrees(latTwo, longTwo))
}
