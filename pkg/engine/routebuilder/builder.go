package routebuilder

import (
	"errors"
	"math"

	"pathfinder/pkg/datastructure"
	"pathfinder/pkg/geo"
)

var (
	ErrEmptyNodePath = errors.New("node path must contain at least one node")
)

type Graph interface {
	GetNode(nodeID int32) datastructure.Node
}

// RouteBuilder turns a node id path from the search into a geometric route
// with distance and travel time estimates.
type RouteBuilder struct {
	g Graph
}

func NewRouteBuilder(g Graph) *RouteBuilder {
	return &RouteBuilder{g: g}
}

// Build maps the node path to coordinates and sums the haversine distance
// between consecutive points. The distance is recomputed from coordinates
// instead of summing stored edge lengths, so the reported value reflects the
// true geodesic geometry even when edge metadata is approximate; it can
// diverge slightly from the search objective. A single-node path (start
// snapped to the same node as the goal) is a valid zero-distance route.
func (rb *RouteBuilder) Build(nodePath []int32, mode datastructure.TravelMode) (datastructure.Route, error) {
	if len(nodePath) == 0 {
		return datastructure.Route{}, ErrEmptyNodePath
	}

	coords := make([]datastructure.Coordinate, 0, len(nodePath))
	for _, nodeID := range nodePath {
		coords = append(coords, rb.g.GetNode(nodeID).Coordinate())
	}

	totalDist := 0.0
	for i := 1; i < len(coords); i++ {
		totalDist += geo.CalculateHaversineDistance(
			coords[i-1].Lat, coords[i-1].Lon,
			coords[i].Lat, coords[i].Lon,
		)
	}

	baseTime := int(math.Round(totalDist / mode.SpeedKmh() * 60))

	return datastructure.Route{
		Coordinates:     coords,
		Dist:            totalDist,
		BaseTimeMinutes: baseTime,
		Mode:            mode,
	}, nil
}
