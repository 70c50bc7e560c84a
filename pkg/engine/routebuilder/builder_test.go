package routebuilder

import (
	"testing"

	"pathfinder/pkg/datastructure"
	"pathfinder/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestGraph(t *testing.T) *datastructure.Graph {
	nodes := []datastructure.Node{
		datastructure.NewNode(0, 0, 0),
		datastructure.NewNode(1, 0, 0.01),
		datastructure.NewNode(2, 0, 0.02),
	}
	edges := []datastructure.Edge{
		datastructure.NewEdge(0, 0, 1, 1100),
		datastructure.NewEdge(1, 1, 2, 1100),
	}
	g, err := datastructure.NewGraph(nodes, edges)
	require.NoError(t, err)
	return g
}

func TestBuildWalkRoute(t *testing.T) {
	rb := NewRouteBuilder(buildTestGraph(t))

	route, err := rb.Build([]int32{0, 1, 2}, datastructure.TravelModeWalk)
	require.NoError(t, err)

	require.Len(t, route.Coordinates, 3)
	assert.Equal(t, datastructure.NewCoordinate(0, 0), route.Coordinates[0])
	assert.Equal(t, datastructure.NewCoordinate(0, 0.02), route.Coordinates[2])

	// 2 segments of 0.01 degree at the equator, 1.112 km each
	assert.InDelta(t, 2.224, route.Dist, 0.001)
	assert.Equal(t, 2.22, route.DistKmRounded())

	// 2.224 km at 5 km/h = 26.7 minutes, rounded to 27
	assert.Equal(t, 27, route.BaseTimeMinutes)
}

func TestBuildDistanceInvariantUnderReversal(t *testing.T) {
	rb := NewRouteBuilder(buildTestGraph(t))

	forward, err := rb.Build([]int32{0, 1, 2}, datastructure.TravelModeCar)
	require.NoError(t, err)
	backward, err := rb.Build(util.ReverseG([]int32{0, 1, 2}), datastructure.TravelModeCar)
	require.NoError(t, err)

	assert.Equal(t, forward.Dist, backward.Dist)
}

func TestBuildSingleNodePath(t *testing.T) {
	rb := NewRouteBuilder(buildTestGraph(t))

	route, err := rb.Build([]int32{1}, datastructure.TravelModeBike)
	require.NoError(t, err)

	require.Len(t, route.Coordinates, 1)
	assert.Equal(t, 0.0, route.Dist)
	assert.Equal(t, 0, route.BaseTimeMinutes)
}

func TestBuildEmptyPath(t *testing.T) {
	rb := NewRouteBuilder(buildTestGraph(t))

	_, err := rb.Build(nil, datastructure.TravelModeCar)
	assert.ErrorIs(t, err, ErrEmptyNodePath)
}

func TestBuildTimeScalesWithMode(t *testing.T) {
	rb := NewRouteBuilder(buildTestGraph(t))

	car, err := rb.Build([]int32{0, 1, 2}, datastructure.TravelModeCar)
	require.NoError(t, err)
	bike, err := rb.Build([]int32{0, 1, 2}, datastructure.TravelModeBike)
	require.NoError(t, err)

	// 2.224 km: car 50 km/h = 2.67 min -> 3, bike 15 km/h = 8.9 min -> 9
	assert.Equal(t, 3, car.BaseTimeMinutes)
	assert.Equal(t, 9, bike.BaseTimeMinutes)
}
