package routingalgorithm

import (
	"context"
	"testing"

	"pathfinder/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// equator grid, 0.01 degree of longitude = 1.112 km. Two routes from node 0
// to node 2: direct chain via 1 (2.4 km) and a detour via 3 (3.2 km). Node 4
// is disconnected from everything.
func buildTestGraph(t *testing.T) *datastructure.Graph {
	nodes := []datastructure.Node{
		datastructure.NewNode(0, 0, 0),
		datastructure.NewNode(1, 0, 0.01),
		datastructure.NewNode(2, 0, 0.02),
		datastructure.NewNode(3, 0.01, 0.01),
		datastructure.NewNode(4, 1, 1),
	}
	edges := []datastructure.Edge{
		datastructure.NewEdge(0, 0, 1, 1200),
		datastructure.NewEdge(1, 1, 2, 1200),
		datastructure.NewEdge(2, 0, 3, 1600),
		datastructure.NewEdge(3, 3, 2, 1600),
	}
	g, err := datastructure.NewGraph(nodes, edges)
	require.NoError(t, err)
	return g
}

func TestShortestPathAStar(t *testing.T) {
	g := buildTestGraph(t)
	rt := NewRouteAlgorithm(g)

	path, cost, err := rt.ShortestPathAStar(context.Background(), 0, 2)
	require.NoError(t, err)

	assert.Equal(t, []int32{0, 1, 2}, path)
	assert.InDelta(t, 2.4, cost, 0.0001)

	// returned cost equals the summed weights of the returned path
	sum := 0.0
	for i := 0; i+1 < len(path); i++ {
		for _, edgeIdx := range g.GetNodeFirstOutEdges(path[i]) {
			edge := g.GetOutEdge(edgeIdx)
			if edge.ToNodeID == path[i+1] {
				sum += edge.Dist / 1000.0
			}
		}
	}
	assert.InDelta(t, sum, cost, 0.0001)
}

func TestShortestPathAStarSameStartAndGoal(t *testing.T) {
	g := buildTestGraph(t)
	rt := NewRouteAlgorithm(g)

	path, cost, err := rt.ShortestPathAStar(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, path)
	assert.Equal(t, 0.0, cost)
}

func TestShortestPathAStarNoPathFound(t *testing.T) {
	g := buildTestGraph(t)
	rt := NewRouteAlgorithm(g)

	_, _, err := rt.ShortestPathAStar(context.Background(), 0, 4)
	assert.ErrorIs(t, err, ErrNoPathFound)
}

func TestShortestPathAStarInvalidNode(t *testing.T) {
	g := buildTestGraph(t)
	rt := NewRouteAlgorithm(g)

	_, _, err := rt.ShortestPathAStar(context.Background(), 0, 99)
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, _, err = rt.ShortestPathAStar(context.Background(), -5, 2)
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestShortestPathAStarParallelEdgesUseMinimum(t *testing.T) {
	nodes := []datastructure.Node{
		datastructure.NewNode(0, 0, 0),
		datastructure.NewNode(1, 0, 0.01),
	}
	edges := []datastructure.Edge{
		datastructure.NewEdge(0, 0, 1, 1500),
		datastructure.NewEdge(1, 0, 1, 1200),
	}
	g, err := datastructure.NewGraph(nodes, edges)
	require.NoError(t, err)
	rt := NewRouteAlgorithm(g)

	path, cost, err := rt.ShortestPathAStar(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1}, path)
	assert.InDelta(t, 1.2, cost, 0.0001)
}

func TestShortestPathAStarCancelled(t *testing.T) {
	g := buildTestGraph(t)
	rt := NewRouteAlgorithm(g)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := rt.ShortestPathAStar(ctx, 0, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShortestPathAStarDirectedOnly(t *testing.T) {
	// edge 1 -> 0 only: forward query fails, reverse succeeds
	nodes := []datastructure.Node{
		datastructure.NewNode(0, 0, 0),
		datastructure.NewNode(1, 0, 0.01),
	}
	edges := []datastructure.Edge{
		datastructure.NewEdge(0, 1, 0, 1200),
	}
	g, err := datastructure.NewGraph(nodes, edges)
	require.NoError(t, err)
	rt := NewRouteAlgorithm(g)

	_, _, err = rt.ShortestPathAStar(context.Background(), 0, 1)
	assert.ErrorIs(t, err, ErrNoPathFound)

	path, _, err := rt.ShortestPathAStar(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 0}, path)
}
