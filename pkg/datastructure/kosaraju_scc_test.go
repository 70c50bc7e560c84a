package datastructure

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildComponentGraph(t *testing.T) *Graph {
	// {0,1,4} form one cycle, {2,3} another, with a one-way bridge 1->2.
	edges := []Edge{
		NewEdge(0, 0, 1, 100),
		NewEdge(1, 1, 2, 100),
		NewEdge(2, 1, 4, 100),
		NewEdge(3, 2, 3, 100),
		NewEdge(4, 3, 2, 100),
		NewEdge(5, 4, 0, 100),
	}

	nodes := make([]Node, 5)
	for i := 0; i < 5; i++ {
		nodes[i] = NewNode(int32(i), 0, float64(i)*0.001)
	}

	g, err := NewGraph(nodes, edges)
	require.NoError(t, err)
	return g
}

func TestKosarajuSCC(t *testing.T) {
	g := buildComponentGraph(t)

	scc := g.KosarajuSCC()
	assert.Equal(t, 2, len(scc))

	sizes := []int{len(scc[0]), len(scc[1])}
	sort.Ints(sizes)
	assert.Equal(t, []int{2, 3}, sizes)
}

func TestKosarajuSCCSingleComponent(t *testing.T) {
	nodes := []Node{
		NewNode(0, 0, 0),
		NewNode(1, 0, 0.001),
	}
	edges := []Edge{
		NewEdge(0, 0, 1, 100),
		NewEdge(1, 1, 0, 100),
	}
	g, err := NewGraph(nodes, edges)
	require.NoError(t, err)

	scc := g.KosarajuSCC()
	assert.Equal(t, 1, len(scc))
	assert.Equal(t, 2, len(scc[0]))
}

func TestLargestComponentSubgraph(t *testing.T) {
	g := buildComponentGraph(t)

	filtered, err := LargestComponentSubgraph(g)
	require.NoError(t, err)

	assert.Equal(t, 3, filtered.GetNumNodes())
	assert.True(t, filtered.HasNode(0))
	assert.True(t, filtered.HasNode(1))
	assert.True(t, filtered.HasNode(4))
	assert.False(t, filtered.HasNode(2))
	assert.False(t, filtered.HasNode(3))

	// only edges whose endpoints both survive remain, 1->2 bridge is dropped.
	assert.Equal(t, 3, filtered.GetNumEdges())
}

func TestLargestComponentSubgraphAlreadyConnected(t *testing.T) {
	nodes := []Node{
		NewNode(0, 0, 0),
		NewNode(1, 0, 0.001),
	}
	edges := []Edge{
		NewEdge(0, 0, 1, 100),
		NewEdge(1, 1, 0, 100),
	}
	g, err := NewGraph(nodes, edges)
	require.NoError(t, err)

	filtered, err := LargestComponentSubgraph(g)
	require.NoError(t, err)
	assert.Same(t, g, filtered)
}
