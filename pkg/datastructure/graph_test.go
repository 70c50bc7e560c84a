package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraphBuildsAdjacency(t *testing.T) {
	nodes := []Node{
		NewNode(0, -7.550676, 110.828316),
		NewNode(1, -7.560725, 110.856258),
		NewNode(2, -7.580000, 110.860000),
	}
	edges := []Edge{
		NewEdge(0, 0, 1, 3100),
		NewEdge(1, 1, 2, 2200),
		NewEdge(2, 1, 0, 3100),
	}

	g, err := NewGraph(nodes, edges)
	require.NoError(t, err)

	assert.Equal(t, 3, g.GetNumNodes())
	assert.Equal(t, 3, g.GetNumEdges())
	assert.True(t, g.HasNode(1))
	assert.False(t, g.HasNode(42))

	outEdges := g.GetNodeFirstOutEdges(1)
	require.Len(t, outEdges, 2)
	assert.Equal(t, int32(2), g.GetOutEdge(outEdges[0]).ToNodeID)
	assert.Equal(t, int32(0), g.GetOutEdge(outEdges[1]).ToNodeID)
}

func TestNewGraphRejectsDanglingEdge(t *testing.T) {
	nodes := []Node{NewNode(0, 0, 0)}
	edges := []Edge{NewEdge(0, 0, 99, 100)}

	_, err := NewGraph(nodes, edges)
	assert.Error(t, err)
}

func TestNewGraphRejectsNegativeLength(t *testing.T) {
	nodes := []Node{NewNode(0, 0, 0), NewNode(1, 0, 0.01)}
	edges := []Edge{NewEdge(0, 0, 1, -5)}

	_, err := NewGraph(nodes, edges)
	assert.Error(t, err)
}

func TestNewGraphRejectsDuplicateNodeID(t *testing.T) {
	nodes := []Node{NewNode(0, 0, 0), NewNode(0, 1, 1)}

	_, err := NewGraph(nodes, nil)
	assert.Error(t, err)
}
