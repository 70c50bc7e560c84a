package datastructure

import (
	"fmt"
)

// Node is a vertex of the road network with its geographic position.
type Node struct {
	ID  int32   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewNode(id int32, lat, lon float64) Node {
	return Node{
		ID:  id,
		Lat: lat,
		Lon: lon,
	}
}

func (n Node) Coordinate() Coordinate {
	return NewCoordinate(n.Lat, n.Lon)
}

// Edge is a directed road segment. Dist is the stored segment length in meter.
type Edge struct {
	EdgeID     int32   `json:"edge_id"`
	FromNodeID int32   `json:"from_node_id"`
	ToNodeID   int32   `json:"to_node_id"`
	Dist       float64 `json:"dist"`
}

func NewEdge(edgeID, fromNodeID, toNodeID int32, dist float64) Edge {
	return Edge{
		EdgeID:     edgeID,
		FromNodeID: fromNodeID,
		ToNodeID:   toNodeID,
		Dist:       dist,
	}
}

// Graph is the in-memory road network used by every routing query. After
// NewGraph returns, the graph is never mutated, so concurrent queries can
// share one instance without synchronization.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	firstOutEdges [][]int32
	nodeIndex     map[int32]int
}

// NewGraph builds the adjacency structure and checks the edge invariants:
// every edge endpoint must reference a known node and every stored length
// must be non-negative.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		Nodes:         nodes,
		Edges:         edges,
		firstOutEdges: make([][]int32, len(nodes)),
		nodeIndex:     make(map[int32]int, len(nodes)),
	}

	for i, node := range nodes {
		if _, ok := g.nodeIndex[node.ID]; ok {
			return nil, fmt.Errorf("duplicate node id %d", node.ID)
		}
		g.nodeIndex[node.ID] = i
	}

	for i, edge := range edges {
		if edge.Dist < 0 {
			return nil, fmt.Errorf("edge %d has negative length %f", edge.EdgeID, edge.Dist)
		}
		fromIdx, ok := g.nodeIndex[edge.FromNodeID]
		if !ok {
			return nil, fmt.Errorf("edge %d references unknown from node %d", edge.EdgeID, edge.FromNodeID)
		}
		if _, ok := g.nodeIndex[edge.ToNodeID]; !ok {
			return nil, fmt.Errorf("edge %d references unknown to node %d", edge.EdgeID, edge.ToNodeID)
		}
		g.firstOutEdges[fromIdx] = append(g.firstOutEdges[fromIdx], int32(i))
	}

	return g, nil
}

// HasNode reports whether nodeID belongs to the graph.
func (g *Graph) HasNode(nodeID int32) bool {
	_, ok := g.nodeIndex[nodeID]
	return ok
}

// GetNode returns the node with the given id. The caller must make sure the
// id belongs to the graph (HasNode).
func (g *Graph) GetNode(nodeID int32) Node {
	return g.Nodes[g.nodeIndex[nodeID]]
}

// GetNodeFirstOutEdges returns the indices into Edges of all outgoing edges
// of nodeID.
func (g *Graph) GetNodeFirstOutEdges(nodeID int32) []int32 {
	return g.firstOutEdges[g.nodeIndex[nodeID]]
}

// GetOutEdge returns the edge at index edgeIdx as handed out by
// GetNodeFirstOutEdges.
func (g *Graph) GetOutEdge(edgeIdx int32) Edge {
	return g.Edges[edgeIdx]
}

func (g *Graph) GetNumNodes() int {
	return len(g.Nodes)
}

func (g *Graph) GetNumEdges() int {
	return len(g.Edges)
}
