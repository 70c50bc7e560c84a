package routingalgorithm

import "pathfinder/pkg/datastructure"

// Graph is the read-only view of the road network the search runs over. The
// engine never mutates it, so one graph instance can serve concurrent
// queries.
type Graph interface {
	HasNode(nodeID int32) bool
	GetNode(nodeID int32) datastructure.Node
	GetNodeFirstOutEdges(nodeID int32) []int32
	GetOutEdge(edgeIdx int32) datastructure.Edge
}
