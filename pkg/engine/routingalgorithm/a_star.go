package routingalgorithm

import (
	"context"
	"errors"

	"pathfinder/pkg/datastructure"
	"pathfinder/pkg/geo"
	"pathfinder/pkg/util"
)

// https://www.cs.princeton.edu/courses/archive/spr06/cos423/Handouts/GH05.pdf

var (
	// ErrNoPathFound means the goal is unreachable from the start node.
	// Expected outcome on disconnected graphs, not a system failure.
	ErrNoPathFound = errors.New("no path found between start and goal")
	// ErrInvalidNode means a node id outside the graph was passed in,
	// which indicates a bug in the snapping step.
	ErrInvalidNode = errors.New("node not present in graph")
)

type RouteAlgorithm struct {
	g Graph
}

func NewRouteAlgorithm(g Graph) *RouteAlgorithm {
	return &RouteAlgorithm{g: g}
}

// ShortestPathAStar runs A* from from to to, weighted by stored edge length.
// Returns the node id path and its total weight in km. The heuristic is the
// haversine distance to the goal; straight-line distance never exceeds the
// network distance and satisfies the triangle inequality, so the first goal
// expansion is optimal and closed nodes never need re-expansion.
//
// The search state is private to the call; ctx is checked once per node
// expansion so a caller can impose an external deadline on large graphs.
func (rt *RouteAlgorithm) ShortestPathAStar(ctx context.Context, from, to int32) ([]int32, float64, error) {
	if !rt.g.HasNode(from) || !rt.g.HasNode(to) {
		return nil, 0, ErrInvalidNode
	}

	if from == to {
		return []int32{from}, 0, nil
	}

	goalNode := rt.g.GetNode(to)

	pq := datastructure.NewMinHeap[int32]()

	costSoFar := make(map[int32]float64)
	costSoFar[from] = 0.0

	cameFrom := make(map[int32]int32)
	cameFrom[from] = -1

	visited := make(map[int32]struct{})

	pq.Insert(datastructure.PriorityQueueNode[int32]{
		Rank: rt.pathEstimatedCost(rt.g.GetNode(from), goalNode),
		Item: from,
	})

	for pq.Size() != 0 {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}

		current, _ := pq.ExtractMin()
		if current.Item == to {
			path := make([]int32, 0)
			for currID := to; currID != -1; currID = cameFrom[currID] {
				path = append(path, currID)
			}
			return util.ReverseG(path), costSoFar[to], nil
		}

		for _, edgeIdx := range rt.g.GetNodeFirstOutEdges(current.Item) {
			edge := rt.g.GetOutEdge(edgeIdx)
			if _, ok := visited[edge.ToNodeID]; ok {
				continue
			}

			// stored edge length is in meter, weights and heuristic in km
			newCost := costSoFar[current.Item] + edge.Dist/1000.0

			prevCost, seen := costSoFar[edge.ToNodeID]
			if !seen {
				neighbor := rt.g.GetNode(edge.ToNodeID)
				costSoFar[edge.ToNodeID] = newCost
				cameFrom[edge.ToNodeID] = current.Item

				pq.Insert(datastructure.PriorityQueueNode[int32]{
					Rank:     newCost + rt.pathEstimatedCost(neighbor, goalNode),
					Tiebreak: newCost,
					Item:     edge.ToNodeID,
				})
			} else if newCost < prevCost {
				neighbor := rt.g.GetNode(edge.ToNodeID)
				costSoFar[edge.ToNodeID] = newCost
				cameFrom[edge.ToNodeID] = current.Item

				pq.DecreaseKey(datastructure.PriorityQueueNode[int32]{
					Rank:     newCost + rt.pathEstimatedCost(neighbor, goalNode),
					Tiebreak: newCost,
					Item:     edge.ToNodeID,
				})
			}
		}

		visited[current.Item] = struct{}{}
	}

	return nil, 0, ErrNoPathFound
}

func (rt *RouteAlgorithm) pathEstimatedCost(from, to datastructure.Node) float64 {
	return geo.CalculateHaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon)
}
