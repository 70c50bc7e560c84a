package datastructure

import (
	"log"

	"pathfinder/pkg/util"
)

// KosarajuSCC returns the strongly connected components of the graph as
// lists of node ids. Two passes of iterative dfs: finish order on the
// forward graph, then component sweeps over the reversed graph in reverse
// finish order.
func (g *Graph) KosarajuSCC() [][]int32 {
	n := len(g.Nodes)

	reverseAdj := make([][]int32, n)
	for _, edge := range g.Edges {
		toIdx := g.nodeIndex[edge.ToNodeID]
		reverseAdj[toIdx] = append(reverseAdj[toIdx], int32(g.nodeIndex[edge.FromNodeID]))
	}

	order := make([]int32, 0, n)
	visited := make([]bool, n)
	for i := 0; i < n; i++ {
		if !visited[i] {
			g.dfsForwardOrder(int32(i), &order, visited)
		}
	}

	order = util.ReverseG(order)

	visited = make([]bool, n)
	components := make([][]int32, 0)
	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]int32, 0)
		stack := []int32{v}
		visited[v] = true
		for len(stack) > 0 {
			curr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, g.Nodes[curr].ID)
			for _, prev := range reverseAdj[curr] {
				if !visited[prev] {
					visited[prev] = true
					stack = append(stack, prev)
				}
			}
		}
		components = append(components, component)
	}

	return components
}

// dfsForwardOrder appends node indices to order in dfs finish order,
// iteratively so deep road chains cannot blow the stack.
func (g *Graph) dfsForwardOrder(start int32, order *[]int32, visited []bool) {
	type frame struct {
		node    int32
		edgePos int
	}
	stack := []frame{{node: start}}
	visited[start] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		outEdges := g.firstOutEdges[top.node]

		if top.edgePos < len(outEdges) {
			edge := g.Edges[outEdges[top.edgePos]]
			top.edgePos++
			nextIdx := int32(g.nodeIndex[edge.ToNodeID])
			if !visited[nextIdx] {
				visited[nextIdx] = true
				stack = append(stack, frame{node: nextIdx})
			}
			continue
		}

		*order = append(*order, top.node)
		stack = stack[:len(stack)-1]
	}
}

// LargestComponentSubgraph keeps only the largest strongly connected
// component, so any two snapped nodes are mutually reachable. Road network
// extracts routinely carry small disconnected fragments (parking aisles,
// clipped boundary roads); routing over the largest component avoids
// spurious no-route results for points snapped into a fragment.
func LargestComponentSubgraph(g *Graph) (*Graph, error) {
	components := g.KosarajuSCC()
	if len(components) <= 1 {
		return g, nil
	}

	largest := components[0]
	for _, component := range components[1:] {
		if len(component) > len(largest) {
			largest = component
		}
	}

	keep := make(map[int32]struct{}, len(largest))
	for _, nodeID := range largest {
		keep[nodeID] = struct{}{}
	}

	nodes := make([]Node, 0, len(largest))
	for _, node := range g.Nodes {
		if _, ok := keep[node.ID]; ok {
			nodes = append(nodes, node)
		}
	}

	edges := make([]Edge, 0, len(g.Edges))
	for _, edge := range g.Edges {
		if _, ok := keep[edge.FromNodeID]; !ok {
			continue
		}
		if _, ok := keep[edge.ToNodeID]; !ok {
			continue
		}
		edge.EdgeID = int32(len(edges))
		edges = append(edges, edge)
	}

	log.Printf("kept largest strongly connected component: %d of %d nodes (%d components)",
		len(nodes), len(g.Nodes), len(components))

	return NewGraph(nodes, edges)
}
