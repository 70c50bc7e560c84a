package snap

import (
	"errors"
	"math"
	"sort"

	"pathfinder/pkg/datastructure"
	"pathfinder/pkg/geo"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s2"
	"github.com/uber/h3-go/v4"
)

var (
	// ErrEmptyGraph is returned when there are no nodes to snap to.
	ErrEmptyGraph = errors.New("graph has no nodes to snap to")
)

const (
	// graphs smaller than this are scanned linearly. The scan is exact
	// and cheaper than the r-tree walk at this size.
	linearScanThreshold = 512

	// number of r-tree candidates re-ranked by chord distance. The tree
	// already orders candidates correctly, so the window only exists to
	// break exact-distance ties by the lowest node id.
	nearestCandidates = 16

	// h3 resolution for the radius-query buckets, cell edge ~174 m.
	h3Resolution = 9

	pointTolerance = 1e-7
)

type nodeLeaf struct {
	node datastructure.Node
	rect rtreego.Rect
}

func (l *nodeLeaf) Bounds() rtreego.Rect {
	return l.rect
}

// unitVectorPoint embeds (lat, lon) on the unit sphere. Euclidean distance
// between embedded points is the chord length, which is monotone in the
// great-circle distance, so r-tree nearest ordering in this space is exact
// at every latitude. Indexing raw degrees is not: longitude degrees shrink
// toward the poles and misorder candidates there.
func unitVectorPoint(lat, lon float64) rtreego.Point {
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	return rtreego.Point{p.X, p.Y, p.Z}
}

// NodeSnapper maps an arbitrary coordinate onto the nearest graph node. Two
// index structures are built once per graph: an r-tree over node positions
// for nearest-node queries, and h3 cell buckets for radius queries. Both are
// read-only after construction, so one snapper serves concurrent queries.
type NodeSnapper struct {
	nodes []datastructure.Node
	tree  *rtreego.Rtree
	cells map[h3.Cell][]int32
	byID  map[int32]datastructure.Node
}

func NewNodeSnapper(nodes []datastructure.Node) *NodeSnapper {
	ns := &NodeSnapper{
		nodes: nodes,
		cells: make(map[h3.Cell][]int32),
		byID:  make(map[int32]datastructure.Node, len(nodes)),
	}

	if len(nodes) >= linearScanThreshold {
		ns.tree = rtreego.NewTree(3, 25, 50)
	}

	for _, node := range nodes {
		ns.byID[node.ID] = node

		cell := h3.LatLngToCell(h3.NewLatLng(node.Lat, node.Lon), h3Resolution)
		ns.cells[cell] = append(ns.cells[cell], node.ID)

		if ns.tree != nil {
			point := unitVectorPoint(node.Lat, node.Lon)
			ns.tree.Insert(&nodeLeaf{node: node, rect: point.ToRect(pointTolerance)})
		}
	}

	return ns
}

// NearestNode returns the id of the node closest to (lat, lon) under the
// great-circle distance, ties broken by the lowest node id.
func (ns *NodeSnapper) NearestNode(lat, lon float64) (int32, error) {
	if len(ns.nodes) == 0 {
		return 0, ErrEmptyGraph
	}

	if ns.tree == nil {
		return ns.nearestNodeLinear(lat, lon), nil
	}

	candidates := ns.tree.NearestNeighbors(nearestCandidates, unitVectorPoint(lat, lon))

	best := int32(-1)
	bestDist := math.MaxFloat64
	for _, c := range candidates {
		if c == nil {
			continue
		}
		leaf := c.(*nodeLeaf)
		dist := float64(geo.ChordAngleDistance(lat, lon, leaf.node.Lat, leaf.node.Lon))
		if dist < bestDist || (dist == bestDist && leaf.node.ID < best) {
			best = leaf.node.ID
			bestDist = dist
		}
	}
	return best, nil
}

// nearestNodeLinear is the exact O(n) fallback for small graphs.
func (ns *NodeSnapper) nearestNodeLinear(lat, lon float64) int32 {
	best := int32(-1)
	bestDist := math.MaxFloat64
	for _, node := range ns.nodes {
		dist := float64(geo.ChordAngleDistance(lat, lon, node.Lat, node.Lon))
		if dist < bestDist || (dist == bestDist && node.ID < best) {
			best = node.ID
			bestDist = dist
		}
	}
	return best
}

// NodeWithDistance pairs a node with its great-circle distance in km from
// the query point.
type NodeWithDistance struct {
	Node   datastructure.Node
	DistKm float64
}

// NearestNodesWithinRadius returns up to k nodes within radiusKm of the
// query point, closest first. Candidate lookup walks the h3 grid disk
// covering the radius, so only nearby cell buckets are inspected.
func (ns *NodeSnapper) NearestNodesWithinRadius(lat, lon float64, radiusKm float64, k int) ([]NodeWithDistance, error) {
	if len(ns.nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	results := make([]NodeWithDistance, 0, k)
	for _, cell := range ns.kRingIndexesArea(lat, lon, radiusKm) {
		for _, nodeID := range ns.cells[cell] {
			node := ns.byID[nodeID]
			dist := geo.CalculateHaversineDistance(lat, lon, node.Lat, node.Lon)
			if dist <= radiusKm {
				results = append(results, NodeWithDistance{Node: node, DistKm: dist})
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistKm != results[j].DistKm {
			return results[i].DistKm < results[j].DistKm
		}
		return results[i].Node.ID < results[j].Node.ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// kRingIndexesArea estimates how many hexagon rings cover searchRadiusKm
// around the origin cell and returns the grid disk of that radius.
func (ns *NodeSnapper) kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	originArea := h3.CellAreaKm2(origin)

	hexRadiusKm := math.Sqrt(2 * originArea / (3 * math.Sqrt(3)))
	radius := int(math.Ceil(searchRadiusKm / (2 * hexRadiusKm)))

	return h3.GridDisk(origin, radius)
}
