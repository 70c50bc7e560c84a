package osmparser

import (
	"context"
	"fmt"
	"log"
	"os"

	"pathfinder/pkg/datastructure"
	"pathfinder/pkg/geo"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// highway values excluded from the drive network; the walk network only
// skips motorways.
var (
	skipHighwayDrive = map[string]struct{}{
		"footway":      {},
		"construction": {},
		"cycleway":     {},
		"path":         {},
		"pedestrian":   {},
		"steps":        {},
		"bridleway":    {},
		"corridor":     {},
		"platform":     {},
		"track":        {},
		"bus_guideway": {},
		"busway":       {},
		"elevator":     {},
		"proposed":     {},
		"raceway":      {},
		"abandoned":    {},
	}

	skipHighwayWalk = map[string]struct{}{
		"motorway":      {},
		"motorway_link": {},
		"construction":  {},
		"proposed":      {},
		"raceway":       {},
	}

	driveNetworkModes = map[datastructure.TravelMode]string{
		datastructure.TravelModeCar:  "drive",
		datastructure.TravelModeWalk: "walk",
		datastructure.TravelModeBike: "walk",
	}
)

// NetworkTypeForMode returns the network type a travel mode routes over,
// mirroring the data selection of the upstream map source: cars use the
// drive network, walking and cycling the walk network.
func NetworkTypeForMode(mode datastructure.TravelMode) string {
	return driveNetworkModes[mode]
}

type nodeCoord struct {
	lat float64
	lon float64
}

// OsmParser builds a routeable graph from an openstreetmap pbf extract.
// networkType selects which ways are kept: "drive" or "walk" (the walk
// network also serves bike queries, same as the source data selection).
type OsmParser struct {
	networkType string

	coords    map[osm.NodeID]nodeCoord
	nodeIDMap map[osm.NodeID]int32
}

func NewOsmParser(networkType string) (*OsmParser, error) {
	if networkType != "drive" && networkType != "walk" {
		return nil, fmt.Errorf("unknown network type %q", networkType)
	}
	return &OsmParser{
		networkType: networkType,
		coords:      make(map[osm.NodeID]nodeCoord),
		nodeIDMap:   make(map[osm.NodeID]int32),
	}, nil
}

// Parse scans the pbf file twice over one pass (nodes precede ways in pbf
// ordering): node coordinates are collected first, then every accepted way
// is cut into edges between consecutive way nodes, edge length = haversine
// between the endpoints in meter.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 1)
	defer scanner.Close()

	nodes := make([]datastructure.Node, 0)
	edges := make([]datastructure.Edge, 0)
	countWays := 0

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			p.coords[o.ID] = nodeCoord{lat: o.Lat, lon: o.Lon}
		case *osm.Way:
			if !p.acceptWay(o) {
				continue
			}
			countWays++
			if countWays%50000 == 0 {
				log.Printf("processing openstreetmap ways: %d...", countWays)
			}

			forward, backward := p.wayDirections(o)
			for i := 0; i+1 < len(o.Nodes); i++ {
				fromID, ok := p.graphNodeID(o.Nodes[i].ID, &nodes)
				if !ok {
					continue
				}
				toID, ok := p.graphNodeID(o.Nodes[i+1].ID, &nodes)
				if !ok {
					continue
				}

				from := p.coords[o.Nodes[i].ID]
				to := p.coords[o.Nodes[i+1].ID]
				distMeter := geo.CalculateHaversineDistance(from.lat, from.lon, to.lat, to.lon) * 1000

				if forward {
					edges = append(edges, datastructure.NewEdge(int32(len(edges)), fromID, toID, distMeter))
				}
				if backward {
					edges = append(edges, datastructure.NewEdge(int32(len(edges)), toID, fromID, distMeter))
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Printf("openstreetmap parsing done: %d nodes, %d edges from %d ways", len(nodes), len(edges), countWays)

	return datastructure.NewGraph(nodes, edges)
}

func (p *OsmParser) acceptWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 {
		return false
	}
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}

	if p.networkType == "drive" {
		if _, skip := skipHighwayDrive[highway]; skip {
			return false
		}
		if way.Tags.Find("motor_vehicle") == "no" {
			return false
		}
	} else {
		if _, skip := skipHighwayWalk[highway]; skip {
			return false
		}
		if way.Tags.Find("foot") == "no" {
			return false
		}
	}
	return true
}

// wayDirections reports which directions of the way are traversable. Foot
// traffic ignores oneway restrictions; oneway=-1 means the way is digitized
// against the travel direction.
func (p *OsmParser) wayDirections(way *osm.Way) (forward, backward bool) {
	if p.networkType != "drive" {
		return true, true
	}
	switch way.Tags.Find("oneway") {
	case "yes", "1":
		return true, false
	case "-1":
		return false, true
	}
	return true, true
}

// graphNodeID maps an osm node id to a dense graph node id, materializing
// the graph node on first use. Ways referencing nodes outside the extract
// are skipped.
func (p *OsmParser) graphNodeID(osmID osm.NodeID, nodes *[]datastructure.Node) (int32, bool) {
	if id, ok := p.nodeIDMap[osmID]; ok {
		return id, true
	}
	coord, ok := p.coords[osmID]
	if !ok {
		return 0, false
	}
	id := int32(len(*nodes))
	p.nodeIDMap[osmID] = id
	*nodes = append(*nodes, datastructure.NewNode(id, coord.lat, coord.lon))
	return id, true
}
