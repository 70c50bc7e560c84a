package kv

import (
	"pathfinder/pkg/datastructure"

	"github.com/kelindar/binary"
)

// graphRecord is the serialized form of a graph; the adjacency structure is
// rebuilt (and the edge invariants re-checked) on decode.
type graphRecord struct {
	Nodes []datastructure.Node
	Edges []datastructure.Edge
}

func encodeGraph(g *datastructure.Graph) ([]byte, error) {
	record := graphRecord{
		Nodes: g.Nodes,
		Edges: g.Edges,
	}
	encoded, err := binary.Marshal(record)
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func decodeGraph(value []byte) (*datastructure.Graph, error) {
	decompressed, err := decompress(value)
	if err != nil {
		return nil, err
	}

	var record graphRecord
	if err := binary.Unmarshal(decompressed, &record); err != nil {
		return nil, err
	}
	return datastructure.NewGraph(record.Nodes, record.Edges)
}
