package kv

import (
	"errors"
	"fmt"

	"pathfinder/pkg/datastructure"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrGraphNotCached = errors.New("graph not found in cache")
)

// GraphCache is the explicit cache for prepared road-network graphs, keyed
// by place name and network type. Lifecycle is caller controlled: load once
// with Put, reuse with Get, drop with Invalidate. There is no implicit
// memoization and no expiry.
type GraphCache struct {
	db *badger.DB
}

func NewGraphCache(db *badger.DB) *GraphCache {
	return &GraphCache{db: db}
}

func graphKey(place, networkType string) []byte {
	return []byte(fmt.Sprintf("graph|%s|%s", place, networkType))
}

// Put stores the graph under (place, networkType), overwriting any previous
// entry for that key.
func (c *GraphCache) Put(place, networkType string, g *datastructure.Graph) error {
	value, err := encodeGraph(g)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(graphKey(place, networkType), value)
	})
}

// Get loads a previously cached graph. Returns ErrGraphNotCached when no
// entry exists for the key.
func (c *GraphCache) Get(place, networkType string) (*datastructure.Graph, error) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(graphKey(place, networkType))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrGraphNotCached
	}
	if err != nil {
		return nil, err
	}

	g, err := decodeGraph(value)
	if err != nil {
		return nil, fmt.Errorf("decode cached graph: %w", err)
	}
	return g, nil
}

// Invalidate removes the cache entry for (place, networkType). Removing a
// missing entry is not an error.
func (c *GraphCache) Invalidate(place, networkType string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(graphKey(place, networkType))
	})
}

func (c *GraphCache) Close() error {
	return c.db.Close()
}
