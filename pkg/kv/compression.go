package kv

import (
	"github.com/DataDog/zstd"
)

// graph payloads are mostly repeated float structure, zstd gets them small
// enough that cache reads stay cheap.

func compress(data []byte) ([]byte, error) {
	return zstd.Compress(nil, data)
}

func decompress(data []byte) ([]byte, error) {
	return zstd.Decompress(nil, data)
}
