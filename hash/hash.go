// Package hash supplies the "externally-supplied" key-to-bucket-index
// function the core hash tables delegate to, generalizing the teacher
// cache's hashBKRD/hashKey dispatch into a pluggable strategy.
package hash

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/concurrent-dict/condict/dict"
)

// Hasher maps a key to a bucket index in [0, capacity).
type Hasher[K dict.Key] interface {
	Index(key K, capacity uint64) uint64
}

// Default is the Hasher every table variant uses unless an Option overrides
// it. It mirrors the teacher's Hashable dispatch: integer keys hash to
// themselves (no work to do), everything else is formatted and run through
// xxhash, the same algorithm the teacher's go.mod already pulled in as an
// indirect dependency for exactly this purpose.
type Default[K dict.Key] struct{}

// Index implements Hasher.
func (Default[K]) Index(key K, capacity uint64) uint64 {
	if capacity == 0 {
		return 0
	}
	return rawHash(key) % capacity
}

func rawHash[K dict.Key](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k)
	case int:
		return uint64(k)
	case int8:
		return uint64(k)
	case int16:
		return uint64(k)
	case int32:
		return uint64(k)
	case int64:
		return uint64(k)
	case uint:
		return uint64(k)
	case uint8:
		return uint64(k)
	case uint16:
		return uint64(k)
	case uint32:
		return uint64(k)
	case uint64:
		return k
	case uintptr:
		return uint64(k)
	case float32:
		return xxhash.Sum64String(strconv.FormatFloat(float64(k), 'g', -1, 32))
	case float64:
		return xxhash.Sum64String(strconv.FormatFloat(k, 'g', -1, 64))
	default:
		// Any other cmp.Ordered type stringifies predictably via %v; xxhash
		// the formatted bytes rather than leaving the bucket index undefined.
		return xxhash.Sum64String(fmt.Sprintf("%v", key))
	}
}
