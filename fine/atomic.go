package fine

import "sync/atomic"

// atomicInt is size_: an atomically updated counter so readers can observe
// it without holding any bucket lock, matching the source's atomic size_
// field in fine_hash_table.h.
type atomicInt struct {
	v atomic.Int64
}

func (a *atomicInt) add(delta int) int {
	return int(a.v.Add(int64(delta)))
}

func (a *atomicInt) load() int {
	return int(a.v.Load())
}
