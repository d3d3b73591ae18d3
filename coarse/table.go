// Package coarse implements C4: a chained hash table protected by a single
// table-wide rwlock.RWLock, ported from coarse_hash_table.h/.cpp. Insert is
// upsert (an existing key's value is overwritten in place); this is the
// locked-variant half of the Insert-semantics divergence the spec calls
// out in §9 — the lock-free variant (llist/lockfree) treats Insert as
// add-if-absent instead.
package coarse

import (
	"go.uber.org/zap"

	"github.com/concurrent-dict/condict/clock"
	"github.com/concurrent-dict/condict/dict"
	"github.com/concurrent-dict/condict/hash"
	"github.com/concurrent-dict/condict/metrics"
	"github.com/concurrent-dict/condict/notify"
	"github.com/concurrent-dict/condict/rwlock"
)

const (
	// DefaultCapacity matches the source's default bucket count.
	DefaultCapacity = 128
	// DefaultLoadFactor matches the source's default growth threshold.
	DefaultLoadFactor = 0.75
)

type entry[K dict.Key, V any] struct {
	key   K
	value V
}

// Table is a coarse-grained hash table: one lock guards the whole bucket
// array, including during growth.
type Table[K dict.Key, V any] struct {
	lock       rwlock.RWLock
	buckets    [][]entry[K, V]
	capacity   uint64
	loadFactor float32
	size       int
	hasher     hash.Hasher[K]
	log        *zap.SugaredLogger
	metrics    *metrics.Recorder
	notifier   notify.Sink
}

// Option configures a Table at construction time.
type Option[K dict.Key, V any] func(*Table[K, V])

// WithHasher overrides the default xxhash-based Hasher.
func WithHasher[K dict.Key, V any](h hash.Hasher[K]) Option[K, V] {
	return func(t *Table[K, V]) { t.hasher = h }
}

// WithLogger attaches a logger used for growth diagnostics. A nil logger
// leaves the default no-op logger in place.
func WithLogger[K dict.Key, V any](l *zap.SugaredLogger) Option[K, V] {
	return func(t *Table[K, V]) {
		if l != nil {
			t.log = l
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics[K dict.Key, V any](m *metrics.Recorder) Option[K, V] {
	return func(t *Table[K, V]) {
		if m != nil {
			t.metrics = m
		}
	}
}

// WithNotifier attaches an invalidation sink; Insert/Delete publish an
// event to it whenever they actually change membership.
func WithNotifier[K dict.Key, V any](s notify.Sink) Option[K, V] {
	return func(t *Table[K, V]) { t.notifier = s }
}

// New creates a Table with the given initial capacity and max load factor.
func New[K dict.Key, V any](capacity uint64, loadFactor float32, opts ...Option[K, V]) *Table[K, V] {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if loadFactor <= 0 {
		loadFactor = DefaultLoadFactor
	}
	t := &Table[K, V]{
		buckets:    make([][]entry[K, V], capacity),
		capacity:   capacity,
		loadFactor: loadFactor,
		hasher:     hash.Default[K]{},
		log:        zap.NewNop().Sugar(),
		metrics:    metrics.Noop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table[K, V]) index(key K, capacity uint64) uint64 {
	return t.hasher.Index(key, capacity)
}

// Get returns the value stored for key, or the zero value if absent.
func (t *Table[K, V]) Get(key K) V {
	t.lock.RLock()
	defer t.lock.RUnlock()

	idx := t.index(key, t.capacity)
	for _, e := range t.buckets[idx] {
		if e.key == key {
			return e.value
		}
	}
	var zero V
	return zero
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()

	idx := t.index(key, t.capacity)
	for _, e := range t.buckets[idx] {
		if e.key == key {
			return true
		}
	}
	return false
}

// Insert upserts key/value, returning true iff the key was newly added.
func (t *Table[K, V]) Insert(key K, value V) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	idx := t.index(key, t.capacity)
	bucket := t.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].value = value
			return false
		}
	}
	t.buckets[idx] = append(bucket, entry[K, V]{key: key, value: value})
	t.size++
	t.metrics.SetSize("coarse", t.size)
	t.publish(notify.Insert, key)

	if float32(t.size) > t.loadFactor*float32(t.capacity) {
		t.grow()
	}
	return true
}

// Delete removes key if present, returning true iff it was removed.
func (t *Table[K, V]) Delete(key K) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	idx := t.index(key, t.capacity)
	bucket := t.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			t.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			t.size--
			t.metrics.SetSize("coarse", t.size)
			t.publish(notify.Delete, key)
			return true
		}
	}
	return false
}

// publish emits a best-effort invalidation event; a nil notifier (the
// default) is a no-op, and publish failures are swallowed rather than
// surfaced, since the side channel must never affect the dictionary's own
// return values.
func (t *Table[K, V]) publish(action notify.Action, key K) {
	if t.notifier == nil {
		return
	}
	_ = t.notifier.Publish(notify.Event{
		Action: action,
		Key:    notify.KeyString(key),
		AtNano: clock.NowNano(),
	})
}

// Len returns the current number of entries. Callers needing a consistent
// snapshot should hold no concurrent writers in flight; Len itself takes
// the read lock.
func (t *Table[K, V]) Len() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.size
}

// grow doubles the bucket array, rehashing every entry. Must be called
// with the write lock already held, matching the source's requirement that
// growth run under the (sole) write lock.
func (t *Table[K, V]) grow() {
	newCapacity := t.capacity * 2
	newBuckets := make([][]entry[K, V], newCapacity)
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			idx := t.index(e.key, newCapacity)
			newBuckets[idx] = append(newBuckets[idx], e)
		}
	}
	t.log.Infow("coarse table grown", "old_capacity", t.capacity, "new_capacity", newCapacity, "size", t.size)
	t.metrics.IncGrowth("coarse")
	t.capacity = newCapacity
	t.buckets = newBuckets
}
