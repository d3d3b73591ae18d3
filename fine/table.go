// Package fine implements C5: a chained hash table where each bucket owns
// its own rwlock.RWLock, and a single table-wide RWLock mediates the bucket
// array itself (held in read mode for ordinary operations, write mode only
// during growth). Ported from fine_hash_table.h/.cpp.
package fine

import (
	"sync/atomic"

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

// bucket owns its own lock and an unordered chain of entries, mirroring
// the source's Bucket<K,V>.
type bucket[K dict.Key, V any] struct {
	lock    rwlock.RWLock
	entries []entry[K, V]
}

func (b *bucket[K, V]) get(key K) (V, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	for _, e := range b.entries {
		if e.key == key {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

func (b *bucket[K, V]) contains(key K) bool {
	b.lock.RLock()
	defer b.lock.RUnlock()
	for _, e := range b.entries {
		if e.key == key {
			return true
		}
	}
	return false
}

// insert upserts key/value, returning true iff the key was newly added.
func (b *bucket[K, V]) insert(key K, value V) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	for i := range b.entries {
		if b.entries[i].key == key {
			b.entries[i].value = value
			return false
		}
	}
	b.entries = append(b.entries, entry[K, V]{key: key, value: value})
	return true
}

func (b *bucket[K, V]) delete(key K) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	for i := range b.entries {
		if b.entries[i].key == key {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Table is a fine-grained hash table: per-bucket locks for ordinary
// traffic, a table-wide lock held in read mode for the whole of each bucket
// operation and exclusively during growth.
type Table[K dict.Key, V any] struct {
	globalLock rwlock.RWLock
	buckets    []*bucket[K, V]
	capacity   atomic.Uint64
	loadFactor float32
	size       atomicInt
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

// WithLogger attaches a logger used for growth diagnostics.
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

// WithNotifier attaches an invalidation sink.
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
		buckets:    makeBuckets[K, V](capacity),
		loadFactor: loadFactor,
		hasher:     hash.Default[K]{},
		log:        zap.NewNop().Sugar(),
		metrics:    metrics.Noop(),
	}
	t.capacity.Store(capacity)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func makeBuckets[K dict.Key, V any](n uint64) []*bucket[K, V] {
	b := make([]*bucket[K, V], n)
	for i := range b {
		b[i] = &bucket[K, V]{}
	}
	return b
}

func (t *Table[K, V]) index(key K, capacity uint64) uint64 {
	return t.hasher.Index(key, capacity)
}

// Get returns the value stored for key, or the zero value if absent. The
// global lock is held in read mode for the entire operation, across the
// bucket lookup, so a concurrent growth cannot swap t.buckets out from
// under the bucket reference this holds; see §4.5.
func (t *Table[K, V]) Get(key K) V {
	t.globalLock.RLock()
	idx := t.index(key, t.capacity.Load())
	b := t.buckets[idx]
	v, _ := b.get(key)
	t.globalLock.RUnlock()

	return v
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	t.globalLock.RLock()
	idx := t.index(key, t.capacity.Load())
	b := t.buckets[idx]
	found := b.contains(key)
	t.globalLock.RUnlock()

	return found
}

// Insert upserts key/value, returning true iff the key was newly added. The
// bucket lock is acquired (via b.insert) while the global read lock is
// still held, and released before the global lock is, matching §4.5's
// acquire-global-then-bucket / release-bucket-then-global discipline.
func (t *Table[K, V]) Insert(key K, value V) bool {
	t.globalLock.RLock()
	idx := t.index(key, t.capacity.Load())
	b := t.buckets[idx]
	added := b.insert(key, value)
	t.globalLock.RUnlock()

	if added {
		newSize := t.size.add(1)
		t.metrics.SetSize("fine", newSize)
		t.publish(notify.Insert, key)
	}

	if float32(t.size.load()) > t.loadFactor*float32(t.capacity.Load()) {
		t.maybeGrow()
	}
	return added
}

// Delete removes key if present, returning true iff it was removed.
func (t *Table[K, V]) Delete(key K) bool {
	t.globalLock.RLock()
	idx := t.index(key, t.capacity.Load())
	b := t.buckets[idx]
	removed := b.delete(key)
	t.globalLock.RUnlock()

	if removed {
		newSize := t.size.add(-1)
		t.metrics.SetSize("fine", newSize)
		t.publish(notify.Delete, key)
	}
	return removed
}

// publish emits a best-effort invalidation event; see coarse.Table.publish
// for the same nil-safety and failure-swallowing rationale.
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

// Len returns the current number of entries, readable without taking any
// bucket lock since size is an atomically updated counter.
func (t *Table[K, V]) Len() int {
	return t.size.load()
}

// maybeGrow re-checks the load factor under the write lock before actually
// growing, since multiple goroutines may race past the read-mode check in
// Insert before any of them grows the table. Holding the write lock here
// excludes every reader that would otherwise hold a bucket reference
// (Get/Contains/Insert/Delete all hold the global read lock across their
// whole bucket operation), so b.entries below is safe to read directly
// without taking each bucket's own lock.
func (t *Table[K, V]) maybeGrow() {
	t.globalLock.Lock()
	defer t.globalLock.Unlock()

	oldCapacity := t.capacity.Load()
	if float32(t.size.load()) <= t.loadFactor*float32(oldCapacity) {
		return // someone else already grew the table.
	}

	newCapacity := oldCapacity * 2
	newBuckets := makeBuckets[K, V](newCapacity)
	for _, b := range t.buckets {
		for _, e := range b.entries {
			idx := t.index(e.key, newCapacity)
			newBuckets[idx].entries = append(newBuckets[idx].entries, e)
		}
	}
	t.log.Infow("fine table grown", "old_capacity", oldCapacity, "new_capacity", newCapacity, "size", t.size.load())
	t.metrics.IncGrowth("fine")
	t.capacity.Store(newCapacity)
	t.buckets = newBuckets
}
