// Package lockfree implements C6: a fixed-size array of lock-free ordered
// lists (llist.List), with no table-wide synchronization on the hot path.
// Growth is out of scope, per the spec's own framing in §9 — the source
// stubs it out, and guessing at a lock-free resize scheme (vs. wrapping
// the table in the fine package's locking discipline) is left to whoever
// picks it up next.
package lockfree

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/concurrent-dict/condict/clock"
	"github.com/concurrent-dict/condict/dict"
	"github.com/concurrent-dict/condict/hash"
	"github.com/concurrent-dict/condict/llist"
	"github.com/concurrent-dict/condict/metrics"
	"github.com/concurrent-dict/condict/notify"
)

// DefaultCapacity matches the source's default bucket count for the
// lock-free variant (a large fixed count, 103 * 971, chosen so growth is
// rarely needed since this variant does not support it).
const DefaultCapacity = 100013

type Table[K dict.Key, V any] struct {
	buckets  []llist.List[K, V]
	capacity uint64
	size     atomic.Int64
	hasher   hash.Hasher[K]
	log      *zap.SugaredLogger
	metrics  *metrics.Recorder
	notifier notify.Sink
}

// Option configures a Table at construction time.
type Option[K dict.Key, V any] func(*Table[K, V])

// WithHasher overrides the default xxhash-based Hasher.
func WithHasher[K dict.Key, V any](h hash.Hasher[K]) Option[K, V] {
	return func(t *Table[K, V]) { t.hasher = h }
}

// WithLogger attaches a logger.
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

// New creates a Table with a fixed bucket count. loadFactor is accepted for
// symmetry with coarse/fine but is currently unused, since this variant
// never grows; see the package doc comment.
func New[K dict.Key, V any](capacity uint64, loadFactor float32, opts ...Option[K, V]) *Table[K, V] {
	_ = loadFactor
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	t := &Table[K, V]{
		buckets:  make([]llist.List[K, V], capacity),
		capacity: capacity,
		hasher:   hash.Default[K]{},
		log:      zap.NewNop().Sugar(),
		metrics:  metrics.Noop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table[K, V]) index(key K) uint64 {
	return t.hasher.Index(key, t.capacity)
}

// Get returns (value, true) if key is present, or (zero, false) otherwise.
// This is the Option-shaped Get the spec allows the lock-free variant to
// use instead of coarse/fine's default-value Get.
func (t *Table[K, V]) Get(key K) (V, bool) {
	return t.buckets[t.index(key)].Find(key)
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	return t.buckets[t.index(key)].Contains(key)
}

// Insert adds key/value if absent. Returns true iff newly added
// (add-if-absent, matching llist.List and diverging from coarse/fine's
// upsert semantics, per the spec's documented Insert divergence).
func (t *Table[K, V]) Insert(key K, value V) bool {
	added := t.buckets[t.index(key)].Insert(key, value)
	if added {
		newSize := t.size.Add(1)
		t.metrics.SetSize("lockfree", int(newSize))
		t.publish(notify.Insert, key)
	}
	return added
}

// Delete removes key if present. Returns true iff removed.
func (t *Table[K, V]) Delete(key K) bool {
	removed := t.buckets[t.index(key)].Delete(key)
	if removed {
		newSize := t.size.Add(-1)
		t.metrics.SetSize("lockfree", int(newSize))
		t.publish(notify.Delete, key)
	}
	return removed
}

// publish emits a best-effort invalidation event; see coarse.Table.publish
// for the nil-safety and failure-swallowing rationale.
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

// Len returns the current number of entries, tracked by an atomic counter
// updated only when the underlying chain operation actually succeeded.
func (t *Table[K, V]) Len() int {
	return int(t.size.Load())
}
