package hash

import "github.com/dgryski/go-rendezvous"

// SinkRouter assigns every key to exactly one of a fixed set of named sinks
// using rendezvous (highest random weight) hashing, with every sink weighted
// equally: the same key
// always routes to the same sink name regardless of how many other keys are
// in flight, and adding/removing a sink only reshuffles the keys that were
// mapped to it. This is the same algorithm dgryski/go-rendezvous implements
// for picking a cache shard for a key; here it picks a notify.Sink instead.
type SinkRouter struct {
	rdv   *rendezvous.Rendezvous
	names []string
}

// NewSinkRouter builds a router over the given sink names. Names must be
// unique and non-empty.
func NewSinkRouter(names []string) *SinkRouter {
	cp := make([]string, len(names))
	copy(cp, names)
	return &SinkRouter{
		rdv:   rendezvous.New(cp, xxhashString),
		names: cp,
	}
}

// Route returns the sink name the given key is assigned to. Panics if the
// router has no sinks, matching the underlying library's own precondition.
func (r *SinkRouter) Route(key string) string {
	return r.rdv.Lookup(key)
}

func xxhashString(s string) uint64 {
	return rawHash(s)
}
