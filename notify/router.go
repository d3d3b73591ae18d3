package notify

import "github.com/concurrent-dict/condict/hash"

// Router assigns every key to exactly one of a fixed set of named sinks via
// rendezvous hashing (hash.SinkRouter), then publishes to whichever
// sink that key landed on. This keeps all invalidation traffic for one key
// flowing to the same downstream consumer even though several sinks are
// configured, the same shard-stability property go-rendezvous gives a
// distributed cache picking a server for a key.
type Router struct {
	sinks map[string]Sink
	route *hash.SinkRouter
}

// NewRouter builds a Router over the given name->Sink mapping. names order
// does not matter; it is only used to build the rendezvous node list.
func NewRouter(sinks map[string]Sink) *Router {
	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	return &Router{
		sinks: sinks,
		route: hash.NewSinkRouter(names),
	}
}

// Publish routes ev to the sink its key is assigned to and publishes it
// there. Returns nil if there are no sinks configured (nothing to do).
func (r *Router) Publish(ev Event) error {
	if len(r.sinks) == 0 {
		return nil
	}
	name := r.route.Route(ev.Key)
	return r.sinks[name].Publish(ev)
}

// Close closes every configured sink, returning the first error
// encountered (if any) after attempting to close them all.
func (r *Router) Close() error {
	var first error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
