// Package dict defines the shared abstract contract implemented by the
// coarse, fine, and lock-free table variants: a mapping from unique,
// totally-ordered, hashable keys to values.
package dict

import "cmp"

// Key is the constraint every table variant requires of its key type: a
// total order (needed by the lock-free ordered list) that also gives
// equality for free. Hashability is supplied separately by a hash.Hasher,
// since Go has no way to derive a hash function from an ordering.
type Key interface {
	cmp.Ordered
}

// There is deliberately no single Dictionary[K, V] interface unifying all
// three variants. Get differs in shape between them (coarse/fine return the
// zero value on a miss, lock-free returns (V, bool)); collapsing that would
// erase a real semantic difference the spec calls out explicitly. The three
// variants are meant to be chosen between, never mixed, so each is used
// through its own concrete type. See DESIGN.md for the reasoning.
