// Package llist implements C2, a lock-free ordered singly-linked list: a
// non-blocking set of (key, value) pairs kept in ascending key order, using
// the Harris/Michael node-marking algorithm (logical delete via a mark bit,
// help-unlink during traversal, monotonic per-word tags against ABA).
package llist

// List is a lock-free ordered set of key/value pairs. The zero value is an
// empty, ready-to-use list.
type List[K Ordered, V any] struct {
	head atomicMarkPtr[K, V]
}

// find is the shared traversal used by Insert/Delete/Find. It returns the
// location of the word pointing at the first node whose key is >= key
// (prevLoc/prevSnap), and a snapshot of that node's own next word
// (curSnap), which carries the mark bit callers need to know whether the
// node is live. found reports whether that node's key equals key exactly.
// If the chain is exhausted, prevSnap.getNext() is nil and curSnap is nil.
//
// The search restarts from the head whenever it observes that prevLoc no
// longer holds the expected snapshot (a writer raced it) or a help-unlink
// CAS fails — both cases the algorithm specifies as mandatory restarts.
func (l *List[K, V]) find(key K) (prevLoc *atomicMarkPtr[K, V], prevSnap *markPtr[K, V], curSnap *markPtr[K, V], found bool) {
retry:
	prevLoc = &l.head
	prevSnap = prevLoc.load()
	cur := prevSnap.getNext()

	for {
		if cur == nil {
			return prevLoc, prevSnap, nil, false
		}

		next := cur.next.load()
		ckey := cur.key

		if prevLoc.load() != prevSnap {
			goto retry
		}

		if !next.getMark() {
			if ckey >= key {
				return prevLoc, prevSnap, next, ckey == key
			}
			prevLoc = &cur.next
			prevSnap = next
			cur = next.getNext()
			continue
		}

		// cur is logically deleted; help unlink it before continuing.
		helped := newMarkPtr[K, V](false, next.getNext(), prevSnap.getTag()+1)
		if prevLoc.cas(prevSnap, helped) {
			prevSnap = helped
			cur = next.getNext()
		} else {
			goto retry
		}
	}
}

// Insert adds key/value if key is not already present. Returns true iff
// the key was newly added; an existing key is left untouched (add-if-absent
// semantics, per the divergence the spec documents between the lock-free
// and locked variants).
func (l *List[K, V]) Insert(key K, value V) bool {
	newNode := &node[K, V]{key: key, value: value}

	for {
		prevLoc, prevSnap, _, found := l.find(key)
		if found {
			// newNode was never published; nothing to unlink or free, the
			// garbage collector reclaims it once this stack frame returns.
			return false
		}

		insertBefore := prevSnap.getNext()
		newNode.next.store(newMarkPtr[K, V](false, insertBefore, 0))

		desired := newMarkPtr[K, V](false, newNode, prevSnap.getTag()+1)
		if prevLoc.cas(prevSnap, desired) {
			return true
		}
		// Lost the race; retry the whole find/insert from the head.
	}
}

// Delete removes key if present. Returns true iff the key was present and
// removed.
func (l *List[K, V]) Delete(key K) bool {
	for {
		prevLoc, prevSnap, curSnap, found := l.find(key)
		if !found {
			return false
		}
		target := prevSnap.getNext()

		// Logical deletion: mark the target's own next word.
		marked := newMarkPtr[K, V](true, curSnap.getNext(), curSnap.getTag()+1)
		if !target.next.cas(curSnap, marked) {
			continue // someone else mutated target.next first; restart from find.
		}

		// Physical unlink: swing the predecessor past target.
		succ := curSnap.getNext()
		unlinked := newMarkPtr[K, V](false, succ, prevSnap.getTag()+1)
		if prevLoc.cas(prevSnap, unlinked) {
			return true
		}

		// Lost the unlink race; one more find will help-unlink target for
		// us (or for whoever beat us to it), and the deletion already
		// linearized at the logical-delete CAS above, so we still report
		// success regardless of how the physical unlink resolves.
		l.find(key)
		return true
	}
}

// Find reports the value stored for key, if any.
func (l *List[K, V]) Find(key K) (V, bool) {
	_, prevSnap, _, found := l.find(key)
	if !found {
		var zero V
		return zero, false
	}
	return prevSnap.getNext().value, true
}

// Contains reports whether key is present.
func (l *List[K, V]) Contains(key K) bool {
	_, _, _, found := l.find(key)
	return found
}

// Keys returns every live (unmarked) key in ascending order. It takes no
// lock and is intended for tests and diagnostics under quiescence, not for
// use on the hot path.
func (l *List[K, V]) Keys() []K {
	var keys []K
	cur := l.head.load().getNext()
	for cur != nil {
		next := cur.next.load()
		if !next.getMark() {
			keys = append(keys, cur.key)
		}
		cur = next.getNext()
	}
	return keys
}
