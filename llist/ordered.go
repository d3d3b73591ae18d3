package llist

import "cmp"

// Ordered is the key constraint for a List: a total order, which also gives
// equality. This mirrors dict.Key; llist does not import the dict package
// so it stays usable as a standalone ordered-set primitive independent of
// the hash-table layer built on top of it.
type Ordered = cmp.Ordered
