package notify

import "fmt"

// KeyString renders any comparable/ordered key as the string Event.Key and
// the rendezvous router need. It is intentionally simple (fmt formatting)
// since routing only needs a stable, deterministic string per distinct key,
// not a compact encoding.
func KeyString[K any](key K) string {
	return fmt.Sprintf("%v", key)
}
