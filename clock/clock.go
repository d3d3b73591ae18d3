// Package clock provides a shared, poll-free monotonic timestamp source
// for metrics and invalidation-event stamping. It replaces the teacher
// cache's hand-rolled atomic.Int64 + background-goroutine clock poller
// with the library the retrieval pack shows for exactly this concern.
package clock

import "github.com/agilira/go-timecache"

// NowNano returns a cached nanosecond timestamp. It is safe for concurrent
// use and never performs a syscall on the calling goroutine's critical
// path.
func NowNano() int64 {
	return timecache.CachedTimeNano()
}
