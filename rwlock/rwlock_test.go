package rwlock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concurrent-dict/condict/rwlock"
)

func TestConcurrentReaders(t *testing.T) {
	var l rwlock.RWLock
	var inFlight int32
	var maxSeen int32

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.RLock()
			defer l.RUnlock()
			n := atomic.AddInt32(&inFlight, 1)
			for {
				cur := atomic.LoadInt32(&maxSeen)
				if n <= cur || atomic.CompareAndSwapInt32(&maxSeen, cur, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		}()
	}
	wg.Wait()

	assert.Greater(t, maxSeen, int32(1), "expected multiple readers to overlap")
}

func TestWritersAreMutuallyExclusive(t *testing.T) {
	var l rwlock.RWLock
	var shared int
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock()
			shared++
			l.Unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, 50, shared)
}

func TestWriterPreference(t *testing.T) {
	var l rwlock.RWLock
	var order []string
	var mu sync.Mutex
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	l.RLock() // hold a reader so the writer below must wait

	writerArrived := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		close(writerArrived)
		l.Lock()
		record("writer")
		l.Unlock()
		close(writerDone)
	}()
	<-writerArrived
	time.Sleep(10 * time.Millisecond) // let the writer block on entry

	lateReaderBlocked := make(chan struct{})
	go func() {
		l.RLock()
		record("late-reader")
		l.RUnlock()
		close(lateReaderBlocked)
	}()
	time.Sleep(10 * time.Millisecond)

	l.RUnlock() // release the held reader; writer should win the race
	<-writerDone
	<-lateReaderBlocked

	require.Equal(t, []string{"writer", "late-reader"}, order)
}
