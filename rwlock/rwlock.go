// Package rwlock implements a reader-preferring-on-entry,
// writer-preemptive reader/writer lock: a single mutex with two condition
// variables, ported directly from the algorithm in rwlock.h of the source
// this module was distilled from (mutex_ + reader_/writer_ condvars +
// reader_count_/writer_entered_).
package rwlock

import "sync"

// RWLock is a mutual-exclusion primitive with a shared read mode and an
// exclusive write mode. A writer's arrival blocks all subsequently arriving
// readers immediately and drains the readers already in the critical
// section before it is granted the lock; there is no lock upgrade or
// downgrade and the lock is not reentrant. The zero value is ready to use.
type RWLock struct {
	once sync.Once

	mu            sync.Mutex
	readerCond    sync.Cond
	writerCond    sync.Cond
	readerCount   uint32
	writerWaiting bool
}

func (l *RWLock) lazyInit() {
	l.once.Do(func() {
		l.readerCond.L = &l.mu
		l.writerCond.L = &l.mu
	})
}

// RLock acquires the lock in shared mode, blocking while a writer holds it
// or is waiting to acquire it.
func (l *RWLock) RLock() {
	l.lazyInit()
	l.mu.Lock()
	for l.writerWaiting {
		l.readerCond.Wait()
	}
	l.readerCount++
	l.mu.Unlock()
}

// RUnlock releases a shared hold. If a writer is waiting and this was the
// last reader, the waiting writer is woken.
func (l *RWLock) RUnlock() {
	l.lazyInit()
	l.mu.Lock()
	l.readerCount--
	if l.writerWaiting && l.readerCount == 0 {
		l.writerCond.Signal()
	}
	l.mu.Unlock()
}

// Lock acquires the lock in exclusive mode. It blocks new readers as soon
// as it is granted entry, then waits for outstanding readers to drain.
func (l *RWLock) Lock() {
	l.lazyInit()
	l.mu.Lock()
	for l.writerWaiting {
		l.readerCond.Wait()
	}
	l.writerWaiting = true
	for l.readerCount > 0 {
		l.writerCond.Wait()
	}
	l.mu.Unlock()
}

// Unlock releases an exclusive hold and wakes every blocked reader and any
// blocked writer waiting to become the next writer.
func (l *RWLock) Unlock() {
	l.lazyInit()
	l.mu.Lock()
	l.writerWaiting = false
	l.readerCond.Broadcast()
	l.mu.Unlock()
}
