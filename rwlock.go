package guard

import (
	"sync"
)

// An RWLock is a reader/writer lock: it can be held by many concurrent
// readers or by a single writer. Writers have priority: once a writer is
// waiting, no new reader is admitted until the writer has held and released
// the lock, so a steady stream of readers cannot starve a writer.
//
// No ordering is promised among waiters of the same class. Lock upgrade
// (acquiring the write lock while holding a read lock on the same RWLock)
// is not supported and deadlocks; see SharedGuard.Upgrade for the correct
// pattern.
//
// All state lives behind one Mutex with two condition-variable wait
// queues, one per waiter class. The lock is never held while blocking on
// anything else, so the RWLock itself cannot participate in a deadlock
// cycle.
type RWLock struct {
	mu             *Mutex
	readerQ        *sync.Cond
	writerQ        *sync.Cond
	readers        int
	writer         bool
	waitingWriters int
}

// NewRWLock returns a new idle RWLock.
func NewRWLock() *RWLock {
	rw := &RWLock{mu: NewMutex()}
	rw.readerQ = sync.NewCond(rw.mu)
	rw.writerQ = sync.NewCond(rw.mu)
	return rw
}

// RLock acquires the lock for reading, blocking while a writer holds it or
// any writer is waiting for it.
func (rw *RWLock) RLock() {
	rw.mu.Lock()
	for rw.writer || rw.waitingWriters > 0 {
		rw.readerQ.Wait()
	}
	rw.readers++
	rw.mu.Unlock()
}

// RUnlock undoes a single RLock call. It is a run-time error if rw is not
// locked for reading on entry to RUnlock. The last reader out hands the
// lock to a waiting writer, if any.
func (rw *RWLock) RUnlock() {
	rw.mu.Lock()
	if rw.readers == 0 {
		rw.mu.Unlock()
		panic("guard: RUnlock of unlocked RWLock")
	}
	rw.readers--
	if rw.readers == 0 && rw.waitingWriters > 0 {
		rw.writerQ.Signal()
	}
	rw.mu.Unlock()
}

// Lock acquires the lock for writing, blocking until no reader or writer
// holds it. While it waits, new readers are held back.
func (rw *RWLock) Lock() {
	rw.mu.Lock()
	rw.waitingWriters++
	for rw.writer || rw.readers > 0 {
		rw.writerQ.Wait()
	}
	rw.waitingWriters--
	rw.writer = true
	rw.mu.Unlock()
}

// Unlock releases the write lock. It is a run-time error if rw is not
// locked for writing on entry to Unlock. A waiting writer, if any, is woken
// ahead of all waiting readers.
func (rw *RWLock) Unlock() {
	rw.mu.Lock()
	if !rw.writer {
		rw.mu.Unlock()
		panic("guard: Unlock of unlocked RWLock")
	}
	rw.writer = false
	if rw.waitingWriters > 0 {
		rw.writerQ.Signal()
	} else {
		rw.readerQ.Broadcast()
	}
	rw.mu.Unlock()
}

// RLocker returns a Locker interface that implements
// the Lock and Unlock methods by calling rw.RLock and rw.RUnlock.
func (rw *RWLock) RLocker() sync.Locker {
	return (*rlocker)(rw)
}

type rlocker RWLock

func (r *rlocker) Lock()   { (*RWLock)(r).RLock() }
func (r *rlocker) Unlock() { (*RWLock)(r).RUnlock() }

// A SharedGuard is a live read session on an RWLock. Release it exactly
// once. A SharedGuard is not safe for concurrent use; it belongs to the
// goroutine that acquired it.
type SharedGuard struct {
	rw       *RWLock
	released bool
}

// AcquireShared acquires the lock for reading and returns the session
// handle.
func (rw *RWLock) AcquireShared() *SharedGuard {
	rw.RLock()
	return &SharedGuard{rw: rw}
}

// Release ends the read session. Releasing twice is a run-time error.
func (g *SharedGuard) Release() {
	if g.released {
		panic("guard: Release of released SharedGuard")
	}
	g.released = true
	g.rw.RUnlock()
}

// Upgrade always panics. Converting a held read lock into the write lock
// cannot be done atomically: between releasing the read side and acquiring
// the write side another writer may run, so any state observed under the
// read lock is stale. Release the guard, acquire exclusive, and revalidate
// the state before acting on it.
func (g *SharedGuard) Upgrade() {
	panic("guard: lock upgrade is not supported; Release, AcquireExclusive and revalidate")
}

// An ExclusiveGuard is a live write session on an RWLock. Release it
// exactly once.
type ExclusiveGuard struct {
	rw       *RWLock
	released bool
}

// AcquireExclusive acquires the lock for writing and returns the session
// handle.
func (rw *RWLock) AcquireExclusive() *ExclusiveGuard {
	rw.Lock()
	return &ExclusiveGuard{rw: rw}
}

// Release ends the write session. Releasing twice is a run-time error.
func (g *ExclusiveGuard) Release() {
	if g.released {
		panic("guard: Release of released ExclusiveGuard")
	}
	g.released = true
	g.rw.Unlock()
}
