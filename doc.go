// Package guard provides synchronization primitives and guarded wrappers
// that make unsynchronized access to shared state structurally impossible.
//
// Sharing state through a bare mutex leaves the pairing of lock and data to
// convention:
//
//	var mu sync.Mutex
//	var state int
//	mu.Lock()
//	state++ // nothing stops an access path that skips mu
//	mu.Unlock()
//
// A Guarded value binds the two together. The only way to reach the state
// is a scoped session that releases the lock on every exit path, normal
// return, early return or panic:
//
//	g := guard.NewGuarded(0)
//	g.Do(func(state *int) error {
//		*state++
//		return nil
//	})
//
// On top of the Mutex primitive the package builds LockAll, a deadlock-free
// protocol for acquiring several locks as one atomic step regardless of the
// order call sites list them in, and RWLock, a writer-priority
// reader/writer lock for read-mostly state such as Cache.
package guard
