package guard

// TryLocker is the lock surface LockAll needs: a blocking acquire, a
// non-blocking attempt and a release. *Mutex satisfies it.
type TryLocker interface {
	Lock()
	TryLock() bool
	Unlock()
}

// LockAll acquires every lock in locks as one atomic step: when it returns,
// the caller holds all of them, and at no point did another goroutine
// observe the caller holding a partial set while blocked.
//
// Two goroutines may list the same locks in different orders without
// deadlocking. The protocol blocking-acquires one designated lock, then
// attempts the rest with TryLock in sequence order. On any failure it
// releases everything it holds before blocking again, with the lock that
// failed becoming the next pass's designated blocking acquisition. Because
// no goroutine ever blocks while holding a lock, a cycle of blocked
// holders cannot form.
//
// The locks must be distinct; listing the same lock twice livelocks.
func LockAll(locks ...TryLocker) {
	switch len(locks) {
	case 0:
		return
	case 1:
		locks[0].Lock()
		return
	}
	pivot := 0
	for {
		locks[pivot].Lock()
		failed := -1
		for i, l := range locks {
			if i == pivot {
				continue
			}
			if !l.TryLock() {
				failed = i
				break
			}
		}
		if failed < 0 {
			return
		}
		for i := failed - 1; i >= 0; i-- {
			if i == pivot {
				continue
			}
			locks[i].Unlock()
		}
		locks[pivot].Unlock()
		pivot = failed
	}
}

// UnlockAll releases every lock in locks, in reverse order.
func UnlockAll(locks ...TryLocker) {
	for i := len(locks) - 1; i >= 0; i-- {
		locks[i].Unlock()
	}
}

// WithAll acquires all locks via LockAll, invokes fn and releases them all
// when fn returns or panics. fn's error is returned unchanged.
func WithAll(locks []TryLocker, fn func() error) error {
	LockAll(locks...)
	defer UnlockAll(locks...)
	return fn()
}

// Transfer locks a and b as one atomic step and invokes fn with both
// values, so state can move between two guarded containers without any
// intermediate state being observable. The canonical use is moving a value
// from one container to the other.
//
// a and b must be distinct instances; Transfer between a Guarded and
// itself is a run-time error.
func Transfer[T any](a, b *Guarded[T], fn func(av, bv *T) error) error {
	if a == b {
		panic("guard: Transfer between a Guarded and itself")
	}
	LockAll(a.mu, b.mu)
	defer UnlockAll(a.mu, b.mu)
	return fn(&a.value, &b.value)
}
