package guard

// A Mutex is a mutual-exclusion lock with a non-blocking TryLock. The lock
// is a buffered channel of capacity one: holding the lock is holding the
// single slot.
//
// A Mutex is not reentrant. A goroutine that calls Lock while already
// holding the lock deadlocks against itself. Callers that need a deadline
// should loop over TryLock with their own backoff; a blocked Lock cannot be
// cancelled.
//
// Mutex implements sync.Locker.
type Mutex struct {
	slot chan struct{}
}

// NewMutex returns a new unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{slot: make(chan struct{}, 1)}
}

// Lock blocks the calling goroutine until it is the sole holder of m. It
// never returns without holding the lock.
func (m *Mutex) Lock() {
	m.slot <- struct{}{}
}

// TryLock attempts to acquire m without blocking. It reports whether the
// lock was acquired.
func (m *Mutex) TryLock() bool {
	select {
	case m.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock releases m. It is a run-time error if m is not locked on entry to
// Unlock.
func (m *Mutex) Unlock() {
	select {
	case <-m.slot:
	default:
		panic("guard: Unlock of unlocked Mutex")
	}
}
