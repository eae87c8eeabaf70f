package guard

// A Guarded owns a value of type T together with the Mutex that protects
// it. The value is reachable only inside a session started by Do, Snapshot,
// WithExclusive or Transfer, so no caller can touch it without holding the
// lock, and no accessor ever returns a pointer into it that outlives the
// session.
type Guarded[T any] struct {
	mu    *Mutex
	value T
}

// NewGuarded returns a Guarded owning initial.
func NewGuarded[T any](initial T) *Guarded[T] {
	return &Guarded[T]{mu: NewMutex(), value: initial}
}

// Do acquires the lock, invokes fn with the guarded value and releases the
// lock when fn returns or panics. fn's error is returned unchanged. The
// pointer passed to fn must not be retained past fn's return.
//
// Do is not reentrant: calling Do (or Snapshot) on the same Guarded from
// inside fn deadlocks.
func (g *Guarded[T]) Do(fn func(v *T) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(&g.value)
}

// Snapshot returns a copy of the guarded value taken under the lock. The
// copy is independent of later mutation; if T contains pointers or slices,
// the copy shares their referents and deep copying is the caller's concern.
func (g *Guarded[T]) Snapshot() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// WithExclusive is Do with a result. It is a package function because a
// method cannot introduce the result type parameter R.
func WithExclusive[T, R any](g *Guarded[T], fn func(v *T) (R, error)) (R, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(&g.value)
}
