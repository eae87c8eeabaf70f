package guard

// A Counter is a shared counter built on a Guarded int64. Every mutation
// runs inside a scoped session, so concurrent increments never lose
// updates.
type Counter struct {
	n *Guarded[int64]
}

// NewCounter returns a Counter starting at zero.
func NewCounter() *Counter {
	return &Counter{n: NewGuarded(int64(0))}
}

// Add adds delta and returns the new value, as one atomic step.
func (c *Counter) Add(delta int64) int64 {
	v, _ := WithExclusive(c.n, func(n *int64) (int64, error) {
		*n += delta
		return *n, nil
	})
	return v
}

// Inc adds one and returns the new value.
func (c *Counter) Inc() int64 { return c.Add(1) }

// Dec subtracts one and returns the new value.
func (c *Counter) Dec() int64 { return c.Add(-1) }

// Value returns the current count.
func (c *Counter) Value() int64 {
	return c.n.Snapshot()
}
