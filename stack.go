package guard

import (
	"errors"
)

// ErrEmpty is returned by Pop on an empty Stack.
var ErrEmpty = errors.New("guard: stack is empty")

// A Stack is a LIFO stack built on a Guarded slice. The emptiness check and
// the pop are a single operation under one lock acquisition, so callers
// never race an isEmpty-then-pop sequence against each other.
type Stack[T any] struct {
	items *Guarded[[]T]
}

// NewStack returns an empty Stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{items: NewGuarded([]T(nil))}
}

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) {
	_ = s.items.Do(func(items *[]T) error {
		*items = append(*items, v)
		return nil
	})
}

// TryPop removes and returns the top value. It reports false, without
// blocking further, if the stack was empty at the instant of the check.
func (s *Stack[T]) TryPop() (T, bool) {
	var top T
	ok := false
	_ = s.items.Do(func(items *[]T) error {
		n := len(*items)
		if n == 0 {
			return nil
		}
		var zero T
		top = (*items)[n-1]
		(*items)[n-1] = zero
		*items = (*items)[:n-1]
		ok = true
		return nil
	})
	return top, ok
}

// Pop removes and returns the top value, or ErrEmpty if the stack is empty.
func (s *Stack[T]) Pop() (T, error) {
	v, ok := s.TryPop()
	if !ok {
		return v, ErrEmpty
	}
	return v, nil
}

// Len returns the number of values on the stack.
func (s *Stack[T]) Len() int {
	n := 0
	_ = s.items.Do(func(items *[]T) error {
		n = len(*items)
		return nil
	})
	return n
}

// Snapshot returns a copy of the stack contents, bottom first. The copy is
// independent of later pushes and pops.
func (s *Stack[T]) Snapshot() []T {
	var out []T
	_ = s.items.Do(func(items *[]T) error {
		out = append(out, *items...)
		return nil
	})
	return out
}
