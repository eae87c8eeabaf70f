package guard

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Thread A takes [X, Y], thread B takes [Y, X]. With naive ordered
// acquisition this deadlocks almost immediately; LockAll must let both
// finish every iteration.
func TestLockAllOppositeOrders(t *testing.T) {
	iterations := 1000
	if testing.Short() {
		iterations = 50
	}

	x, y := NewMutex(), NewMutex()
	count := 0

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			if err := WithAll([]TryLocker{x, y}, func() error {
				count++
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			if err := WithAll([]TryLocker{y, x}, func() error {
				count++
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())
	require.Equal(t, 2*iterations, count)
}

// Every goroutine lists the same locks in its own random order. No lost
// updates and no hang means the protocol held all locks at once, every
// time, without forming a waiting cycle.
func TestLockAllShuffledOrders(t *testing.T) {
	const numLocks, goroutines = 6, 8
	iterations := 200
	if testing.Short() {
		iterations = 20
	}

	locks := make([]TryLocker, numLocks)
	for i := range locks {
		locks[i] = NewMutex()
	}
	count := 0

	var g errgroup.Group
	for w := 0; w < goroutines; w++ {
		seed := int64(w + 1)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			order := make([]TryLocker, numLocks)
			copy(order, locks)
			for i := 0; i < iterations; i++ {
				rng.Shuffle(numLocks, func(a, b int) {
					order[a], order[b] = order[b], order[a]
				})
				if err := WithAll(order, func() error {
					count++
					return nil
				}); err != nil {
					return err
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.Equal(t, goroutines*iterations, count)
}

func TestWithAllReleasesOnError(t *testing.T) {
	errBoom := errors.New("boom")
	a, b := NewMutex(), NewMutex()

	err := WithAll([]TryLocker{a, b}, func() error {
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	// Both locks are free again.
	require.True(t, a.TryLock())
	require.True(t, b.TryLock())
	a.Unlock()
	b.Unlock()
}

func TestWithAllReleasesOnPanic(t *testing.T) {
	a, b := NewMutex(), NewMutex()

	require.Panics(t, func() {
		_ = WithAll([]TryLocker{a, b}, func() error {
			panic("callback exploded")
		})
	})

	require.True(t, a.TryLock())
	require.True(t, b.TryLock())
	a.Unlock()
	b.Unlock()
}

func TestLockAllDegenerateSizes(t *testing.T) {
	LockAll() // no locks: nothing to do

	m := NewMutex()
	LockAll(m)
	require.False(t, m.TryLock())
	UnlockAll(m)
	require.True(t, m.TryLock())
	m.Unlock()
}

// Concurrent transfers in both directions between two guarded accounts.
// The combined balance is invariant, so any observable partial acquisition
// or lost update shows up as a wrong total.
func TestTransferConservesSum(t *testing.T) {
	iterations := 1000
	if testing.Short() {
		iterations = 50
	}

	a := NewGuarded(10000)
	b := NewGuarded(10000)
	move := func(from, to *Guarded[int]) error {
		return Transfer(from, to, func(fv, tv *int) error {
			if *fv == 0 {
				return nil
			}
			*fv--
			*tv++
			return nil
		})
	}

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			if err := move(a, b); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			if err := move(b, a); err != nil {
				return err
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())
	require.Equal(t, 20000, a.Snapshot()+b.Snapshot())
}

func TestTransferToSelfPanics(t *testing.T) {
	g := NewGuarded(1)
	require.Panics(t, func() {
		_ = Transfer(g, g, func(av, bv *int) error { return nil })
	})
}
