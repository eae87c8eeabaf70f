package guard

// rwLocker is the lock surface Cache needs. It is an interface so the lock
// policy can be swapped, e.g. for noLock when a cache is confined to one
// goroutine.
type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noLock is an rwLocker that does nothing, for caches that are not shared.
type noLock struct{}

func (noLock) Lock()    {}
func (noLock) Unlock()  {}
func (noLock) RLock()   {}
func (noLock) RUnlock() {}

// A Cache is a keyed store guarded by an RWLock, for read-mostly state such
// as configuration or lookup tables. Lookups take the shared path and run
// concurrently; mutations take the exclusive path. No method returns a live
// reference into the map.
type Cache[K comparable, V any] struct {
	lk rwLocker
	m  map[K]V
}

// NewCache returns an empty Cache guarded by a new RWLock.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{lk: NewRWLock(), m: make(map[K]V)}
}

// Get returns the value stored under key and whether it was present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.lk.RLock()
	defer c.lk.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// Set stores value under key, overwriting any previous value.
func (c *Cache[K, V]) Set(key K, value V) {
	c.lk.Lock()
	defer c.lk.Unlock()
	c.m[key] = value
}

// RemoveIf removes every entry for which pred returns true, under a single
// exclusive acquisition, and returns the number removed.
func (c *Cache[K, V]) RemoveIf(pred func(key K, value V) bool) int {
	c.lk.Lock()
	defer c.lk.Unlock()
	removed := 0
	for k, v := range c.m {
		if pred(k, v) {
			delete(c.m, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.lk.RLock()
	defer c.lk.RUnlock()
	return len(c.m)
}

// Keys returns a copy of the key set, in no particular order.
func (c *Cache[K, V]) Keys() []K {
	c.lk.RLock()
	defer c.lk.RUnlock()
	keys := make([]K, 0, len(c.m))
	for k := range c.m {
		keys = append(keys, k)
	}
	return keys
}
