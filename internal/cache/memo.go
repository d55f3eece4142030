package cache

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// Memoizer caches the result of a pure function of a raw payload, keyed by a
// content hash of the bytes. Identical input always maps to the same entry;
// there is no invalidation beyond TTL expiry.
type Memoizer[V any] struct {
	cache Cache[uint64, V]
	ttl   time.Duration
}

// NewMemoizer builds a Memoizer holding at most maxEntries results for ttl.
func NewMemoizer[V any](maxEntries int, ttl time.Duration) *Memoizer[V] {
	return &Memoizer[V]{
		cache: NewTTLCache[uint64, V](maxEntries),
		ttl:   ttl,
	}
}

// Do returns the cached result for raw, computing and storing it on a miss.
// compute errors are returned as-is and never cached.
func (m *Memoizer[V]) Do(raw []byte, compute func() (V, error)) (V, bool, error) {
	key := xxhash.Sum64(raw)
	if v, ok := m.cache.Get(key); ok {
		return v, true, nil
	}

	v, err := compute()
	if err != nil {
		var zero V
		return zero, false, err
	}
	m.cache.Set(key, v, m.ttl)
	return v, false, nil
}
