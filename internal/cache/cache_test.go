package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int](0).(*ttlCache[string, int])

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheCapacityEviction(t *testing.T) {
	c := NewTTLCache[int, int](2).(*ttlCache[int, int])

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(1, 1, time.Hour)
	c.Set(2, 2, time.Hour)
	c.Set(3, 3, time.Hour)

	assert.LessOrEqual(t, c.Len(), 2)
	if _, ok := c.Get(3); !ok {
		t.Fatal("most recent entry evicted")
	}
}

func TestTTLCacheZeroTTLNotStored(t *testing.T) {
	c := NewTTLCache[string, int](0)
	c.Set("a", 1, 0)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestMemoizerComputesOnce(t *testing.T) {
	m := NewMemoizer[int](8, time.Minute)

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, hit, err := m.Do([]byte("payload"), compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, v)

	v, hit, err = m.Do([]byte("payload"), compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	_, hit, err = m.Do([]byte("other payload"), compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestMemoizerDoesNotCacheErrors(t *testing.T) {
	m := NewMemoizer[int](8, time.Minute)

	calls := 0
	fail := func() (int, error) {
		calls++
		return 0, errors.New("boom")
	}

	_, _, err := m.Do([]byte("bad"), fail)
	require.Error(t, err)
	_, _, err = m.Do([]byte("bad"), fail)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}
