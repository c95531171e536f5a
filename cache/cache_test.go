package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_HitAndMiss(t *testing.T) {
	s := New(10*time.Minute, 30, nil)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("k", "value")
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestStore_TTLExpiry(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(10*time.Minute, 30, func() time.Time { return clock })

	s.Set("k", "value")

	clock = clock.Add(9 * time.Minute)
	_, ok := s.Get("k")
	assert.True(t, ok, "entry inside TTL is reused")

	clock = clock.Add(2 * time.Minute)
	_, ok = s.Get("k")
	assert.False(t, ok, "entry older than TTL is not reused")
	assert.Equal(t, 0, s.Len(), "expired entry removed on access")
}

func TestStore_CapacityEviction(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(time.Hour, 3, func() time.Time { return clock })

	for i := 0; i < 4; i++ {
		s.Set(fmt.Sprintf("k%d", i), i)
		clock = clock.Add(time.Second)
	}

	assert.Equal(t, 3, s.Len())
	_, ok := s.Get("k0")
	assert.False(t, ok, "oldest entry evicted")
	_, ok = s.Get("k3")
	assert.True(t, ok)
}

func TestKey_StableAndDistinct(t *testing.T) {
	assert.Equal(t, Key("resume", "opts"), Key("resume", "opts"))
	assert.NotEqual(t, Key("resume", "opts"), Key("resume", "other"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"), "part boundaries matter")
}
