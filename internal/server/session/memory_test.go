package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndLookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(DefaultTTL)

	id, err := store.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	start, ok, err := store.StartTime(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now(), start, time.Second)

	_, ok, err = store.StartTime(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(DefaultTTL)

	seen := make(map[string]bool)
	for range 100 {
		id, err := store.Create(ctx)
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
	assert.Equal(t, 100, store.Len())
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	id, err := store.Create(ctx)
	require.NoError(t, err)

	// Still valid within the TTL
	store.now = func() time.Time { return base.Add(59 * time.Minute) }
	_, ok, err := store.StartTime(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	// Expired sessions are invisible even before the sweep runs
	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, ok, err = store.StartTime(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := store.Sweep(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Zero(t, store.Len())
}

func TestMemoryStore_SweepKeepsFreshSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(0)

	_, err := store.Create(ctx)
	require.NoError(t, err)

	removed, err := store.Sweep(ctx, time.Now().Add(23*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, 1, store.Len())
}
