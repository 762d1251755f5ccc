package hold

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb), mr
}

func TestTryHold_FirstOwnerWins(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ok, err := s.TryHold(ctx, 7, "2025-09-15", "09:30", "owner-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.TryHold(ctx, 7, "2025-09-15", "09:30", "owner-b")
	require.NoError(t, err)
	assert.False(t, ok, "el horario ya está tomado por otro checkout")
}

func TestTryHold_DistinctSlotsIndependent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ok, err := s.TryHold(ctx, 7, "2025-09-15", "09:30", "owner-a")
	require.NoError(t, err)
	require.True(t, ok)

	for _, c := range []struct {
		barberID uint
		date     string
		time     string
	}{
		{8, "2025-09-15", "09:30"},
		{7, "2025-09-16", "09:30"},
		{7, "2025-09-15", "10:00"},
	} {
		ok, err := s.TryHold(ctx, c.barberID, c.date, c.time, "owner-b")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRelease_FreesTheSlot(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.TryHold(ctx, 7, "2025-09-15", "09:30", "owner-a")
	require.NoError(t, err)

	require.NoError(t, s.Release(ctx, 7, "2025-09-15", "09:30"))

	held, err := s.IsHeld(ctx, 7, "2025-09-15", "09:30")
	require.NoError(t, err)
	assert.False(t, held)

	ok, err := s.TryHold(ctx, 7, "2025-09-15", "09:30", "owner-b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHold_ExpiresAfterTTL(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	_, err := s.TryHold(ctx, 7, "2025-09-15", "09:30", "owner-a")
	require.NoError(t, err)

	mr.FastForward(ttl + time.Second)

	held, err := s.IsHeld(ctx, 7, "2025-09-15", "09:30")
	require.NoError(t, err)
	assert.False(t, held, "sin pago el hold expira solo")
}
