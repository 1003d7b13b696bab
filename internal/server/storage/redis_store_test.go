package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client)
}

func TestRecordResultAndGetStats(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.RecordResult(ctx, "alice", []string{"bob"}))
	require.NoError(t, store.RecordResult(ctx, "alice", []string{"carol"}))
	require.NoError(t, store.RecordResult(ctx, "bob", []string{"alice"}))

	alice, err := store.GetStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), alice.Wins)
	assert.Equal(t, int64(1), alice.Losses)

	bob, err := store.GetStats(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), bob.Wins)
	assert.Equal(t, int64(1), bob.Losses)
}

func TestGetStatsUnknownPlayer(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	stats, err := store.GetStats(t.Context(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", stats.Name)
	assert.Zero(t, stats.Wins)
	assert.Zero(t, stats.Losses)
}

func TestTopPlayers(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.RecordResult(ctx, "alice", []string{"bob"}))
	require.NoError(t, store.RecordResult(ctx, "alice", []string{"bob"}))
	require.NoError(t, store.RecordResult(ctx, "bob", []string{"alice"}))

	top, err := store.TopPlayers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, LeaderboardEntry{Rank: 1, Name: "alice", Wins: 2}, top[0])
	assert.Equal(t, LeaderboardEntry{Rank: 2, Name: "bob", Wins: 1}, top[1])

	// Limit truncates
	top, err = store.TopPlayers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "alice", top[0].Name)
}
