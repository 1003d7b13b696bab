package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hezgame/hez/internal/game/card"
)

func TestHumanIntentQueueDelivery(t *testing.T) {
	t.Parallel()

	q := NewHumanIntentQueue()
	defer q.Close()

	want := Intent{Kind: IntentPlayCard, Card: card.Card{Suit: card.Cups, Rank: card.Rank3}}
	require.True(t, q.Push(want))

	got, err := q.NextIntent(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHumanIntentQueueClose(t *testing.T) {
	t.Parallel()

	q := NewHumanIntentQueue()
	q.Close()
	q.Close() // idempotent

	assert.False(t, q.Push(Intent{Kind: IntentDrawCard}))

	_, err := q.NextIntent(t.Context(), nil)
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestHumanIntentQueueContextCancel(t *testing.T) {
	t.Parallel()

	q := NewHumanIntentQueue()
	defer q.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	_, err := q.NextIntent(ctx, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHumanIntentQueueFull(t *testing.T) {
	t.Parallel()

	q := NewHumanIntentQueue()
	defer q.Close()

	for range 16 {
		require.True(t, q.Push(Intent{Kind: IntentDrawCard}))
	}
	assert.False(t, q.Push(Intent{Kind: IntentDrawCard}), "producer never blocks")
}
