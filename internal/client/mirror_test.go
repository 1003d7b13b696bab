package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hezgame/hez/internal/game"
	"github.com/hezgame/hez/internal/game/card"
)

func TestMirrorEmpty(t *testing.T) {
	t.Parallel()

	m := NewMirror()
	assert.False(t, m.Ready())
	assert.Equal(t, card.Card{}, m.TopCard())
	assert.Equal(t, card.NoSuit, m.ForcedSuit())
	assert.Empty(t, m.CurrentPlayer())
	assert.Nil(t, m.Hand("alice"))
	assert.False(t, m.MustDraw())
	assert.Equal(t, -1, m.PendingSuitChooser())
	assert.Empty(t, m.Winner())
}

func TestMirrorApplyReplacesState(t *testing.T) {
	t.Parallel()

	forced := card.Swords
	snap := &game.Snapshot{
		TopCard:            card.Card{Suit: card.Gold, Rank: card.Rank7},
		ForcedSuit:         &forced,
		CurrentPlayerIndex: 1,
		Players: []game.PlayerSnapshot{
			{Name: "alice", Hand: []card.Card{{Suit: card.Cups, Rank: card.Rank3}}},
			{Name: "bob", Hand: []card.Card{{Suit: card.Gold, Rank: card.Rank4}}},
		},
		MustDraw:           true,
		AccumulatedDraw:    4,
		PendingSuitChooser: -1,
	}

	m := NewMirror()
	m.Apply(snap)

	assert.True(t, m.Ready())
	assert.Equal(t, card.Swords, m.ForcedSuit())
	assert.Equal(t, "bob", m.CurrentPlayer())
	assert.Equal(t, 4, m.AccumulatedDraw())
	assert.True(t, m.MustDraw())

	// Hand returns a copy
	hand := m.Hand("alice")
	require.Len(t, hand, 1)
	hand[0] = card.Card{Suit: card.Sticks, Rank: card.Rank1}
	assert.Equal(t, card.Card{Suit: card.Cups, Rank: card.Rank3}, m.Hand("alice")[0])

	// A later snapshot replaces everything
	m.Apply(&game.Snapshot{
		TopCard: card.Card{Suit: card.Cups, Rank: card.Rank3},
		Players: []game.PlayerSnapshot{
			{Name: "alice"},
			{Name: "bob", Hand: []card.Card{{Suit: card.Gold, Rank: card.Rank4}}},
		},
		PendingSuitChooser: -1,
		Winner:             "alice",
	})
	assert.Equal(t, card.NoSuit, m.ForcedSuit())
	assert.False(t, m.MustDraw())
	assert.Equal(t, "alice", m.Winner())
	assert.Equal(t, "alice", m.CurrentPlayer())
}

func TestMirrorApplyIdempotent(t *testing.T) {
	t.Parallel()

	snap := &game.Snapshot{
		TopCard:            card.Card{Suit: card.Gold, Rank: card.Rank5},
		Players:            []game.PlayerSnapshot{{Name: "alice"}, {Name: "bob"}},
		PendingSuitChooser: -1,
	}

	m := NewMirror()
	m.Apply(snap)
	before := m.Snapshot()
	m.Apply(snap)
	assert.Equal(t, before, m.Snapshot())
}
