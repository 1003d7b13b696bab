package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hezgame/hez/internal/game/card"
)

func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	e, err := New([]string{"A", "B"}, WithSeed(3), WithAutomated(1))
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, e.TopCard(), snap.TopCard)
	assert.Nil(t, snap.ForcedSuit)
	assert.Equal(t, 0, snap.CurrentPlayerIndex)
	assert.Equal(t, -1, snap.PendingSuitChooser)
	assert.Empty(t, snap.Winner)
	require.Len(t, snap.Players, 2)
	assert.False(t, snap.Players[0].Automated)
	assert.True(t, snap.Players[1].Automated)

	// Mutating the copy must not leak back into the engine.
	snap.Players[0].Hand[0] = card.Card{Suit: card.Gold, Rank: card.Rank12}
	assert.NotEqual(t, snap.Players[0].Hand[0], e.Players()[0].Hand[0])
}

func TestSnapshotForcedSuitAndWinner(t *testing.T) {
	t.Parallel()

	e := newFixture(map[string][]card.Card{
		"A": {},
		"B": {{Suit: card.Gold, Rank: card.Rank4}},
	}, []string{"A", "B"}, card.Card{Suit: card.Gold, Rank: card.Rank5}, nil)
	e.forcedSuit = card.Cups
	e.phase = PhaseOver

	snap := e.Snapshot()
	require.NotNil(t, snap.ForcedSuit)
	assert.Equal(t, card.Cups, *snap.ForcedSuit)
	assert.Equal(t, "A", snap.Winner)
}

func TestSnapshotPendingSuit(t *testing.T) {
	t.Parallel()

	e := newFixture(map[string][]card.Card{
		"A": {{Suit: card.Sticks, Rank: card.Rank7}, {Suit: card.Cups, Rank: card.Rank4}},
		"B": {{Suit: card.Gold, Rank: card.Rank4}},
	}, []string{"A", "B"}, card.Card{Suit: card.Sticks, Rank: card.Rank3}, nil)

	require.NoError(t, e.PlayCard(card.Card{Suit: card.Sticks, Rank: card.Rank7}))
	snap := e.Snapshot()
	assert.Equal(t, 0, snap.PendingSuitChooser)
	assert.Equal(t, 1, snap.CurrentPlayerIndex)
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	t.Parallel()

	e, err := New([]string{"A", "B"}, WithSeed(11))
	require.NoError(t, err)

	data, err := json.Marshal(e.Snapshot())
	require.NoError(t, err)

	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *e.Snapshot(), got)
}
