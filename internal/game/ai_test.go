package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hezgame/hez/internal/game/card"
)

func TestSelectCardPrefersSpecials(t *testing.T) {
	t.Parallel()

	// Gold 4 and Gold 7 are both legal on gold 5; the wild outranks the
	// plain suit match.
	e := newFixture(map[string][]card.Card{
		"A": {{Suit: card.Gold, Rank: card.Rank4}, {Suit: card.Gold, Rank: card.Rank7}},
		"B": {{Suit: card.Cups, Rank: card.Rank3}},
	}, []string{"A", "B"}, card.Card{Suit: card.Gold, Rank: card.Rank5}, nil)

	policy := NewAIPolicy()
	c, ok := policy.SelectCard(e)
	require.True(t, ok)
	assert.Equal(t, card.Card{Suit: card.Gold, Rank: card.Rank7}, c)
}

func TestSelectCardSuitBeforeRank(t *testing.T) {
	t.Parallel()

	// No specials in hand: the top card's suit wins over its rank.
	e := newFixture(map[string][]card.Card{
		"A": {{Suit: card.Cups, Rank: card.Rank5}, {Suit: card.Gold, Rank: card.Rank4}},
		"B": {{Suit: card.Cups, Rank: card.Rank3}},
	}, []string{"A", "B"}, card.Card{Suit: card.Gold, Rank: card.Rank5}, nil)

	policy := NewAIPolicy()
	c, ok := policy.SelectCard(e)
	require.True(t, ok)
	assert.Equal(t, card.Card{Suit: card.Gold, Rank: card.Rank4}, c)
}

func TestSelectCardDrawsWhenStuck(t *testing.T) {
	t.Parallel()

	e := newFixture(map[string][]card.Card{
		"A": {{Suit: card.Cups, Rank: card.Rank3}},
		"B": {{Suit: card.Sticks, Rank: card.Rank4}},
	}, []string{"A", "B"}, card.Card{Suit: card.Gold, Rank: card.Rank11}, nil)

	policy := NewAIPolicy()
	_, ok := policy.SelectCard(e)
	assert.False(t, ok)
}

func TestSelectCardCountersDrawChain(t *testing.T) {
	t.Parallel()

	e := newFixture(map[string][]card.Card{
		"A": {{Suit: card.Gold, Rank: card.Rank3}, {Suit: card.Swords, Rank: card.Rank2}},
		"B": {{Suit: card.Cups, Rank: card.Rank3}},
	}, []string{"A", "B"}, card.Card{Suit: card.Gold, Rank: card.Rank2}, nil)
	e.accumulatedDraw = 2
	e.mustDraw = true
	e.phase = PhasePendingDraw

	policy := NewAIPolicy()

	// Holding a 2: counter
	c, ok := policy.SelectCard(e)
	require.True(t, ok)
	assert.Equal(t, card.Rank2, c.Rank)

	// Without one: draw, even though gold 3 would match the top suit
	e.players[0].Hand = []card.Card{{Suit: card.Gold, Rank: card.Rank3}}
	_, ok = policy.SelectCard(e)
	assert.False(t, ok)
}

func TestSelectCardCountersRankOne(t *testing.T) {
	t.Parallel()

	// A 1 was just played against us: answer with our own 1 rather than
	// the suit match.
	e := newFixture(map[string][]card.Card{
		"A": {{Suit: card.Gold, Rank: card.Rank4}, {Suit: card.Swords, Rank: card.Rank1}},
		"B": {{Suit: card.Cups, Rank: card.Rank3}},
	}, []string{"A", "B"}, card.Card{Suit: card.Gold, Rank: card.Rank1}, nil)
	e.lastPlayWasOne = true

	policy := NewAIPolicy()
	c, ok := policy.SelectCard(e)
	require.True(t, ok)
	assert.Equal(t, card.Card{Suit: card.Swords, Rank: card.Rank1}, c)
}

func TestSelectSuitWeights(t *testing.T) {
	t.Parallel()

	policy := NewAIPolicy()

	tests := []struct {
		name string
		hand []card.Card
		want card.Suit
	}{
		{
			// cups: 2×3 + 3 = 9, gold: 2×2 = 4
			name: "specials outweigh plain count",
			hand: []card.Card{
				{Suit: card.Cups, Rank: card.Rank2},
				{Suit: card.Cups, Rank: card.Rank5},
				{Suit: card.Cups, Rank: card.Rank10},
				{Suit: card.Gold, Rank: card.Rank3},
				{Suit: card.Gold, Rank: card.Rank4},
			},
			want: card.Cups,
		},
		{
			// swords: 2×1 + 3 = 5, gold: 2×2 = 4
			name: "single 2 beats two plain cards",
			hand: []card.Card{
				{Suit: card.Swords, Rank: card.Rank2},
				{Suit: card.Gold, Rank: card.Rank3},
				{Suit: card.Gold, Rank: card.Rank4},
			},
			want: card.Swords,
		},
		{
			// tie at 2 apiece: enumeration order prefers sticks
			name: "ties fall to enumeration order",
			hand: []card.Card{
				{Suit: card.Gold, Rank: card.Rank3},
				{Suit: card.Sticks, Rank: card.Rank4},
			},
			want: card.Sticks,
		},
		{
			name: "only one suit held",
			hand: []card.Card{{Suit: card.Swords, Rank: card.Rank10}},
			want: card.Swords,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, policy.SelectSuit(tt.hand))
		})
	}
}

func TestSelectSuitEmptyHandIsDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a := NewAIPolicy(WithAISeed(7))
	b := NewAIPolicy(WithAISeed(7))
	for range 10 {
		assert.Equal(t, a.SelectSuit(nil), b.SelectSuit(nil))
	}
}

func TestNextIntentChoosesSuitWhenPending(t *testing.T) {
	t.Parallel()

	e := newFixture(map[string][]card.Card{
		"A": {{Suit: card.Cups, Rank: card.Rank3}, {Suit: card.Cups, Rank: card.Rank4}},
		"B": {{Suit: card.Gold, Rank: card.Rank5}},
	}, []string{"A", "B"}, card.Card{Suit: card.Swords, Rank: card.Rank7}, nil)
	e.phase = PhasePendingSuit
	e.pendingSuitBy = 0
	e.current = 1 // the turn already moved on

	policy := NewAIPolicy()
	intent, err := policy.NextIntent(t.Context(), e)
	require.NoError(t, err)
	assert.Equal(t, IntentChooseSuit, intent.Kind)
	assert.Equal(t, card.Cups, intent.Suit, "chosen from the mover's hand, not the current player's")
}

func TestNextIntentDrawsWithNoLegalMove(t *testing.T) {
	t.Parallel()

	e := newFixture(map[string][]card.Card{
		"A": {{Suit: card.Cups, Rank: card.Rank3}},
		"B": {{Suit: card.Sticks, Rank: card.Rank4}},
	}, []string{"A", "B"}, card.Card{Suit: card.Gold, Rank: card.Rank11}, nil)

	policy := NewAIPolicy()
	intent, err := policy.NextIntent(t.Context(), e)
	require.NoError(t, err)
	assert.Equal(t, IntentDrawCard, intent.Kind)
}
