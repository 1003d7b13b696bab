package game

import (
	"context"
	"math/rand/v2"

	"github.com/hezgame/hez/internal/game/card"
)

// AIPolicy 自动玩家策略
//
// The policy only reads engine queries; every mutation goes back through
// the normal intent path. Given the same engine state it always produces
// the same move (the random source is touched only for the empty-hand
// suit fallback).
type AIPolicy struct {
	rng *rand.Rand
}

// AIOption AI 构造选项
type AIOption func(*AIPolicy)

// WithAISeed makes the empty-hand suit fallback deterministic.
func WithAISeed(seed uint64) AIOption {
	return func(p *AIPolicy) {
		p.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

func NewAIPolicy(opts ...AIOption) *AIPolicy {
	p := &AIPolicy{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NextIntent implements MoveSource for an automated seat.
func (p *AIPolicy) NextIntent(_ context.Context, e *Engine) (Intent, error) {
	if e.Phase() == PhasePendingSuit {
		return Intent{
			Kind: IntentChooseSuit,
			Suit: p.SelectSuit(e.players[e.PendingSuitChooser()].Hand),
		}, nil
	}
	if c, ok := p.SelectCard(e); ok {
		return Intent{Kind: IntentPlayCard, Card: c}, nil
	}
	return Intent{Kind: IntentDrawCard}, nil
}

// SelectCard picks the current player's move. The second result is false
// when the policy decides (or is forced) to draw instead.
//
// Preference order: counter an active rank-2 chain with a 2 or give up and
// draw; counter a freshly played 1 with a 1; specials 1, 2, 7; the top
// card's suit; the top card's rank; the first legal card in hand order.
func (p *AIPolicy) SelectCard(e *Engine) (card.Card, bool) {
	playable := e.PlayableCards()
	if len(playable) == 0 {
		return card.Card{}, false
	}

	if e.MustDraw() {
		for _, c := range playable {
			if c.Rank == card.Rank2 {
				return c, true
			}
		}
		return card.Card{}, false
	}

	if e.LastPlayWasOne() && e.TopCard().Rank == card.Rank1 {
		for _, c := range playable {
			if c.Rank == card.Rank1 {
				return c, true
			}
		}
	}

	for _, special := range []card.Rank{card.Rank1, card.Rank2, card.Rank7} {
		for _, c := range playable {
			if c.Rank == special {
				return c, true
			}
		}
	}

	for _, c := range playable {
		if c.Suit == e.TopCard().Suit {
			return c, true
		}
	}
	for _, c := range playable {
		if c.Rank == e.TopCard().Rank {
			return c, true
		}
	}
	return playable[0], true
}

// SelectSuit picks the forced suit after a wild. Each held suit scores
// 2×count plus 3 per 1-or-2 of that suit; the best-scoring held suit wins,
// ties falling to enumeration order. An empty hand picks uniformly at
// random.
func (p *AIPolicy) SelectSuit(hand []card.Card) card.Suit {
	suits := card.Suits()

	if len(hand) == 0 {
		if p.rng != nil {
			return suits[p.rng.IntN(len(suits))]
		}
		return suits[rand.IntN(len(suits))]
	}

	counts := make(map[card.Suit]int, len(suits))
	weights := make(map[card.Suit]int, len(suits))
	for _, c := range hand {
		counts[c.Suit]++
		weights[c.Suit] += 2
		if c.Rank == card.Rank1 || c.Rank == card.Rank2 {
			weights[c.Suit] += 3
		}
	}

	best := suits[0]
	bestWeight := -1
	for _, s := range suits {
		if counts[s] == 0 {
			continue
		}
		if weights[s] > bestWeight {
			bestWeight = weights[s]
			best = s
		}
	}

	if counts[best] == 0 {
		// Fallback path: take the suit with the most cards instead.
		mostCommon := suits[0]
		maxCount := -1
		for _, s := range suits {
			if counts[s] > maxCount {
				maxCount = counts[s]
				mostCommon = s
			}
		}
		return mostCommon
	}
	return best
}
