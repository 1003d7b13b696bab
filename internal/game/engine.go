package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hezgame/hez/internal/game/card"
)

// Phase 引擎所处的回合阶段
type Phase int

const (
	// PhaseNormal awaits a play or draw from the current player.
	PhaseNormal Phase = iota
	// PhasePendingDraw means a rank-2 chain is active: the current player
	// must counter with another 2 or draw the accumulated cards.
	PhasePendingDraw
	// PhasePendingSuit means a 7 was just played and its suit choice is
	// still owed by the mover.
	PhasePendingSuit
	// PhaseOver is terminal: some player's hand is empty.
	PhaseOver
)

const initialHandSize = 4

// Engine 权威游戏状态机
//
// All rule enforcement lives here. Callers mutate the match only through
// PlayCard, ChooseSuit and DrawCard; everything else is a read-only query.
type Engine struct {
	players         []*Player
	current         int
	deck            card.Deck
	topCard         card.Card
	forcedSuit      card.Suit
	skipNext        bool
	accumulatedDraw int
	mustDraw        bool
	lastPlayWasOne  bool
	phase           Phase
	pendingSuitBy   int
	rng             *rand.Rand
}

// Option 引擎构造选项
type Option func(*Engine)

// WithSeed makes the shuffle deterministic.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithAutomated marks the given seats as AI-driven.
func WithAutomated(seats ...int) Option {
	return func(e *Engine) {
		for _, i := range seats {
			if i >= 0 && i < len(e.players) {
				e.players[i].Behavior = Automated
			}
		}
	}
}

// New deals a fresh match: a shuffled deck, four cards per player and one
// top card. Requires at least two player names.
func New(names []string, opts ...Option) (*Engine, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(names))
	}

	e := &Engine{
		players:       make([]*Player, 0, len(names)),
		pendingSuitBy: -1,
	}
	for _, name := range names {
		e.players = append(e.players, &Player{Name: name})
	}
	for _, opt := range opts {
		opt(e)
	}

	e.deck = card.NewDeck()
	e.deck.Shuffle(e.rng)

	for range initialHandSize {
		for _, p := range e.players {
			if c, ok := e.deck.Draw(); ok {
				p.Hand = append(p.Hand, c)
			}
		}
	}
	top, ok := e.deck.Draw()
	if !ok {
		return nil, errors.New("deck exhausted during deal")
	}
	e.topCard = top
	e.forcedSuit = card.NoSuit

	return e, nil
}

// PlayCard plays c from the current player's hand onto the top card and
// applies its rank effect. The card must be present in the hand and legal
// under CanBePlayedOn; during a rank-2 chain only another 2 is accepted.
func (e *Engine) PlayCard(c card.Card) error {
	switch e.phase {
	case PhaseOver:
		return ErrMatchOver
	case PhasePendingSuit:
		return ErrSuitChoicePending
	}

	p := e.CurrentPlayer()
	if !p.holds(c) {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, c)
	}
	if e.mustDraw && c.Rank != card.Rank2 {
		return fmt.Errorf("%w: must counter with a 2 or draw %d cards", ErrIllegalMove, e.accumulatedDraw)
	}
	if !c.CanBePlayedOn(e.topCard, e.forcedSuit) {
		return fmt.Errorf("%w: %s on %s", ErrIllegalMove, c, e.topCard)
	}

	p.remove(c)
	e.topCard = c

	switch c.Rank {
	case card.Rank1:
		// Skip the next player unless they hold a 1 they could counter
		// with. Possession is enough; no counter-play happens here.
		if !e.NextPlayer().HasPlayableRank(card.Rank1, e.topCard, e.forcedSuit) {
			e.skipNext = true
		}
		e.lastPlayWasOne = true
		e.forcedSuit = card.NoSuit
		e.advanceTurn()

	case card.Rank2:
		// The next player owes two more cards and must respond before
		// anything else happens.
		e.accumulatedDraw += 2
		e.mustDraw = true
		e.forcedSuit = card.NoSuit
		e.lastPlayWasOne = false
		e.phase = PhasePendingDraw
		e.advanceTurn()

	case card.Rank7:
		// Wild: the mover still owes a suit choice, the turn has already
		// moved on.
		e.lastPlayWasOne = false
		e.pendingSuitBy = e.current
		e.phase = PhasePendingSuit
		e.advanceTurn()

	default:
		e.forcedSuit = card.NoSuit
		e.lastPlayWasOne = false
		e.advanceTurn()
	}

	if len(p.Hand) == 0 {
		e.phase = PhaseOver
	}
	return nil
}

// ChooseSuit sets the forced suit. Valid only as the immediate follow-up
// to a rank-7 play; the turn does not move (it already did).
func (e *Engine) ChooseSuit(s card.Suit) error {
	if e.phase == PhaseOver {
		return ErrMatchOver
	}
	if e.phase != PhasePendingSuit {
		return ErrNoSuitChoicePending
	}
	valid := false
	for _, known := range card.Suits() {
		if s == known {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: invalid suit %d", ErrIllegalMove, s)
	}

	e.forcedSuit = s
	e.pendingSuitBy = -1
	e.phase = PhaseNormal
	return nil
}

// DrawCard makes the current player draw. Under an active rank-2 chain the
// player draws the whole accumulated count and the turn steps backward to
// the attacker; otherwise a single card is drawn and the turn moves on.
// An exhausted deck silently yields fewer cards than owed.
func (e *Engine) DrawCard() error {
	switch e.phase {
	case PhaseOver:
		return ErrMatchOver
	case PhasePendingSuit:
		return ErrSuitChoicePending
	}

	p := e.CurrentPlayer()
	if e.accumulatedDraw > 0 {
		for range e.accumulatedDraw {
			if c, ok := e.deck.Draw(); ok {
				p.Hand = append(p.Hand, c)
			}
		}
		e.accumulatedDraw = 0
		e.mustDraw = false
		e.phase = PhaseNormal
		// Control returns to the player who inflicted the chain.
		e.current = (e.current - 1 + len(e.players)) % len(e.players)
		return nil
	}

	if c, ok := e.deck.Draw(); ok {
		p.Hand = append(p.Hand, c)
	}
	e.forcedSuit = card.NoSuit
	e.advanceTurn()
	return nil
}

// Apply dispatches an intent to the matching mutation.
func (e *Engine) Apply(in Intent) error {
	switch in.Kind {
	case IntentPlayCard:
		return e.PlayCard(in.Card)
	case IntentDrawCard:
		return e.DrawCard()
	case IntentChooseSuit:
		return e.ChooseSuit(in.Suit)
	default:
		return fmt.Errorf("%w: unknown intent %d", ErrIllegalMove, in.Kind)
	}
}

// advanceTurn moves the index forward, two steps when a skip is pending.
func (e *Engine) advanceTurn() {
	step := 1
	if e.skipNext {
		step = 2
		e.skipNext = false
	}
	e.current = (e.current + step) % len(e.players)
}

// --- 只读查询 ---

func (e *Engine) TopCard() card.Card {
	return e.topCard
}

// ForcedSuit returns the forced suit, or NoSuit when none is active.
func (e *Engine) ForcedSuit() card.Suit {
	return e.forcedSuit
}

func (e *Engine) CurrentPlayerIndex() int {
	return e.current
}

func (e *Engine) CurrentPlayer() *Player {
	return e.players[e.current]
}

func (e *Engine) NextPlayer() *Player {
	return e.players[(e.current+1)%len(e.players)]
}

func (e *Engine) Players() []*Player {
	return e.players
}

func (e *Engine) MustDraw() bool {
	return e.mustDraw
}

func (e *Engine) AccumulatedDraw() int {
	return e.accumulatedDraw
}

func (e *Engine) LastPlayWasOne() bool {
	return e.lastPlayWasOne
}

func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) DeckSize() int {
	return e.deck.Size()
}

// PendingSuitChooser returns the seat owing a rank-7 suit choice, or -1.
func (e *Engine) PendingSuitChooser() int {
	if e.phase != PhasePendingSuit {
		return -1
	}
	return e.pendingSuitBy
}

// HasPlayableRank reports whether the player at idx holds a card of rank r
// that is legal on the current top card.
func (e *Engine) HasPlayableRank(idx int, r card.Rank) bool {
	if idx < 0 || idx >= len(e.players) {
		return false
	}
	return e.players[idx].HasPlayableRank(r, e.topCard, e.forcedSuit)
}

// PlayableCards returns the current player's legal cards in hand order.
func (e *Engine) PlayableCards() []card.Card {
	var playable []card.Card
	for _, c := range e.CurrentPlayer().Hand {
		if c.CanBePlayedOn(e.topCard, e.forcedSuit) {
			playable = append(playable, c)
		}
	}
	return playable
}

// IsOver reports whether some player's hand is empty.
func (e *Engine) IsOver() bool {
	return e.phase == PhaseOver
}

// Winner returns the empty-handed player, or nil while the match runs.
func (e *Engine) Winner() *Player {
	for _, p := range e.players {
		if len(p.Hand) == 0 {
			return p
		}
	}
	return nil
}
