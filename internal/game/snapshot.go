package game

import "github.com/hezgame/hez/internal/game/card"

// PlayerSnapshot 玩家状态快照
type PlayerSnapshot struct {
	Name      string      `json:"name"`
	Hand      []card.Card `json:"hand"`
	Automated bool        `json:"automated"`
}

// Snapshot is the point-in-time projection broadcast after every accepted
// mutation. Clients replace their mirror with it wholesale. Every hand is
// included in full; the game has no hidden-information rule.
type Snapshot struct {
	TopCard            card.Card        `json:"top_card"`
	ForcedSuit         *card.Suit       `json:"forced_suit,omitempty"`
	CurrentPlayerIndex int              `json:"current_player_index"`
	Players            []PlayerSnapshot `json:"players"`
	MustDraw           bool             `json:"must_draw"`
	AccumulatedDraw    int              `json:"accumulated_draw"`
	LastPlayWasOne     bool             `json:"last_play_was_one"`
	PendingSuitChooser int              `json:"pending_suit_chooser"` // -1 表示无人待选
	Winner             string           `json:"winner,omitempty"`
}

// Snapshot copies the current state. The copy shares nothing with the
// engine, so it may be broadcast outside the engine lock.
func (e *Engine) Snapshot() *Snapshot {
	s := &Snapshot{
		TopCard:            e.topCard,
		CurrentPlayerIndex: e.current,
		Players:            make([]PlayerSnapshot, 0, len(e.players)),
		MustDraw:           e.mustDraw,
		AccumulatedDraw:    e.accumulatedDraw,
		LastPlayWasOne:     e.lastPlayWasOne,
		PendingSuitChooser: e.PendingSuitChooser(),
	}
	if e.forcedSuit != card.NoSuit {
		forced := e.forcedSuit
		s.ForcedSuit = &forced
	}
	if w := e.Winner(); w != nil {
		s.Winner = w.Name
	}
	for _, p := range e.players {
		hand := make([]card.Card, len(p.Hand))
		copy(hand, p.Hand)
		s.Players = append(s.Players, PlayerSnapshot{
			Name:      p.Name,
			Hand:      hand,
			Automated: p.Behavior == Automated,
		})
	}
	return s
}
