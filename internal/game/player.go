package game

import "github.com/hezgame/hez/internal/game/card"

// Behavior 玩家行为类型
type Behavior int

const (
	Human Behavior = iota
	Automated
)

// Player 定义一名玩家
type Player struct {
	Name     string
	Hand     []card.Card
	Behavior Behavior
}

// HasPlayable reports whether the player holds at least one card that is
// legal on topCard under forcedSuit.
func (p *Player) HasPlayable(topCard card.Card, forcedSuit card.Suit) bool {
	for _, c := range p.Hand {
		if c.CanBePlayedOn(topCard, forcedSuit) {
			return true
		}
	}
	return false
}

// HasPlayableRank reports whether the player holds a card of rank r that is
// legal on topCard under forcedSuit.
func (p *Player) HasPlayableRank(r card.Rank, topCard card.Card, forcedSuit card.Suit) bool {
	for _, c := range p.Hand {
		if c.Rank == r && c.CanBePlayedOn(topCard, forcedSuit) {
			return true
		}
	}
	return false
}

// holds reports whether the exact card is in the hand.
func (p *Player) holds(c card.Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// remove takes the first matching card out of the hand.
func (p *Player) remove(c card.Card) bool {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}
