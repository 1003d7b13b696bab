package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Suit is one of the four suits of the Spanish deck used by Hez.
type Suit int

// Rank is the face value of a card. Hez uses 1-7 and 10-12; 8 and 9
// do not exist in the deck.
type Rank int

const (
	Sticks Suit = iota
	Cups
	Swords
	Gold

	// NoSuit marks the absence of a forced suit.
	NoSuit Suit = -1
)

// suitNames 花色名称映射表
var suitNames = map[Suit]string{
	Sticks: "sticks",
	Cups:   "cups",
	Swords: "swords",
	Gold:   "gold",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return ""
}

// Suits returns the four suits in enumeration order.
func Suits() [4]Suit {
	return [4]Suit{Sticks, Cups, Swords, Gold}
}

// SuitFromName parses a suit name as typed by a player.
func SuitFromName(name string) (Suit, error) {
	for s, n := range suitNames {
		if n == name {
			return s, nil
		}
	}
	return NoSuit, fmt.Errorf("unknown suit: %q", name)
}

const (
	Rank1  Rank = 1
	Rank2  Rank = 2
	Rank3  Rank = 3
	Rank4  Rank = 4
	Rank5  Rank = 5
	Rank6  Rank = 6
	Rank7  Rank = 7
	Rank10 Rank = 10
	Rank11 Rank = 11
	Rank12 Rank = 12
)

// Ranks returns the ten ranks of the deck in ascending order.
func Ranks() [10]Rank {
	return [10]Rank{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank10, Rank11, Rank12}
}

func (r Rank) String() string {
	return strconv.Itoa(int(r))
}

// Card 定义一张牌
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Suit.String() + " " + c.Rank.String()
}

// CanBePlayedOn reports whether this card is a legal play on top of
// topCard under the given forced suit. The checks apply in strict
// precedence order:
//  1. same rank is always legal, even against a forced suit
//  2. a forced suit, when set, admits only that suit
//  3. same suit as the top card
//  4. a 7 is wild
func (c Card) CanBePlayedOn(topCard Card, forcedSuit Suit) bool {
	if c.Rank == topCard.Rank {
		return true
	}
	if forcedSuit != NoSuit {
		return c.Suit == forcedSuit
	}
	if c.Suit == topCard.Suit {
		return true
	}
	if c.Rank == Rank7 {
		return true
	}
	return false
}

// Deck 定义一副牌
type Deck []Card

// DeckSize is the number of cards in a full Hez deck.
const DeckSize = 40

// NewDeck builds the full 40-card deck in suit-major, rank-ascending order.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, s := range Suits() {
		for _, r := range Ranks() {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes the deck uniformly. A nil rng uses the shared
// global source.
func (d Deck) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) {
		d[i], d[j] = d[j], d[i]
	}
	if rng != nil {
		rng.Shuffle(len(d), swap)
		return
	}
	rand.Shuffle(len(d), swap)
}

// Draw removes and returns the front card. The second result is false
// when the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	c := (*d)[0]
	*d = (*d)[1:]
	return c, true
}

func (d Deck) IsEmpty() bool {
	return len(d) == 0
}

func (d Deck) Size() int {
	return len(d)
}
