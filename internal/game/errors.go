package game

import "errors"

// 引擎错误
var (
	// ErrIllegalMove is returned when a card is not a legal play on the
	// current top card, or when the pending-draw state only admits a 2.
	ErrIllegalMove = errors.New("card cannot be played")

	// ErrCardNotInHand wraps ErrIllegalMove: the mover does not hold the card.
	ErrCardNotInHand = errors.New("card not in hand")

	// ErrSuitChoicePending is returned when a play or draw arrives while a
	// rank-7 suit choice is still owed.
	ErrSuitChoicePending = errors.New("suit choice pending")

	// ErrNoSuitChoicePending is returned by ChooseSuit outside a rank-7
	// follow-up.
	ErrNoSuitChoicePending = errors.New("no suit choice pending")

	// ErrMatchOver is returned by every mutation once a hand is empty.
	ErrMatchOver = errors.New("match is over")
)
