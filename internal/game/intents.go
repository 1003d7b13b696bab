package game

import (
	"context"
	"errors"

	"github.com/hezgame/hez/internal/game/card"
)

// IntentKind 玩家意图类型
type IntentKind int

const (
	IntentPlayCard IntentKind = iota
	IntentDrawCard
	IntentChooseSuit
)

// Intent is a single move request. The engine never asks whether a player
// is human or automated; both arrive through the same shape.
type Intent struct {
	Kind IntentKind
	Card card.Card
	Suit card.Suit
}

// MoveSource produces the next intent for a player whose turn it is.
type MoveSource interface {
	NextIntent(ctx context.Context, e *Engine) (Intent, error)
}

// ErrQueueClosed is returned once a HumanIntentQueue is closed.
var ErrQueueClosed = errors.New("intent queue closed")

// HumanIntentQueue feeds externally produced intents (UI input, network
// messages) into a match loop.
type HumanIntentQueue struct {
	ch   chan Intent
	done chan struct{}
}

func NewHumanIntentQueue() *HumanIntentQueue {
	return &HumanIntentQueue{
		ch:   make(chan Intent, 16),
		done: make(chan struct{}),
	}
}

// Push enqueues an intent. It reports false when the queue is full or
// closed instead of blocking the producer.
func (q *HumanIntentQueue) Push(in Intent) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.ch <- in:
		return true
	default:
		return false
	}
}

// NextIntent blocks until an intent arrives, the context ends, or the
// queue closes.
func (q *HumanIntentQueue) NextIntent(ctx context.Context, _ *Engine) (Intent, error) {
	select {
	case in := <-q.ch:
		return in, nil
	case <-q.done:
		return Intent{}, ErrQueueClosed
	case <-ctx.Done():
		return Intent{}, ctx.Err()
	}
}

// Close releases any blocked NextIntent caller.
func (q *HumanIntentQueue) Close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
