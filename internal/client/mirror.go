package client

import (
	"sync"

	"github.com/hezgame/hez/internal/game"
	"github.com/hezgame/hez/internal/game/card"
)

// Mirror 服务端状态的本地镜像
//
// Apply replaces the whole state with the received snapshot; there is no
// diffing and no sequence tracking, so applying the same snapshot twice
// is a no-op.
type Mirror struct {
	mu   sync.RWMutex
	snap *game.Snapshot
}

func NewMirror() *Mirror {
	return &Mirror{}
}

// Apply 以快照整体覆盖本地状态
func (m *Mirror) Apply(snap *game.Snapshot) {
	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()
}

// Ready reports whether a snapshot has arrived yet.
func (m *Mirror) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap != nil
}

// TopCard 当前顶牌
func (m *Mirror) TopCard() card.Card {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return card.Card{}
	}
	return m.snap.TopCard
}

// ForcedSuit returns the forced suit, or NoSuit when none is active.
func (m *Mirror) ForcedSuit() card.Suit {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil || m.snap.ForcedSuit == nil {
		return card.NoSuit
	}
	return *m.snap.ForcedSuit
}

// CurrentPlayer 当前行动玩家名
func (m *Mirror) CurrentPlayer() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil || m.snap.CurrentPlayerIndex >= len(m.snap.Players) {
		return ""
	}
	return m.snap.Players[m.snap.CurrentPlayerIndex].Name
}

// Hand 返回指定玩家的手牌副本
func (m *Mirror) Hand(name string) []card.Card {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return nil
	}
	for _, p := range m.snap.Players {
		if p.Name == name {
			hand := make([]card.Card, len(p.Hand))
			copy(hand, p.Hand)
			return hand
		}
	}
	return nil
}

// MustDraw 是否处于 2 牌连锁
func (m *Mirror) MustDraw() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap != nil && m.snap.MustDraw
}

// AccumulatedDraw 当前累积摸牌数
func (m *Mirror) AccumulatedDraw() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return 0
	}
	return m.snap.AccumulatedDraw
}

// LastPlayWasOne 上一张打出的是否为 1
func (m *Mirror) LastPlayWasOne() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap != nil && m.snap.LastPlayWasOne
}

// PendingSuitChooser returns the seat owing a suit choice after a 7, or -1.
func (m *Mirror) PendingSuitChooser() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return -1
	}
	return m.snap.PendingSuitChooser
}

// Winner 胜者名（无则为空）
func (m *Mirror) Winner() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return ""
	}
	return m.snap.Winner
}

// Snapshot returns the last applied snapshot (shared, read-only by
// convention).
func (m *Mirror) Snapshot() *game.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}
