package protocol

import (
	"github.com/hezgame/hez/internal/game"
	"github.com/hezgame/hez/internal/game/card"
)

// --- 客户端请求 Payloads ---

// JoinPayload 加入对局请求
type JoinPayload struct {
	Key  string `json:"key"`  // 共享会话密钥
	Name string `json:"name"` // 显示名称
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	Card card.Card `json:"card"`
}

// ChooseSuitPayload 选择花色请求
type ChooseSuitPayload struct {
	Suit card.Suit `json:"suit"`
}

// --- 服务端响应 Payloads ---

// JoinAckPayload 加入成功响应
type JoinAckPayload struct {
	Name    string   `json:"name"`    // 服务端确认的名称
	Players []string `json:"players"` // 当前已注册玩家
}

// PlayerJoinedPayload 玩家加入通知
type PlayerJoinedPayload struct {
	Name string `json:"name"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	Name string `json:"name"`
}

// MatchStartPayload 对局开始通知
type MatchStartPayload struct {
	Players []string `json:"players"` // 按座位顺序排列
}

// StateUpdatePayload 全量状态快照
type StateUpdatePayload struct {
	State *game.Snapshot `json:"state"`
}

// MatchOverPayload 对局结束通知
//
// Winner is empty when the match ends by disconnection.
type MatchOverPayload struct {
	Winner string `json:"winner,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ErrorPayload 错误响应（error 与 invalid_move 共用）
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
