package apperrors

import (
	"github.com/hezgame/hez/internal/protocol"
)

// GameError 对局错误（会话层共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrBadKey       = &GameError{Code: protocol.ErrCodeBadKey, Message: "invalid game key"}
	ErrNameTaken    = &GameError{Code: protocol.ErrCodeNameTaken, Message: "name already taken"}
	ErrMatchFull    = &GameError{Code: protocol.ErrCodeMatchFull, Message: "match is full"}
	ErrMatchStarted = &GameError{Code: protocol.ErrCodeMatchStarted, Message: "match already started"}
	ErrNotJoined    = &GameError{Code: protocol.ErrCodeNotJoined, Message: "join the match first"}
	ErrNotYourTurn  = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "not your turn"}
	ErrMatchNotLive = &GameError{Code: protocol.ErrCodeMatchNotLive, Message: "match is not running"}
)
