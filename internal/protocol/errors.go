package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeBadKey       = 2001
	ErrCodeNameTaken    = 2002
	ErrCodeMatchFull    = 2003
	ErrCodeMatchStarted = 2004
	ErrCodeNotJoined    = 2005

	ErrCodeNotYourTurn  = 3001
	ErrCodeIllegalMove  = 3002
	ErrCodeSuitPending  = 3003
	ErrCodeMatchNotLive = 3004
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:      "unknown error",
	ErrCodeInvalidMsg:   "invalid message format",
	ErrCodeBadKey:       "invalid game key",
	ErrCodeNameTaken:    "name already taken",
	ErrCodeMatchFull:    "match is full",
	ErrCodeMatchStarted: "match already started",
	ErrCodeNotJoined:    "join the match first",
	ErrCodeNotYourTurn:  "not your turn",
	ErrCodeIllegalMove:  "illegal move",
	ErrCodeSuitPending:  "a suit choice is pending",
	ErrCodeMatchNotLive: "match is not running",
}
