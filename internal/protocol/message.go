package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message 基础消息结构
//
// The payload shape is fixed per type; see payloads.go. Sender is filled
// by the client on outbound moves and left empty on server notices.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Sender  string          `json:"sender,omitempty"`
	SentAt  int64           `json:"sent_at"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgJoin       MessageType = "join"        // 带会话密钥加入对局
	MsgPlayCard   MessageType = "play_card"   // 出牌
	MsgDrawCard   MessageType = "draw_card"   // 摸牌
	MsgChooseSuit MessageType = "choose_suit" // 选择花色（出 7 之后）
)

// 服务端 → 客户端 消息类型
const (
	MsgJoinAck      MessageType = "join_ack"      // 加入成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开
	MsgMatchStart   MessageType = "match_start"   // 对局开始
	MsgStateUpdate  MessageType = "state_update"  // 全量状态快照
	MsgMatchOver    MessageType = "match_over"    // 对局结束
	MsgError        MessageType = "error"         // 错误消息
	MsgInvalidMove  MessageType = "invalid_move"  // 无效操作
)

// knownTypes is the closed set of message kinds. Anything outside it is
// rejected during decode rather than partially processed.
var knownTypes = map[MessageType]struct{}{
	MsgJoin:         {},
	MsgPlayCard:     {},
	MsgDrawCard:     {},
	MsgChooseSuit:   {},
	MsgJoinAck:      {},
	MsgPlayerJoined: {},
	MsgPlayerLeft:   {},
	MsgMatchStart:   {},
	MsgStateUpdate:  {},
	MsgMatchOver:    {},
	MsgError:        {},
	MsgInvalidMove:  {},
}

// NewMessage 构造一条消息
func NewMessage(t MessageType, payload any) (*Message, error) {
	msg := &Message{
		Type:   t,
		SentAt: time.Now().UnixMilli(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", t, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage panics on marshal failure; for payload types known to be
// marshalable.
func MustNewMessage(t MessageType, payload any) *Message {
	msg, err := NewMessage(t, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// NewErrorMessage 构造错误消息
func NewErrorMessage(code int, text string) *Message {
	return MustNewMessage(MsgError, ErrorPayload{Code: code, Message: text})
}

// NewInvalidMoveMessage 构造无效操作消息
func NewInvalidMoveMessage(code int, text string) *Message {
	return MustNewMessage(MsgInvalidMove, ErrorPayload{Code: code, Message: text})
}

// Encode 序列化消息
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode 反序列化并校验消息类型
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	if _, ok := knownTypes[msg.Type]; !ok {
		return nil, fmt.Errorf("unknown message type: %q", msg.Type)
	}
	return &msg, nil
}

// DecodePayload 解析消息负载
func DecodePayload[T any](m *Message) (T, error) {
	var payload T
	if err := json.Unmarshal(m.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", m.Type, err)
	}
	return payload, nil
}
