package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hezgame/hez/internal/protocol"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 8192
)

// Conn 代表一条客户端连接
//
// The send channel serializes outgoing writes; ReadPump is the only
// reader. A connection stays unjoined (empty name) until a valid join
// message arrives.
type Conn struct {
	ID   string
	name string // 加入成功后的玩家名

	server *Server
	ws     *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	closed bool
}

// NewConn 创建连接
func NewConn(s *Server, ws *websocket.Conn) *Conn {
	return &Conn{
		ID:     uuid.New().String(),
		server: s,
		ws:     ws,
		send:   make(chan []byte, 64),
	}
}

// Name 返回加入后的玩家名（未加入为空）
func (c *Conn) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Conn) setName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

// ReadPump 从 WebSocket 读取消息
func (c *Conn) ReadPump() {
	defer func() {
		c.server.handleDisconnect(c)
		c.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error from %s: %v", c.ID, err)
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			log.Printf("bad message from %s: %v", c.ID, err)
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg, err.Error()))
			continue
		}

		c.server.handleMessage(c, msg)
	}
}

// WritePump 向 WebSocket 写入消息
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息（非阻塞，缓冲满则丢弃）
func (c *Conn) SendMessage(msg *protocol.Message) {
	data, err := msg.Encode()
	if err != nil {
		log.Printf("encode %s message: %v", msg.Type, err)
		return
	}

	// The read lock pins the channel open against a concurrent Close.
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("⚠️ send buffer full, dropping %s for %s", msg.Type, c.ID)
	}
}

// Close 关闭连接
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
		_ = c.ws.Close()
	}
}
