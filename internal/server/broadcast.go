package server

import "github.com/hezgame/hez/internal/protocol"

// joinedConns 返回所有已加入玩家的连接
func (s *Server) joinedConns() []*Conn {
	s.mu.Lock()
	defer s.mu.Unlock()

	conns := make([]*Conn, 0, len(s.players))
	for _, c := range s.players {
		if c != nil { // 托管座位没有连接
			conns = append(conns, c)
		}
	}
	return conns
}

// Broadcast 广播消息给所有已加入玩家
func (s *Server) broadcast(msg *protocol.Message) {
	for _, c := range s.joinedConns() {
		c.SendMessage(msg)
	}
}

// broadcastExcept 广播消息给除 skip 以外的已加入玩家
func (s *Server) broadcastExcept(skip *Conn, msg *protocol.Message) {
	for _, c := range s.joinedConns() {
		if c != skip {
			c.SendMessage(msg)
		}
	}
}
