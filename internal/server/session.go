package server

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hezgame/hez/internal/apperrors"
	"github.com/hezgame/hez/internal/game"
	"github.com/hezgame/hez/internal/protocol"
)

// handleMessage 分发客户端消息
func (s *Server) handleMessage(c *Conn, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgJoin:
		s.handleJoin(c, msg)
	case protocol.MsgPlayCard, protocol.MsgDrawCard, protocol.MsgChooseSuit:
		s.handleMove(c, msg)
	default:
		// 服务端专属类型不接受来自客户端的投递
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg,
			"unexpected message type: "+string(msg.Type)))
	}
}

// handleJoin 处理加入握手
//
// Accepted iff the key matches, the name is free and non-empty, the match
// has not started, and fewer than two players are registered. A rejected
// connection stays open but unjoined.
func (s *Server) handleJoin(c *Conn, msg *protocol.Message) {
	payload, err := protocol.DecodePayload[protocol.JoinPayload](msg)
	if err != nil || payload.Name == "" {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg, "bad join payload"))
		return
	}

	reject := func(ge *apperrors.GameError) {
		c.SendMessage(protocol.NewErrorMessage(ge.Code, ge.Message))
	}

	s.mu.Lock()
	switch {
	case payload.Key != s.cfg.Session.Key:
		s.mu.Unlock()
		reject(apperrors.ErrBadKey)
		return
	case s.started:
		s.mu.Unlock()
		reject(apperrors.ErrMatchStarted)
		return
	case len(s.order) >= maxPlayers:
		s.mu.Unlock()
		reject(apperrors.ErrMatchFull)
		return
	}
	if _, taken := s.players[payload.Name]; taken {
		s.mu.Unlock()
		reject(apperrors.ErrNameTaken)
		return
	}

	c.setName(payload.Name)
	s.players[payload.Name] = c
	s.order = append(s.order, payload.Name)
	names := append([]string(nil), s.order...)
	full := len(s.order) == maxPlayers
	s.mu.Unlock()

	log.Printf("✅ Player %q joined (%d/%d)", payload.Name, len(names), maxPlayers)

	c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinAck, protocol.JoinAckPayload{
		Name:    payload.Name,
		Players: names,
	}))
	s.broadcastExcept(c, protocol.MustNewMessage(protocol.MsgPlayerJoined,
		protocol.PlayerJoinedPayload{Name: payload.Name}))

	if full {
		s.startMatch()
	}
}

// startMatch 发牌并广播开局
func (s *Server) startMatch() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}

	opts := []game.Option{}
	if s.cfg.Game.Seed != 0 {
		opts = append(opts, game.WithSeed(s.cfg.Game.Seed))
	}
	if s.hostAI != nil {
		opts = append(opts, game.WithAutomated(0))
	}

	engine, err := game.New(append([]string(nil), s.order...), opts...)
	if err != nil {
		s.mu.Unlock()
		log.Printf("failed to start match: %v", err)
		return
	}
	s.engine = engine
	s.started = true
	names := append([]string(nil), s.order...)
	snap := engine.Snapshot()
	s.mu.Unlock()

	log.Printf("🎮 Match started: %v", names)

	s.broadcast(protocol.MustNewMessage(protocol.MsgMatchStart,
		protocol.MatchStartPayload{Players: names}))
	s.broadcast(protocol.MustNewMessage(protocol.MsgStateUpdate,
		protocol.StateUpdatePayload{State: snap}))

	if s.hostAI != nil {
		go s.runAutomatedTurns()
	}
}

// handleMove 处理出牌、摸牌、选花色
//
// Validation, mutation and the snapshot copy all happen under one lock so
// concurrent moves from different connections cannot interleave
// mid-transition. There is no separate move acknowledgement: the mover
// learns of success from the broadcast like everyone else.
func (s *Server) handleMove(c *Conn, msg *protocol.Message) {
	name := c.Name()
	if name == "" {
		c.SendMessage(protocol.NewErrorMessage(apperrors.ErrNotJoined.Code, apperrors.ErrNotJoined.Message))
		return
	}

	s.mu.Lock()
	if !s.started || s.over {
		s.mu.Unlock()
		c.SendMessage(protocol.NewInvalidMoveMessage(apperrors.ErrMatchNotLive.Code, apperrors.ErrMatchNotLive.Message))
		return
	}

	seat := s.seatOf(name)
	// choose_suit is owed by the 7-player, whose turn has already passed;
	// everything else belongs to the current player.
	var ownsTurn bool
	if msg.Type == protocol.MsgChooseSuit {
		ownsTurn = s.engine.PendingSuitChooser() == seat
	} else {
		ownsTurn = s.engine.CurrentPlayerIndex() == seat
	}
	if !ownsTurn {
		s.mu.Unlock()
		c.SendMessage(protocol.NewInvalidMoveMessage(apperrors.ErrNotYourTurn.Code, apperrors.ErrNotYourTurn.Message))
		return
	}

	var moveErr error
	switch msg.Type {
	case protocol.MsgPlayCard:
		payload, err := protocol.DecodePayload[protocol.PlayCardPayload](msg)
		if err != nil {
			moveErr = err
		} else {
			moveErr = s.engine.PlayCard(payload.Card)
		}
	case protocol.MsgDrawCard:
		moveErr = s.engine.DrawCard()
	case protocol.MsgChooseSuit:
		payload, err := protocol.DecodePayload[protocol.ChooseSuitPayload](msg)
		if err != nil {
			moveErr = err
		} else {
			moveErr = s.engine.ChooseSuit(payload.Suit)
		}
	}

	if moveErr != nil {
		s.mu.Unlock()
		c.SendMessage(invalidMoveMessage(moveErr))
		return
	}

	snap := s.engine.Snapshot()
	over := s.engine.IsOver()
	var winner string
	if w := s.engine.Winner(); w != nil {
		winner = w.Name
	}
	s.mu.Unlock()

	s.broadcast(protocol.MustNewMessage(protocol.MsgStateUpdate,
		protocol.StateUpdatePayload{State: snap}))

	if over {
		s.finishMatch(winner, "")
		return
	}
	if s.hostAI != nil {
		go s.runAutomatedTurns()
	}
}

// runAutomatedTurns lets the automated host seat act until control moves
// back to a remote player or the match ends.
func (s *Server) runAutomatedTurns() {
	const hostSeat = 0
	delay := s.cfg.Game.AIMoveDelayDuration()

	for {
		s.mu.Lock()
		if !s.started || s.over {
			s.mu.Unlock()
			return
		}

		hostActs := s.engine.PendingSuitChooser() == hostSeat ||
			(s.engine.Phase() != game.PhasePendingSuit && s.engine.CurrentPlayerIndex() == hostSeat)
		if !hostActs {
			s.mu.Unlock()
			return
		}

		intent, err := s.hostAI.NextIntent(context.Background(), s.engine)
		if err == nil {
			err = s.engine.Apply(intent)
		}
		if err != nil {
			s.mu.Unlock()
			log.Printf("host AI move failed: %v", err)
			return
		}

		snap := s.engine.Snapshot()
		over := s.engine.IsOver()
		var winner string
		if w := s.engine.Winner(); w != nil {
			winner = w.Name
		}
		s.mu.Unlock()

		s.broadcast(protocol.MustNewMessage(protocol.MsgStateUpdate,
			protocol.StateUpdatePayload{State: snap}))

		if over {
			s.finishMatch(winner, "")
			return
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}
}

// finishMatch 广播结束并记录战绩
func (s *Server) finishMatch(winner, reason string) {
	s.mu.Lock()
	if s.over {
		s.mu.Unlock()
		return
	}
	s.over = true
	var losers []string
	for _, name := range s.order {
		if name != winner {
			losers = append(losers, name)
		}
	}
	s.mu.Unlock()

	log.Printf("🏁 Match over, winner: %q %s", winner, reason)
	s.broadcast(protocol.MustNewMessage(protocol.MsgMatchOver,
		protocol.MatchOverPayload{Winner: winner, Reason: reason}))

	if s.store != nil && winner != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordResult(ctx, winner, losers); err != nil {
				log.Printf("record result: %v", err)
			}
		}()
	}
}

// handleDisconnect 处理断开的连接
func (s *Server) handleDisconnect(c *Conn) {
	s.unregisterConn(c)

	name := c.Name()
	if name == "" {
		return
	}

	s.mu.Lock()
	delete(s.players, name)
	started := s.started
	if !started {
		// 对局未开始时释放座位
		for i, n := range s.order {
			if n == name {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	log.Printf("❌ Player %q disconnected", name)
	s.broadcast(protocol.MustNewMessage(protocol.MsgPlayerLeft,
		protocol.PlayerLeftPayload{Name: name}))

	// 对局进行中有人掉线则立即终止，无胜者
	if started {
		s.finishMatch("", "player disconnected")
	}
}

// seatOf 返回玩家座位号，未注册返回 -1。调用方需持有 s.mu。
func (s *Server) seatOf(name string) int {
	for i, n := range s.order {
		if n == name {
			return i
		}
	}
	return -1
}

// invalidMoveMessage 将引擎错误映射为协议错误
func invalidMoveMessage(err error) *protocol.Message {
	code := protocol.ErrCodeIllegalMove
	switch {
	case errors.Is(err, game.ErrSuitChoicePending):
		code = protocol.ErrCodeSuitPending
	case errors.Is(err, game.ErrMatchOver):
		code = protocol.ErrCodeMatchNotLive
	}
	return protocol.NewInvalidMoveMessage(code, err.Error())
}
