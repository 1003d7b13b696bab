package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/hezgame/hez/internal/config"
	"github.com/hezgame/hez/internal/game"
	"github.com/hezgame/hez/internal/server/storage"
)

const maxPlayers = 2

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server WebSocket 服务器
//
// Holds the only authoritative Engine. Every mutating move runs under mu
// (validate, mutate, snapshot); broadcasts go out after the snapshot has
// been copied.
type Server struct {
	cfg   *config.Config
	redis *redis.Client
	store *storage.Store // nil 表示禁用战绩统计

	httpServer *http.Server

	mu      sync.Mutex
	conns   map[string]*Conn // 连接 ID -> 连接
	players map[string]*Conn // 玩家名 -> 连接（托管座位为 nil）
	order   []string         // 座位顺序
	started bool
	over    bool
	engine  *game.Engine
	hostAI  *game.AIPolicy
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		conns:   make(map[string]*Conn),
		players: make(map[string]*Conn),
	}

	// 战绩统计为可选项
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		s.redis = rdb
		s.store = storage.NewStore(rdb)
	}

	// 托管座位：本机第一个玩家由 AI 驱动
	if cfg.Session.HostName != "" {
		s.players[cfg.Session.HostName] = nil
		s.order = append(s.order, cfg.Session.HostName)
		s.hostAI = game.NewAIPolicy()
		log.Printf("🤖 Host seat %q is automated", cfg.Session.HostName)
	}

	return s, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	log.Printf("🚀 Server listening on ws://%s/ws (game key: %s)", addr, s.cfg.Session.Key)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}

	s.mu.Lock()
	conns := make([]*Conn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := NewConn(s, ws)
	s.registerConn(conn)
	log.Printf("✅ Connection %s from %s", conn.ID, r.RemoteAddr)

	go conn.ReadPump()
	go conn.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerConn 注册连接
func (s *Server) registerConn(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c.ID] = c
}

// unregisterConn 注销连接
func (s *Server) unregisterConn(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c.ID)
}

// GameKey 返回会话密钥
func (s *Server) GameKey() string {
	return s.cfg.Session.Key
}
