package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/MJDaws0n/Tetris/internal/anticheat"
	"github.com/MJDaws0n/Tetris/internal/config"
	"github.com/MJDaws0n/Tetris/internal/game/room"
	"github.com/MJDaws0n/Tetris/internal/server/handler"
	"github.com/MJDaws0n/Tetris/internal/server/session"
	"github.com/MJDaws0n/Tetris/internal/server/storage"
)

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	redis       *redis.Client // 两个后端都不用 Redis 时为 nil
	leaderboard storage.Leaderboard
	sessions    session.Store
	roomManager *room.RoomManager
	clients     map[string]*Client
	clientsMu   sync.RWMutex
	handler     *handler.Handler
	upgrader    websocket.Upgrader
	httpServer  *http.Server

	// 安全组件
	rateLimiter    *RateLimiter
	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter
	ipFilter       *IPFilter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	// 后台任务（清理、监控）随 Shutdown 停止
	cancel context.CancelFunc
}

// NewServer 创建服务器实例，按配置选择排行榜与会话存储后端
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var rdb *redis.Client
	if cfg.Leaderboard.Backend == config.BackendRedis || cfg.AntiCheat.SessionBackend == config.BackendRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis 连接失败: %w", err)
		}
	}

	leaderboard, err := openLeaderboard(ctx, cfg, rdb)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}

	var sessions session.Store
	switch cfg.AntiCheat.SessionBackend {
	case config.BackendRedis:
		sessions = session.NewRedisStore(rdb, cfg.AntiCheat.SessionTTLDuration())
	default:
		sessions = session.NewMemoryStore(cfg.AntiCheat.SessionTTLDuration())
	}

	return New(cfg, Deps{Redis: rdb, Leaderboard: leaderboard, Sessions: sessions}), nil
}

// openLeaderboard 根据配置打开排行榜后端
func openLeaderboard(ctx context.Context, cfg *config.Config, rdb *redis.Client) (storage.Leaderboard, error) {
	switch cfg.Leaderboard.Backend {
	case config.BackendRedis:
		return storage.NewRedisLeaderboard(rdb), nil
	case config.BackendSQLite:
		lb, err := storage.OpenSQLite(ctx, cfg.Leaderboard.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("打开排行榜数据库失败: %w", err)
		}
		return lb, nil
	default:
		return nil, fmt.Errorf("未知的排行榜后端: %q", cfg.Leaderboard.Backend)
	}
}

// Deps 已就绪的外部依赖
type Deps struct {
	Redis       *redis.Client
	Leaderboard storage.Leaderboard
	Sessions    session.Store
}

// New 用给定依赖组装服务器
func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		config:      cfg,
		redis:       deps.Redis,
		leaderboard: deps.Leaderboard,
		sessions:    deps.Sessions,
		clients:     make(map[string]*Client),
		// 初始化安全组件
		rateLimiter: NewRateLimiter(
			cfg.Security.RateLimit.MaxPerSecond,
			cfg.Security.RateLimit.MaxPerMinute,
			cfg.Security.RateLimit.BanDurationTime(),
		),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond),
		ipFilter:       NewIPFilter(),
		// 初始化连接控制
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}

	s.roomManager = room.NewRoomManager(cfg.Game.EmptyRoomTTLDuration())
	s.roomManager.RegisterSweeper("anticheat_sessions", s.sessions.Sweep)
	s.roomManager.RegisterSweeper("rate_limits", s.rateLimiter.Sweep)

	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:         s,
		RoomManager:    s.roomManager,
		Leaderboard:    s.leaderboard,
		Validator:      anticheat.NewValidator(s.sessions),
		PersistTimeout: cfg.Game.PersistTimeoutDuration(),
	})

	log.Printf("🔒 安全配置: 连接限制=%d/s, 消息限制=%d/s, 最大连接数=%d, 排行榜=%s, 会话=%s",
		cfg.Security.RateLimit.MaxPerSecond, cfg.Security.MessageLimit.MaxPerSecond, cfg.Server.MaxConnections,
		cfg.Leaderboard.Backend, cfg.AntiCheat.SessionBackend)

	return s
}

// Routes 返回 HTTP 路由
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/leaderboard", s.handleLeaderboardHealth)
	return mux
}

// Start 启动服务器，阻塞直到服务器关闭
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.roomManager.StartCleanup(ctx, s.config.Game.CleanupIntervalDuration())
	go s.monitorStats(ctx)

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RoomManager 返回房间注册表
func (s *Server) RoomManager() *room.RoomManager {
	return s.roomManager
}
