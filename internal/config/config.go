package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 3000
	defaultMaxConnections = 10000
	defaultRedisAddr      = "localhost:6379"

	defaultLeaderboardBackend = BackendRedis
	defaultSQLitePath         = "data/scores.db"
	defaultSessionBackend     = BackendMemory
	defaultSessionTTL         = 24 * 60 // 分钟

	defaultEmptyRoomTTL          = 120 // 分钟
	defaultCleanupInterval       = 60  // 分钟
	defaultPersistTimeout        = 5   // 秒
	defaultShutdownTimeout       = 10  // 分钟
	defaultShutdownCheckInterval = 5   // 秒

	defaultRateMaxPerSecond    = 10
	defaultRateMaxPerMinute    = 60
	defaultRateBanDuration     = 60 // 秒
	defaultMessageMaxPerSecond = 30
)

// 存储后端
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config 服务端配置
type Config struct {
	Server      ServerConfig      `yaml:"server" envPrefix:"SERVER_"`
	Redis       RedisConfig       `yaml:"redis" envPrefix:"REDIS_"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard" envPrefix:"LEADERBOARD_"`
	AntiCheat   AntiCheatConfig   `yaml:"anticheat" envPrefix:"ANTICHEAT_"`
	Game        GameConfig        `yaml:"game" envPrefix:"GAME_"`
	Security    SecurityConfig    `yaml:"security" envPrefix:"SECURITY_"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host" env:"HOST"`
	Port           int    `yaml:"port" env:"PORT"`
	MaxConnections int    `yaml:"max_connections" env:"MAX_CONNECTIONS"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

// LeaderboardConfig 排行榜存储配置
type LeaderboardConfig struct {
	Backend    string `yaml:"backend" env:"BACKEND"`         // redis / sqlite
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"` // sqlite 数据库文件
}

// AntiCheatConfig 单人模式防作弊配置
type AntiCheatConfig struct {
	SessionBackend string `yaml:"session_backend" env:"SESSION_BACKEND"` // memory / redis
	SessionTTL     int    `yaml:"session_ttl" env:"SESSION_TTL"`         // 会话有效期（分钟）
}

// GameConfig 游戏配置
type GameConfig struct {
	EmptyRoomTTL          int `yaml:"empty_room_ttl" env:"EMPTY_ROOM_TTL"`                   // 空房间保留时长（分钟）
	CleanupInterval       int `yaml:"cleanup_interval" env:"CLEANUP_INTERVAL"`               // 清理周期（分钟）
	PersistTimeout        int `yaml:"persist_timeout" env:"PERSIST_TIMEOUT"`                 // 排行榜写入超时（秒）
	ShutdownTimeout       int `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`               // 优雅关闭等待时长（分钟）
	ShutdownCheckInterval int `yaml:"shutdown_check_interval" env:"SHUTDOWN_CHECK_INTERVAL"` // 关闭检查间隔（秒）
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimit      RateLimitConfig    `yaml:"rate_limit" envPrefix:"RATE_LIMIT_"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit" envPrefix:"MESSAGE_LIMIT_"`
}

// RateLimitConfig 连接速率限制
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second" env:"MAX_PER_SECOND"`
	MaxPerMinute int `yaml:"max_per_minute" env:"MAX_PER_MINUTE"`
	BanDuration  int `yaml:"ban_duration" env:"BAN_DURATION"` // 封禁时长（秒）
}

// MessageLimitConfig 消息速率限制
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second" env:"MAX_PER_SECOND"`
}

// SessionTTLDuration 返回防作弊会话有效期
func (c *AntiCheatConfig) SessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}

// EmptyRoomTTLDuration 返回空房间保留时长
func (c *GameConfig) EmptyRoomTTLDuration() time.Duration {
	return time.Duration(c.EmptyRoomTTL) * time.Minute
}

// CleanupIntervalDuration 返回清理周期
func (c *GameConfig) CleanupIntervalDuration() time.Duration {
	return time.Duration(c.CleanupInterval) * time.Minute
}

// PersistTimeoutDuration 返回排行榜写入超时
func (c *GameConfig) PersistTimeoutDuration() time.Duration {
	return time.Duration(c.PersistTimeout) * time.Second
}

// ShutdownTimeoutDuration 返回优雅关闭等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Minute
}

// ShutdownCheckIntervalDuration 返回关闭检查间隔
func (c *GameConfig) ShutdownCheckIntervalDuration() time.Duration {
	return time.Duration(c.ShutdownCheckInterval) * time.Second
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// Load 加载配置文件，环境变量优先于文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置（仍会读取环境变量）
func Default() *Config {
	cfg := &Config{}
	_ = env.Parse(cfg)
	cfg.applyDefaults()
	return cfg
}

// applyDefaults 设置默认值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = defaultMaxConnections
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Leaderboard.Backend == "" {
		c.Leaderboard.Backend = defaultLeaderboardBackend
	}
	if c.Leaderboard.SQLitePath == "" {
		c.Leaderboard.SQLitePath = defaultSQLitePath
	}
	if c.AntiCheat.SessionBackend == "" {
		c.AntiCheat.SessionBackend = defaultSessionBackend
	}
	if c.AntiCheat.SessionTTL == 0 {
		c.AntiCheat.SessionTTL = defaultSessionTTL
	}
	if c.Game.EmptyRoomTTL == 0 {
		c.Game.EmptyRoomTTL = defaultEmptyRoomTTL
	}
	if c.Game.CleanupInterval == 0 {
		c.Game.CleanupInterval = defaultCleanupInterval
	}
	if c.Game.PersistTimeout == 0 {
		c.Game.PersistTimeout = defaultPersistTimeout
	}
	if c.Game.ShutdownTimeout == 0 {
		c.Game.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Game.ShutdownCheckInterval == 0 {
		c.Game.ShutdownCheckInterval = defaultShutdownCheckInterval
	}
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"*"}
	}
	if c.Security.RateLimit.MaxPerSecond == 0 {
		c.Security.RateLimit.MaxPerSecond = defaultRateMaxPerSecond
	}
	if c.Security.RateLimit.MaxPerMinute == 0 {
		c.Security.RateLimit.MaxPerMinute = defaultRateMaxPerMinute
	}
	if c.Security.RateLimit.BanDuration == 0 {
		c.Security.RateLimit.BanDuration = defaultRateBanDuration
	}
	if c.Security.MessageLimit.MaxPerSecond == 0 {
		c.Security.MessageLimit.MaxPerSecond = defaultMessageMaxPerSecond
	}
}
