package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis key 前缀
const sessionKeyPrefix = "anticheat:session:"

// RedisStore 基于 Redis 的会话存储，多进程部署时共享会话。过期交给 Redis TTL 处理。
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

// Create 创建会话，值为开局时间（毫秒）
func (s *RedisStore) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	start := s.now().UnixMilli()
	if err := s.client.Set(ctx, sessionKeyPrefix+id, start, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("保存会话失败: %w", err)
	}
	return id, nil
}

// StartTime 获取会话开局时间
func (s *RedisStore) StartTime(ctx context.Context, id string) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}

	millis, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("会话数据损坏: %w", err)
	}
	return time.UnixMilli(millis), true, nil
}

// Sweep 由 Redis TTL 负责过期，无需处理
func (s *RedisStore) Sweep(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}
