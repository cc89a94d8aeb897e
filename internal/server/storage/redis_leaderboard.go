package storage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	leaderboardKeyPrefix = "leaderboard:"
	namesKeySuffix       = ":names"
	createdKeySuffix     = ":created"
)

// RedisLeaderboard 基于 Redis ZSET 的排行榜
//
//	leaderboard:<mode>          ZSET  name_key → 最高分
//	leaderboard:<mode>:names    HASH  name_key → 首次记录的显示名
//	leaderboard:<mode>:created  HASH  name_key → 首次记录时间（毫秒）
type RedisLeaderboard struct {
	redis *redis.Client
	now   func() time.Time
}

// NewRedisLeaderboard 创建 Redis 排行榜
func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{redis: client, now: time.Now}
}

func scoresKey(mode Mode) string  { return leaderboardKeyPrefix + string(mode) }
func namesKey(mode Mode) string   { return scoresKey(mode) + namesKeySuffix }
func createdKey(mode Mode) string { return scoresKey(mode) + createdKeySuffix }

// Upsert 写入成绩，只保留同名（不区分大小写）的最高分
func (l *RedisLeaderboard) Upsert(ctx context.Context, name string, score int, mode Mode) error {
	if err := checkUpsert(name, mode); err != nil {
		return err
	}

	key := nameKey(name)
	created := l.now().UnixMilli()

	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAddGT(ctx, scoresKey(mode), redis.Z{Score: float64(score), Member: key})
		pipe.HSetNX(ctx, namesKey(mode), key, name)
		pipe.HSetNX(ctx, createdKey(mode), key, created)
		return nil
	})
	if err != nil {
		return fmt.Errorf("写入排行榜失败: %w", err)
	}
	return nil
}

// Query 读取整个分区，按分数降序、首次记录时间升序排列
func (l *RedisLeaderboard) Query(ctx context.Context, mode Mode) ([]Entry, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	members, err := l.redis.ZRevRangeWithScores(ctx, scoresKey(mode), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("读取排行榜失败: %w", err)
	}
	if len(members) == 0 {
		return []Entry{}, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = m.Member.(string)
	}

	var namesCmd, createdCmd *redis.SliceCmd
	_, err = l.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		namesCmd = pipe.HMGet(ctx, namesKey(mode), keys...)
		createdCmd = pipe.HMGet(ctx, createdKey(mode), keys...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("读取排行榜详情失败: %w", err)
	}

	type row struct {
		entry   Entry
		created int64
	}
	names := namesCmd.Val()
	createdAt := createdCmd.Val()
	rows := make([]row, len(members))
	for i, m := range members {
		r := row{entry: Entry{Name: keys[i], Score: int(m.Score)}}
		if s, ok := names[i].(string); ok && s != "" {
			r.entry.Name = s
		}
		if s, ok := createdAt[i].(string); ok {
			r.created, _ = strconv.ParseInt(s, 10, 64)
		}
		rows[i] = r
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].entry.Score != rows[j].entry.Score {
			return rows[i].entry.Score > rows[j].entry.Score
		}
		return rows[i].created < rows[j].created
	})

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.entry
	}
	return entries, nil
}

// Ping 检查 Redis 连通性
func (l *RedisLeaderboard) Ping(ctx context.Context) error {
	return l.redis.Ping(ctx).Err()
}

// Close 关闭 Redis 连接
func (l *RedisLeaderboard) Close() error {
	return l.redis.Close()
}
