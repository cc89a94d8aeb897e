package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// Mode 排行榜分区
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeHard   Mode = "hard"
)

// ModeFor 根据是否困难模式选择分区
func ModeFor(hard bool) Mode {
	if hard {
		return ModeHard
	}
	return ModeNormal
}

// Valid 是否为已知分区
func (m Mode) Valid() bool {
	return m == ModeNormal || m == ModeHard
}

// Entry 排行榜条目
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

var (
	ErrInvalidMode = errors.New("unknown leaderboard mode")
	ErrEmptyName   = errors.New("leaderboard name is empty")
)

// Leaderboard 排行榜存储。
// 同一分区内名字大小写不敏感，只保留最高分；
// 查询结果按分数降序，同分时最早记录在前。
type Leaderboard interface {
	Upsert(ctx context.Context, name string, score int, mode Mode) error
	Query(ctx context.Context, mode Mode) ([]Entry, error)
	Ping(ctx context.Context) error
	Close() error
}

// nameKey 名字的身份键
func nameKey(name string) string {
	return strings.ToLower(name)
}

func checkUpsert(name string, mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if name == "" {
		return ErrEmptyName
	}
	return nil
}

// Snapshot 读取两个分区，组装推送给客户端的排行榜
func Snapshot(ctx context.Context, lb Leaderboard) (protocol.LeaderboardPayload, error) {
	normal, err := lb.Query(ctx, ModeNormal)
	if err != nil {
		return protocol.LeaderboardPayload{}, fmt.Errorf("查询普通排行榜失败: %w", err)
	}
	hard, err := lb.Query(ctx, ModeHard)
	if err != nil {
		return protocol.LeaderboardPayload{}, fmt.Errorf("查询困难排行榜失败: %w", err)
	}

	payload := protocol.LeaderboardPayload{
		Names:      make([]string, 0, len(normal)),
		Scores:     make([]int, 0, len(normal)),
		NamesHard:  make([]string, 0, len(hard)),
		ScoresHard: make([]int, 0, len(hard)),
	}
	for _, e := range normal {
		payload.Names = append(payload.Names, e.Name)
		payload.Scores = append(payload.Scores, e.Score)
	}
	for _, e := range hard {
		payload.NamesHard = append(payload.NamesHard, e.Name)
		payload.ScoresHard = append(payload.ScoresHard, e.Score)
	}
	return payload, nil
}
