// Package session 保存单人模式的防作弊会话：会话 ID → 开局时间
package session

import (
	"context"
	"time"
)

// DefaultTTL 会话有效期
const DefaultTTL = 24 * time.Hour

// Store 防作弊会话存储
type Store interface {
	// Create 创建会话并返回不透明 ID
	Create(ctx context.Context) (string, error)
	// StartTime 返回会话开局时间，会话不存在或已过期时 ok 为 false
	StartTime(ctx context.Context, id string) (start time.Time, ok bool, err error)
	// Sweep 清理 now 之前已过期的会话，返回清理数量
	Sweep(ctx context.Context, now time.Time) (int, error)
}
