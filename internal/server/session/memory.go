package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore 进程内会话存储，进程重启后会话失效
type MemoryStore struct {
	ttl      time.Duration
	sessions map[string]time.Time // sessionID -> 开局时间
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Create 创建会话
func (s *MemoryStore) Create(_ context.Context) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = s.now()
	return id, nil
}

// StartTime 获取会话开局时间
func (s *MemoryStore) StartTime(_ context.Context, id string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, ok := s.sessions[id]
	if !ok || s.now().Sub(start) > s.ttl {
		return time.Time{}, false, nil
	}
	return start, true, nil
}

// Sweep 清理过期会话
func (s *MemoryStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, start := range s.sessions {
		if now.Sub(start) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len 返回当前会话数量
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
