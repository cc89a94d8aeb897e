//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MJDaws0n/Tetris/internal/server/storage"
)

// MockLeaderboard 实现 storage.Leaderboard 的 mock
type MockLeaderboard struct {
	mock.Mock
}

func (m *MockLeaderboard) Upsert(ctx context.Context, name string, score int, mode storage.Mode) error {
	args := m.Called(ctx, name, score, mode)
	return args.Error(0)
}

func (m *MockLeaderboard) Query(ctx context.Context, mode storage.Mode) ([]storage.Entry, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Entry), args.Error(1)
}

func (m *MockLeaderboard) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLeaderboard) Close() error {
	args := m.Called()
	return args.Error(0)
}
