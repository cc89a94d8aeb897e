//go:build !production

package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockSessionStore 实现 session.Store 的 mock
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) StartTime(ctx context.Context, id string) (time.Time, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}

func (m *MockSessionStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
