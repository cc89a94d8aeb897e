//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// MockServer 实现 types.ServerInterface 的 mock
type MockServer struct {
	mock.Mock
}

func (m *MockServer) IsMaintenanceMode() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockServer) GetOnlineCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockServer) Broadcast(msg *protocol.Message) {
	m.Called(msg)
}
