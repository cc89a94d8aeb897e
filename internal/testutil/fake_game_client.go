//go:build !production

package testutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// FakeGameClient 终端界面使用的连接替身，只记录发出的操作
type FakeGameClient struct {
	mu        sync.Mutex
	calls     []string
	connected bool
	inbox     chan *protocol.Message
	ConnErr   error
	SendErr   error
}

// NewFakeGameClient 创建替身
func NewFakeGameClient() *FakeGameClient {
	return &FakeGameClient{inbox: make(chan *protocol.Message, 16)}
}

func (f *FakeGameClient) record(format string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.SendErr
}

// Calls 返回已记录的操作
func (f *FakeGameClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// LastCall 最近一次操作，没有时返回空
func (f *FakeGameClient) LastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

// Push 模拟一条服务端消息
func (f *FakeGameClient) Push(msg *protocol.Message) {
	f.inbox <- msg
}

func (f *FakeGameClient) Connect() error {
	if f.ConnErr != nil {
		return f.ConnErr
	}
	f.mu.Lock()
	f.connected = true
	f.mu.Unlock()
	return nil
}

func (f *FakeGameClient) Receive() (*protocol.Message, error) {
	msg, ok := <-f.inbox
	if !ok {
		return nil, errors.New("connection closed")
	}
	return msg, nil
}

func (f *FakeGameClient) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *FakeGameClient) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connected {
		f.connected = false
		close(f.inbox)
	}
}

func (f *FakeGameClient) StartGame() error { return f.record("start_game") }

func (f *FakeGameClient) SubmitScore(sessionID, name string, score, lines int, hardMode bool) error {
	return f.record("submit_score %s %s %d %d %v", sessionID, name, score, lines, hardMode)
}

func (f *FakeGameClient) Sync() error { return f.record("sync") }

func (f *FakeGameClient) CreateRoom(name string) error {
	return f.record("create_room %s", name)
}

func (f *FakeGameClient) JoinRoom(name, roomCode string) error {
	return f.record("join_room %s %s", name, roomCode)
}

func (f *FakeGameClient) LeaveRoom() error { return f.record("leave_room") }

func (f *FakeGameClient) StartMultiplayer(hardMode bool) error {
	return f.record("start_multiplayer %v", hardMode)
}

func (f *FakeGameClient) LineClear(lines, score int) error {
	return f.record("line_clear %d %d", lines, score)
}

func (f *FakeGameClient) Eliminated(score int) error {
	return f.record("player_eliminated %d", score)
}

func (f *FakeGameClient) UpdateScore(score, lines int) error {
	return f.record("update_score %d %d", score, lines)
}
