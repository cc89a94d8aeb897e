// Package model defines the core types and interfaces for the UI.
package model

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// GamePhase represents the current screen.
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseMenu
	PhaseEnterName
	PhaseEnterCode
	PhaseLeaderboard
	PhaseSolo
	PhaseRoom
	PhasePlaying
	PhaseGameOver
)

// MenuAction 主菜单选项
type MenuAction int

const (
	ActionCreateRoom MenuAction = iota
	ActionJoinRoom
	ActionSoloPractice
	ActionLeaderboard
	ActionQuit
)

// NotificationType represents types of system notifications.
type NotificationType int

const (
	NotifyError            NotificationType = iota // 错误信息（临时）
	NotifyReconnecting                             // 重连中（持久）
	NotifyReconnectSuccess                         // 重连成功（临时）
	NotifyMaintenance                              // 维护通知（持久）
)

// SystemNotification represents a system notification.
type SystemNotification struct {
	Message   string
	Type      NotificationType
	Temporary bool // 是否为临时通知（3秒后自动消失）
}

// --- Tea Messages ---

// ServerMessage wraps a protocol message for tea.Msg.
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates a connection error.
type ConnectionErrorMsg struct {
	Err error
}

// ReconnectingMsg indicates reconnection in progress.
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg indicates successful reconnection.
type ReconnectSuccessMsg struct{}

// DisconnectedMsg 连接彻底断开，不再重连
type DisconnectedMsg struct{}

// ClearReconnectMsg clears reconnection message.
type ClearReconnectMsg struct{}

// ClearSystemNotificationMsg clears temporary notifications.
type ClearSystemNotificationMsg struct{}

// --- Interfaces ---

// GameClient 界面需要的连接操作，由 network/client.Client 实现
type GameClient interface {
	Connect() error
	Receive() (*protocol.Message, error)
	IsConnected() bool
	Close()

	StartGame() error
	SubmitScore(sessionID, name string, score, lines int, hardMode bool) error
	Sync() error
	CreateRoom(name string) error
	JoinRoom(name, roomCode string) error
	LeaveRoom() error
	StartMultiplayer(hardMode bool) error
	LineClear(lines, score int) error
	Eliminated(score int) error
	UpdateScore(score, lines int) error
}

// Model is the interface shared by the handler, input and view packages.
type Model interface {
	Phase() GamePhase
	SetPhase(GamePhase)
	Client() GameClient
	Input() *textinput.Model
	Lobby() *LobbyModel
	Game() *GameModel
	Solo() *SoloModel
	Width() int
	Height() int

	SetNotification(notifyType NotificationType, message string, temporary bool)
	ClearNotification(notifyType NotificationType)
	GetCurrentNotification() *SystemNotification

	EnterMenu()
	Error() string
	SetError(string)
}
