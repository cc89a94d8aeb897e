package model

import (
	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// MenuItems 主菜单，顺序与 MenuAction 一致
var MenuItems = []string{
	"1. 创建房间",
	"2. 加入房间",
	"3. 单人练习",
	"4. 排行榜",
	"5. 退出",
}

// LobbyModel 主菜单、排行榜与输入名字/房间号的状态
type LobbyModel struct {
	selectedIndex int
	pendingAction MenuAction
	playerName    string

	leaderboard    protocol.LeaderboardPayload
	hasLeaderboard bool
}

// NewLobbyModel creates a new LobbyModel.
func NewLobbyModel() *LobbyModel {
	return &LobbyModel{}
}

func (m *LobbyModel) SelectedIndex() int { return m.selectedIndex }

// MoveSelection 上下移动菜单光标，首尾循环
func (m *LobbyModel) MoveSelection(delta int) {
	n := len(MenuItems)
	m.selectedIndex = ((m.selectedIndex+delta)%n + n) % n
}

// Select 直接选中某一项，越界时忽略
func (m *LobbyModel) Select(index int) bool {
	if index < 0 || index >= len(MenuItems) {
		return false
	}
	m.selectedIndex = index
	return true
}

func (m *LobbyModel) SelectedAction() MenuAction { return MenuAction(m.selectedIndex) }

func (m *LobbyModel) PendingAction() MenuAction                { return m.pendingAction }
func (m *LobbyModel) SetPendingAction(a MenuAction)            { m.pendingAction = a }
func (m *LobbyModel) PlayerName() string                       { return m.playerName }
func (m *LobbyModel) SetPlayerName(name string)                { m.playerName = name }
func (m *LobbyModel) HasLeaderboard() bool                     { return m.hasLeaderboard }
func (m *LobbyModel) Leaderboard() protocol.LeaderboardPayload { return m.leaderboard }

// SetLeaderboard 保存最新的排行榜快照
func (m *LobbyModel) SetLeaderboard(lb protocol.LeaderboardPayload) {
	m.leaderboard = lb
	m.hasLeaderboard = true
}
