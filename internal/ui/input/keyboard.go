// Package input handles keyboard input processing.
package input

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MJDaws0n/Tetris/internal/logger"
	"github.com/MJDaws0n/Tetris/internal/ui/common"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

const errorTTL = 3 * time.Second

// maxNameLength 与服务端的名字长度限制一致
const maxNameLength = 20

// maxCodeInput 房间号输入上限，留出粘贴时前后的空白，由 NormalizeRoomCode 去除
const maxCodeInput = 16

// dropPoints 硬降一次的得分，只同步分数不占领地
const dropPoints = 10

// send 执行一次发送，失败时显示错误
func send(m model.Model, op func() error) tea.Cmd {
	if err := op(); err != nil {
		logger.LogError("发送失败: %v", err)
		return notify(m, fmt.Sprintf("发送失败: %v", err))
	}
	return nil
}

func notify(m model.Model, text string) tea.Cmd {
	m.SetNotification(model.NotifyError, "⚠️ "+text, true)
	return tea.Tick(errorTTL, func(time.Time) tea.Msg {
		return model.ClearSystemNotificationMsg{}
	})
}

// HandleKeyPress handles keyboard input and returns whether it was handled.
func HandleKeyPress(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Client().Close()
		return true, tea.Quit
	}

	switch m.Phase() {
	case model.PhaseConnecting:
		if msg.Type == tea.KeyEsc {
			return true, tea.Quit
		}
		return true, nil
	case model.PhaseMenu:
		return handleMenuKeys(m, msg)
	case model.PhaseEnterName:
		return handleNameKeys(m, msg)
	case model.PhaseEnterCode:
		return handleCodeKeys(m, msg)
	case model.PhaseLeaderboard:
		return handleLeaderboardKeys(m, msg)
	case model.PhaseSolo:
		return handleSoloKeys(m, msg)
	case model.PhaseRoom:
		return handleRoomKeys(m, msg)
	case model.PhasePlaying:
		return handlePlayingKeys(m, msg)
	case model.PhaseGameOver:
		return handleGameOverKeys(m, msg)
	}
	return false, nil
}

// --- 主菜单 ---

func handleMenuKeys(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	lobby := m.Lobby()

	switch msg.String() {
	case "up", "k":
		lobby.MoveSelection(-1)
		return true, nil
	case "down", "j":
		lobby.MoveSelection(1)
		return true, nil
	case "1", "2", "3", "4", "5":
		lobby.Select(int(msg.Runes[0] - '1'))
		return true, activate(m, lobby.SelectedAction())
	case "enter":
		return true, activate(m, lobby.SelectedAction())
	case "r":
		return true, send(m, m.Client().Sync)
	case "q", "esc":
		m.Client().Close()
		return true, tea.Quit
	}
	return true, nil
}

func activate(m model.Model, action model.MenuAction) tea.Cmd {
	switch action {
	case model.ActionCreateRoom, model.ActionJoinRoom, model.ActionSoloPractice:
		m.Lobby().SetPendingAction(action)
		m.SetPhase(model.PhaseEnterName)
		name := m.Lobby().PlayerName()
		if name == "" {
			name = common.SuggestName()
		}
		prompt(m, "输入你的名字 (1-20 字符)", name, maxNameLength)
		return nil
	case model.ActionLeaderboard:
		m.SetPhase(model.PhaseLeaderboard)
		return send(m, m.Client().Sync)
	case model.ActionQuit:
		m.Client().Close()
		return tea.Quit
	}
	return nil
}

// prompt 复用共享输入框
func prompt(m model.Model, placeholder, value string, limit int) {
	in := m.Input()
	in.Reset()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
}

// --- 输入名字 / 房间号 ---

func handleNameKeys(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.EnterMenu()
		return true, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.Input().Value())
		if name == "" {
			return true, notify(m, "名字不能为空")
		}
		m.Lobby().SetPlayerName(name)

		switch m.Lobby().PendingAction() {
		case model.ActionJoinRoom:
			m.SetPhase(model.PhaseEnterCode)
			prompt(m, "输入房间号", "", maxCodeInput)
			return true, nil
		case model.ActionSoloPractice:
			return true, send(m, m.Client().StartGame)
		}
		return true, send(m, func() error { return m.Client().CreateRoom(name) })
	}
	return false, nil
}

func handleCodeKeys(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.EnterMenu()
		return true, nil
	case tea.KeyEnter:
		code := common.NormalizeRoomCode(m.Input().Value())
		if code == "" {
			return true, notify(m, "房间号不能为空")
		}
		name := m.Lobby().PlayerName()
		return true, send(m, func() error { return m.Client().JoinRoom(name, code) })
	}
	return false, nil
}

// --- 排行榜 ---

func handleLeaderboardKeys(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "r":
		return true, send(m, m.Client().Sync)
	case "q", "esc", "enter":
		m.EnterMenu()
	}
	return true, nil
}

// --- 单人练习 ---

func handleSoloKeys(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	solo := m.Solo()

	switch key := msg.String(); key {
	case "1", "2", "3", "4":
		if solo.Submitted() {
			return true, nil
		}
		lines := int(key[0] - '0')
		solo.RecordLineClear(lines, common.LineClearScore(lines))
		return true, nil
	case "h":
		if !solo.ToggleHardMode() {
			return true, notify(m, "开始消行后不能切换模式")
		}
		return true, nil
	case "enter":
		if solo.Submitted() {
			return true, nil
		}
		solo.MarkSubmitted()
		name := m.Lobby().PlayerName()
		sessionID, score, lines, hard := solo.SessionID(), solo.Score(), solo.Lines(), solo.HardMode()
		m.SetPhase(model.PhaseLeaderboard)
		return true, send(m, func() error {
			return m.Client().SubmitScore(sessionID, name, score, lines, hard)
		})
	case "q", "esc":
		m.EnterMenu()
	}
	return true, nil
}

// --- 房间等待 ---

func handleRoomKeys(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	game := m.Game()

	switch msg.String() {
	case "s":
		if !game.IsHost() {
			return true, notify(m, "只有房主可以开始对战")
		}
		hard := game.HardMode()
		return true, send(m, func() error { return m.Client().StartMultiplayer(hard) })
	case "h":
		if !game.IsHost() {
			return true, notify(m, "只有房主可以切换模式")
		}
		game.ToggleHardMode()
		return true, nil
	case "q", "esc":
		return true, leave(m)
	}
	return true, nil
}

func leave(m model.Model) tea.Cmd {
	cmd := send(m, m.Client().LeaveRoom)
	m.EnterMenu()
	return cmd
}

// --- 对战 ---

func handlePlayingKeys(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	game := m.Game()

	switch key := msg.String(); key {
	case "1", "2", "3", "4":
		if game.Eliminated() {
			return true, notify(m, "你已出局")
		}
		lines := int(key[0] - '0')
		score, _ := game.RecordLineClear(lines, common.LineClearScore(lines))
		return true, send(m, func() error { return m.Client().LineClear(lines, score) })
	case "d":
		if game.Eliminated() {
			return true, nil
		}
		score, lines := game.RecordLineClear(0, dropPoints)
		return true, send(m, func() error { return m.Client().UpdateScore(score, lines) })
	case "x":
		if game.Eliminated() {
			return true, nil
		}
		game.MarkEliminated()
		score := game.Score()
		return true, send(m, func() error { return m.Client().Eliminated(score) })
	case "q", "esc":
		return true, leave(m)
	}
	return true, nil
}

// --- 结算 ---

func handleGameOverKeys(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", "q", "esc":
		return true, leave(m)
	}
	return true, nil
}
