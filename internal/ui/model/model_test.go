package model

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJDaws0n/Tetris/internal/game/territory"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/testutil"
)

func roster() []protocol.PlayerInfo {
	return []protocol.PlayerInfo{
		{ID: 1, Name: "Alice", Color: "#ff453a", IsHost: true},
		{ID: 2, Name: "Bob", Color: "#0a84ff"},
	}
}

// --- LobbyModel ---

func TestLobbyModel_MoveSelectionWraps(t *testing.T) {
	t.Parallel()

	m := NewLobbyModel()
	assert.Equal(t, ActionCreateRoom, m.SelectedAction())

	m.MoveSelection(-1)
	assert.Equal(t, ActionQuit, m.SelectedAction())

	m.MoveSelection(1)
	m.MoveSelection(1)
	assert.Equal(t, ActionJoinRoom, m.SelectedAction())
}

func TestLobbyModel_Select(t *testing.T) {
	t.Parallel()

	m := NewLobbyModel()
	assert.True(t, m.Select(3))
	assert.Equal(t, ActionLeaderboard, m.SelectedAction())
	assert.False(t, m.Select(len(MenuItems)))
	assert.Equal(t, ActionLeaderboard, m.SelectedAction())
}

func TestLobbyModel_Leaderboard(t *testing.T) {
	t.Parallel()

	m := NewLobbyModel()
	assert.False(t, m.HasLeaderboard())

	m.SetLeaderboard(protocol.LeaderboardPayload{Names: []string{"amy"}, Scores: []int{10}})
	assert.True(t, m.HasLeaderboard())
	assert.Equal(t, []string{"amy"}, m.Leaderboard().Names)
}

// --- GameModel ---

func TestGameModel_EnterRoomAndHostTransfer(t *testing.T) {
	t.Parallel()

	m := NewGameModel()
	m.EnterRoom(protocol.RoomJoinedPayload{RoomCode: "ABC234", PlayerID: 2, Players: roster()})
	assert.Equal(t, "ABC234", m.RoomCode())
	assert.False(t, m.IsHost())

	m.SetPlayers([]protocol.PlayerInfo{{ID: 2, Name: "Bob", IsHost: true}})
	assert.True(t, m.IsHost())
}

func TestGameModel_MatchFlow(t *testing.T) {
	t.Parallel()

	m := NewGameModel()
	m.EnterRoom(protocol.RoomJoinedPayload{RoomCode: "ABC234", PlayerID: 1, IsHost: true, Players: roster()})

	var grid territory.Grid
	grid[0][0] = 1
	grid[9][9] = 2
	m.StartMatch(protocol.GameStartedPayload{Players: roster(), CaptureGrid: grid, HardMode: true})
	assert.True(t, m.HardMode())
	assert.Equal(t, 1, m.Grid()[0][0])

	score, lines := m.RecordLineClear(2, 400)
	assert.Equal(t, 400, score)
	assert.Equal(t, 2, lines)
	score, lines = m.RecordLineClear(1, 100)
	assert.Equal(t, 500, score)
	assert.Equal(t, 3, lines)

	m.ApplyScoreUpdate(protocol.ScoreUpdatePayload{PlayerID: 2, Score: 900, Lines: 3})
	bob, ok := m.Player(2)
	require.True(t, ok)
	assert.Equal(t, 900, bob.Score)

	eliminated := roster()
	eliminated[0].Eliminated = true
	m.ApplyGridUpdate(protocol.GridUpdatePayload{Players: eliminated, CaptureGrid: grid})
	assert.True(t, m.Eliminated(), "server-side elimination is reflected locally")

	winner := roster()[1]
	m.Finish(protocol.GameOverPayload{Winner: &winner, Rankings: roster()})
	require.NotNil(t, m.Winner())
	assert.Equal(t, "Bob", m.Winner().Name)
	assert.Len(t, m.Rankings(), 2)
}

func TestGameModel_StartMatchClearsPreviousState(t *testing.T) {
	t.Parallel()

	m := NewGameModel()
	m.EnterRoom(protocol.RoomJoinedPayload{RoomCode: "ABC234", PlayerID: 1, Players: roster()})
	m.RecordLineClear(4, 1600)
	m.MarkEliminated()

	m.StartMatch(protocol.GameStartedPayload{Players: roster()})
	assert.Zero(t, m.Score())
	assert.Zero(t, m.Lines())
	assert.False(t, m.Eliminated())
}

func TestGameModel_ColorOf(t *testing.T) {
	t.Parallel()

	m := NewGameModel()
	m.SetPlayers(roster())
	assert.Equal(t, "#0a84ff", m.ColorOf(2))
	assert.Empty(t, m.ColorOf(0))
	assert.Empty(t, m.ColorOf(7))
}

// --- SoloModel ---

func TestSoloModel_StartKeepsMode(t *testing.T) {
	t.Parallel()

	m := NewSoloModel()
	assert.True(t, m.ToggleHardMode())
	m.RecordLineClear(2, 400)
	m.MarkSubmitted()

	m.Start("next")
	assert.Equal(t, "next", m.SessionID())
	assert.True(t, m.HardMode())
	assert.Zero(t, m.Score())
	assert.False(t, m.Submitted())
}

func TestSoloModel_ModeLockedAfterClear(t *testing.T) {
	t.Parallel()

	m := NewSoloModel()
	m.Start("s")
	score, lines := m.RecordLineClear(1, 100)
	assert.Equal(t, 100, score)
	assert.Equal(t, 1, lines)
	assert.False(t, m.ToggleHardMode())
	assert.False(t, m.HardMode())
}

// --- OnlineModel ---

func TestOnlineModel_ConnectLifecycle(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(testutil.NewFakeGameClient())
	assert.Equal(t, PhaseConnecting, m.Phase())

	m.Update(ConnectedMsg{})
	assert.Equal(t, PhaseMenu, m.Phase())

	m.Update(ConnectionErrorMsg{Err: errors.New("refused")})
	assert.Equal(t, PhaseConnecting, m.Phase())
	assert.Contains(t, m.Error(), "refused")
}

func TestOnlineModel_ReconnectDropsRoom(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(testutil.NewFakeGameClient())
	m.Update(ConnectedMsg{})
	m.Game().EnterRoom(protocol.RoomJoinedPayload{RoomCode: "ABC234", PlayerID: 1, Players: roster()})
	m.SetPhase(PhasePlaying)

	m.Update(ReconnectingMsg{Attempt: 1, MaxTries: 5})
	require.NotNil(t, m.GetCurrentNotification())
	assert.Equal(t, NotifyReconnecting, m.GetCurrentNotification().Type)

	m.Update(ReconnectSuccessMsg{})
	assert.Equal(t, PhaseMenu, m.Phase())
	assert.Empty(t, m.Game().RoomCode())
	require.NotNil(t, m.GetCurrentNotification())
	assert.Equal(t, NotifyReconnectSuccess, m.GetCurrentNotification().Type)

	m.Update(ClearReconnectMsg{})
	assert.Nil(t, m.GetCurrentNotification())
}

func TestOnlineModel_Disconnected(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(testutil.NewFakeGameClient())
	m.Update(ConnectedMsg{})
	m.Update(DisconnectedMsg{})
	assert.Equal(t, PhaseConnecting, m.Phase())
	assert.NotEmpty(t, m.Error())
}

func TestOnlineModel_NotificationPriority(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(testutil.NewFakeGameClient())
	m.SetNotification(NotifyMaintenance, "maintenance", false)
	m.SetNotification(NotifyError, "error", true)
	assert.Equal(t, "error", m.GetCurrentNotification().Message)

	m.Update(ClearSystemNotificationMsg{})
	assert.Equal(t, "maintenance", m.GetCurrentNotification().Message)
}

func TestOnlineModel_DelegatesToInjectedHandlers(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(testutil.NewFakeGameClient())
	var gotType protocol.MessageType
	m.SetServerMessageHandler(func(_ Model, msg *protocol.Message) tea.Cmd {
		gotType = msg.Type
		return nil
	})
	var gotKey string
	m.SetKeyHandler(func(_ Model, msg tea.KeyMsg) (bool, tea.Cmd) {
		gotKey = msg.String()
		return true, nil
	})
	m.SetViewRenderer(func(_ Model, phase GamePhase) string {
		if phase == PhaseMenu {
			return "menu"
		}
		return "other"
	})

	m.Update(ServerMessage{Msg: &protocol.Message{Type: protocol.MsgScores}})
	assert.Equal(t, protocol.MsgScores, gotType)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.Equal(t, "s", gotKey)

	assert.Equal(t, "Loading...", m.View())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(ConnectedMsg{})
	assert.Contains(t, m.View(), "menu")
}
