package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJDaws0n/Tetris/internal/game/territory"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/testutil"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

func newModel(t *testing.T) *model.OnlineModel {
	t.Helper()
	m := model.NewOnlineModel(testutil.NewFakeGameClient())
	m.Update(model.ConnectedMsg{})
	return m
}

func roster() []protocol.PlayerInfo {
	return []protocol.PlayerInfo{
		{ID: 1, Name: "Alice", Color: "#ff453a", IsHost: true},
		{ID: 2, Name: "Bob", Color: "#0a84ff"},
	}
}

func joinRoom(t *testing.T, m *model.OnlineModel, myID int) {
	t.Helper()
	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: "ABC234",
		PlayerID: myID,
		IsHost:   myID == 1,
		Players:  roster(),
	}))
	require.Equal(t, model.PhaseRoom, m.Phase())
}

func TestHandleScores(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgScores, protocol.LeaderboardPayload{
		Names:      []string{"amy", "bob"},
		Scores:     []int{900, 400},
		NamesHard:  []string{},
		ScoresHard: []int{},
	}))

	require.True(t, m.Lobby().HasLeaderboard())
	assert.Equal(t, []int{900, 400}, m.Lobby().Leaderboard().Scores)
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	cmd := HandleServerMessage(m, codec.NewErrorMessage(protocol.ErrCodeRoomNotFound))
	assert.NotNil(t, cmd, "errors clear themselves later")
	require.NotNil(t, m.GetCurrentNotification())
	assert.Equal(t, model.NotifyError, m.GetCurrentNotification().Type)
	assert.Contains(t, m.GetCurrentNotification().Message, "Room not found")
}

func TestHandleMaintenance(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	HandleServerMessage(m, codec.NewErrorMessage(protocol.ErrCodeServerMaintenance))
	require.NotNil(t, m.GetCurrentNotification())
	assert.Equal(t, model.NotifyMaintenance, m.GetCurrentNotification().Type)
}

func TestHandleInlineError(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	HandleServerMessage(m, codec.NewInlineError(protocol.TextUnknownType))
	require.NotNil(t, m.GetCurrentNotification())
	assert.Contains(t, m.GetCurrentNotification().Message, protocol.TextUnknownType)
}

func TestHandleRoomLifecycle(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	joinRoom(t, m, 2)
	assert.Equal(t, "ABC234", m.Game().RoomCode())
	assert.False(t, m.Game().IsHost())

	carol := protocol.PlayerInfo{ID: 3, Name: "Carol"}
	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player:  carol,
		Players: append(roster(), carol),
	}))
	assert.Len(t, m.Game().Players(), 3)
	assert.Contains(t, m.Game().LastEvent(), "Carol")

	newHost := 2
	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:  1,
		Players:   []protocol.PlayerInfo{{ID: 2, Name: "Bob", IsHost: true}, carol},
		NewHostID: &newHost,
	}))
	assert.True(t, m.Game().IsHost(), "host badge moves to us")
	assert.Contains(t, m.Game().LastEvent(), "Alice")
	assert.Contains(t, m.Game().LastEvent(), "Bob")
}

func TestHandleMatchFlow(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	joinRoom(t, m, 1)

	var grid territory.Grid
	grid[0][0] = 1
	grid[9][9] = 2
	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		Players:     roster(),
		CaptureGrid: grid,
		HardMode:    true,
	}))
	assert.Equal(t, model.PhasePlaying, m.Phase())
	assert.True(t, m.Game().HardMode())

	grid[0][1] = 2
	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgGridUpdate, protocol.GridUpdatePayload{
		PlayerID:    2,
		Lines:       1,
		Claimed:     []territory.Cell{{X: 1, Y: 0}},
		CaptureGrid: grid,
		Players:     roster(),
	}))
	assert.Equal(t, 2, m.Game().Grid()[0][1])
	assert.Contains(t, m.Game().LastEvent(), "Bob")

	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgScoreUpdate, protocol.ScoreUpdatePayload{
		PlayerID: 2, Score: 100, Lines: 1,
	}))
	bob, _ := m.Game().Player(2)
	assert.Equal(t, 100, bob.Score)

	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgPlayerEliminated, protocol.PlayerEliminatedBroadcast{
		PlayerID: 1,
		Players:  roster(),
	}))
	assert.True(t, m.Game().Eliminated())

	winner := roster()[1]
	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		Winner:      &winner,
		Rankings:    []protocol.PlayerInfo{winner, roster()[0]},
		CaptureGrid: grid,
		Players:     roster(),
	}))
	assert.Equal(t, model.PhaseGameOver, m.Phase())
	assert.Equal(t, "Bob", m.Game().Winner().Name)
}

func TestHandleUnknownTypeIgnored(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	assert.Nil(t, HandleServerMessage(m, codec.MustNewMessage(protocol.MsgStartGame, nil)))
	assert.Equal(t, model.PhaseMenu, m.Phase())
}

func TestHandleSessionStarted(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgSessionStarted, protocol.SessionStartedPayload{SessionID: "sid"}))
	assert.Equal(t, model.PhaseSolo, m.Phase())
	assert.Equal(t, "sid", m.Solo().SessionID())

	HandleServerMessage(m, codec.MustNewMessage(protocol.MsgSessionStarted, protocol.SessionStartedPayload{}))
	assert.Equal(t, "sid", m.Solo().SessionID(), "frames without a session are ignored")
}
