package view

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/MJDaws0n/Tetris/internal/game/territory"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/testutil"
	"github.com/MJDaws0n/Tetris/internal/ui/common"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

func newModel(t *testing.T) *model.OnlineModel {
	t.Helper()
	m := model.NewOnlineModel(testutil.NewFakeGameClient())
	m.Update(model.ConnectedMsg{})
	return m
}

func windowSize() tea.WindowSizeMsg { return tea.WindowSizeMsg{Width: 160, Height: 40} }

func roster() []protocol.PlayerInfo {
	return []protocol.PlayerInfo{
		{ID: 1, Name: "Alice", Color: "#ff453a", IsHost: true, Score: 900, TilesOwned: 12},
		{ID: 2, Name: "Bob", Color: "#0a84ff", Eliminated: true},
	}
}

func TestRenderLeaderboardTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		names    []string
		scores   []int
		expected []string
	}{
		{"empty", nil, nil, []string{"普通模式", "暂无记录"}},
		{"single entry", []string{"Champion"}, []int{1000}, []string{"1. Champion", "1000"}},
		{"mismatched lengths use the shorter", []string{"a", "b"}, []int{5}, []string{"1. a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := renderLeaderboardTable("普通模式", tt.names, tt.scores)
			for _, s := range tt.expected {
				assert.Contains(t, out, s)
			}
			assert.NotContains(t, out, "2. b")
		})
	}
}

func TestRenderLeaderboardTable_CapsRows(t *testing.T) {
	t.Parallel()

	names := make([]string, 15)
	scores := make([]int, 15)
	for i := range names {
		names[i] = "player"
		scores[i] = 100 - i
	}
	out := renderLeaderboardTable("t", names, scores)
	assert.Contains(t, out, "10. player")
	assert.NotContains(t, out, "11. player")
}

func TestMenuView(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.Update(windowSize())
	out := MenuView(m)
	assert.Contains(t, out, "排行榜加载中")
	for _, item := range model.MenuItems {
		assert.Contains(t, out, item)
	}

	m.Lobby().SetLeaderboard(protocol.LeaderboardPayload{Names: []string{"amy"}, Scores: []int{4200}})
	out = MenuView(m)
	assert.Contains(t, out, "amy")
	assert.Contains(t, out, "4200")
	assert.Contains(t, out, "困难模式")
}

func TestRenderGrid(t *testing.T) {
	t.Parallel()

	var grid territory.Grid
	grid[0][0] = 1
	grid[9][9] = 2
	out := renderGrid(grid, func(int) string { return "" })

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, territory.Size+2, "ten rows plus the border")
	assert.Equal(t, 2, strings.Count(out, common.OwnedCell))
	assert.Equal(t, territory.TotalCells-2, strings.Count(out, common.EmptyCell))
}

func TestRoomView(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.Update(windowSize())
	m.Game().EnterRoom(protocol.RoomJoinedPayload{RoomCode: "ABC234", PlayerID: 1, IsHost: true, Players: roster()})
	m.SetPhase(model.PhaseRoom)

	out := Render(m, model.PhaseRoom)
	assert.Contains(t, out, "ABC234")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, common.HostIcon)
	assert.Contains(t, out, "s 开始对战")
}

func TestMatchView(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.Update(windowSize())
	m.Game().EnterRoom(protocol.RoomJoinedPayload{RoomCode: "ABC234", PlayerID: 2, Players: roster()})
	m.Game().StartMatch(protocol.GameStartedPayload{Players: roster(), HardMode: true})

	out := Render(m, model.PhasePlaying)
	assert.Contains(t, out, "困难")
	assert.Contains(t, out, "900 分")
	assert.Contains(t, out, "你已出局")
}

func TestGameOverView(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.Update(windowSize())
	m.Game().EnterRoom(protocol.RoomJoinedPayload{RoomCode: "ABC234", PlayerID: 1, Players: roster()})
	winner := roster()[0]
	m.Game().Finish(protocol.GameOverPayload{Winner: &winner, Rankings: roster(), Players: roster()})

	out := Render(m, model.PhaseGameOver)
	assert.Contains(t, out, "胜者")
	assert.Contains(t, out, "你赢了")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "2. ")
}

func TestGameOverView_NoWinner(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.Update(windowSize())
	m.Game().Finish(protocol.GameOverPayload{})
	assert.Contains(t, GameOverView(m), "没有胜者")
}

func TestSoloView(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.Update(windowSize())
	m.Lobby().SetPlayerName("Carol")
	m.Solo().Start("sid")
	m.Solo().ToggleHardMode()
	m.Solo().RecordLineClear(3, 900)

	out := Render(m, model.PhaseSolo)
	assert.Contains(t, out, "Carol")
	assert.Contains(t, out, "困难模式")
	assert.Contains(t, out, "分数: 900")
	assert.Contains(t, out, "消行: 3")
}
