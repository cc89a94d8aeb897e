package model

import (
	"github.com/MJDaws0n/Tetris/internal/game/territory"
	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// GameModel 房间与对战状态，全部来自服务端推送，本地只累计自己的分数
type GameModel struct {
	roomCode string
	myID     int
	isHost   bool
	hardMode bool
	players  []protocol.PlayerInfo

	grid    territory.Grid
	claimed []territory.Cell

	score      int
	lines      int
	eliminated bool

	winner    *protocol.PlayerInfo
	rankings  []protocol.PlayerInfo
	lastEvent string
}

// NewGameModel creates a new GameModel.
func NewGameModel() *GameModel {
	return &GameModel{}
}

// Reset 离开房间后清空
func (m *GameModel) Reset() {
	*m = GameModel{}
}

// EnterRoom 创建或加入房间成功
func (m *GameModel) EnterRoom(p protocol.RoomJoinedPayload) {
	m.Reset()
	m.roomCode = p.RoomCode
	m.myID = p.PlayerID
	m.isHost = p.IsHost
	m.SetPlayers(p.Players)
}

// SetPlayers 更新玩家列表，房主身份以列表为准
func (m *GameModel) SetPlayers(players []protocol.PlayerInfo) {
	m.players = append(m.players[:0], players...)
	if me, ok := m.Me(); ok {
		m.isHost = me.IsHost
		m.eliminated = m.eliminated || me.Eliminated
	}
}

// StartMatch 对战开始，本地计分清零
func (m *GameModel) StartMatch(p protocol.GameStartedPayload) {
	m.hardMode = p.HardMode
	m.grid = p.CaptureGrid
	m.claimed = nil
	m.score = 0
	m.lines = 0
	m.eliminated = false
	m.winner = nil
	m.rankings = nil
	m.lastEvent = ""
	m.SetPlayers(p.Players)
}

// ApplyGridUpdate 应用领地更新
func (m *GameModel) ApplyGridUpdate(p protocol.GridUpdatePayload) {
	m.grid = p.CaptureGrid
	m.claimed = p.Claimed
	m.SetPlayers(p.Players)
}

// ApplyScoreUpdate 更新其他玩家的分数
func (m *GameModel) ApplyScoreUpdate(p protocol.ScoreUpdatePayload) {
	for i := range m.players {
		if m.players[i].ID == p.PlayerID {
			m.players[i].Score = p.Score
			m.players[i].Lines = p.Lines
		}
	}
}

// Finish 对战结束
func (m *GameModel) Finish(p protocol.GameOverPayload) {
	m.winner = p.Winner
	m.rankings = p.Rankings
	m.grid = p.CaptureGrid
	m.SetPlayers(p.Players)
}

// RecordLineClear 本地累计一次消行，返回新的总分与总行数
func (m *GameModel) RecordLineClear(lines, points int) (score, total int) {
	m.lines += lines
	m.score += points
	return m.score, m.lines
}

// MarkEliminated 本地标记出局
func (m *GameModel) MarkEliminated() { m.eliminated = true }

// Me 自己的玩家快照
func (m *GameModel) Me() (protocol.PlayerInfo, bool) {
	return m.Player(m.myID)
}

// Player 按 ID 查找玩家
func (m *GameModel) Player(id int) (protocol.PlayerInfo, bool) {
	for _, p := range m.players {
		if p.ID == id {
			return p, true
		}
	}
	return protocol.PlayerInfo{}, false
}

// ColorOf 玩家颜色，格子为 0 或未知玩家时返回空
func (m *GameModel) ColorOf(id int) string {
	if p, ok := m.Player(id); ok {
		return p.Color
	}
	return ""
}

func (m *GameModel) RoomCode() string                { return m.roomCode }
func (m *GameModel) MyID() int                       { return m.myID }
func (m *GameModel) IsHost() bool                    { return m.isHost }
func (m *GameModel) HardMode() bool                  { return m.hardMode }
func (m *GameModel) ToggleHardMode()                 { m.hardMode = !m.hardMode }
func (m *GameModel) Players() []protocol.PlayerInfo  { return m.players }
func (m *GameModel) Grid() territory.Grid            { return m.grid }
func (m *GameModel) Claimed() []territory.Cell       { return m.claimed }
func (m *GameModel) Score() int                      { return m.score }
func (m *GameModel) Lines() int                      { return m.lines }
func (m *GameModel) Eliminated() bool                { return m.eliminated }
func (m *GameModel) Winner() *protocol.PlayerInfo    { return m.winner }
func (m *GameModel) Rankings() []protocol.PlayerInfo { return m.rankings }
func (m *GameModel) LastEvent() string               { return m.lastEvent }
func (m *GameModel) SetLastEvent(event string)       { m.lastEvent = event }
