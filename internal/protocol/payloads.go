package protocol

import "github.com/MJDaws0n/Tetris/internal/game/territory"

// --- 客户端请求 Payloads ---

// SubmitScorePayload 单人成绩提交
type SubmitScorePayload struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name" validate:"max=64"`
	Score     int    `json:"score" validate:"gte=0"`
	Lines     int    `json:"lines" validate:"gte=0"`
	HardMode  bool   `json:"hardMode"`
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	Name string `json:"name" validate:"max=64"`
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	Name     string `json:"name" validate:"max=64"`
	RoomCode string `json:"roomCode" validate:"max=16"`
}

// StartMultiplayerPayload 开始对战请求
type StartMultiplayerPayload struct {
	HardMode bool `json:"hardMode"`
}

// LineClearPayload 消行上报
type LineClearPayload struct {
	Lines int `json:"lines" validate:"gte=0,lte=100"`
	Score int `json:"score" validate:"gte=0"`
}

// PlayerEliminatedPayload 出局上报
type PlayerEliminatedPayload struct {
	Score *int `json:"score" validate:"omitempty,gte=0"`
}

// UpdateScorePayload 分数同步
type UpdateScorePayload struct {
	Score *int `json:"score" validate:"omitempty,gte=0"`
	Lines *int `json:"lines" validate:"omitempty,gte=0"`
}

// --- 服务端响应 Payloads ---

// PlayerInfo 玩家快照
type PlayerInfo struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsHost     bool   `json:"isHost"`
	Eliminated bool   `json:"eliminated"`
	Score      int    `json:"score"`
	Lines      int    `json:"lines"`
	TilesOwned int    `json:"tilesOwned"`
}

// SessionStartedPayload 单人会话已创建
type SessionStartedPayload struct {
	SessionID string `json:"sessionId"`
}

// LeaderboardPayload 排行榜快照（normal 与 hard 两个分区）
type LeaderboardPayload struct {
	Names      []string `json:"names"`
	Scores     []int    `json:"scores"`
	NamesHard  []string `json:"namesHard"`
	ScoresHard []int    `json:"scoresHard"`
}

// RoomJoinedPayload 创建/加入房间成功
type RoomJoinedPayload struct {
	RoomCode string       `json:"roomCode"`
	PlayerID int          `json:"playerId"`
	IsHost   bool         `json:"isHost"`
	Players  []PlayerInfo `json:"players"`
}

// PlayerJoinedPayload 其他玩家加入
type PlayerJoinedPayload struct {
	Player  PlayerInfo   `json:"player"`
	Players []PlayerInfo `json:"players"`
}

// PlayerLeftPayload 玩家离开
type PlayerLeftPayload struct {
	PlayerID  int          `json:"playerId"`
	Players   []PlayerInfo `json:"players"`
	NewHostID *int         `json:"newHostId,omitempty"`
}

// GameStartedPayload 对战开始
type GameStartedPayload struct {
	Players     []PlayerInfo   `json:"players"`
	CaptureGrid territory.Grid `json:"captureGrid"`
	HardMode    bool           `json:"hardMode"`
}

// GridUpdatePayload 领地更新
type GridUpdatePayload struct {
	PlayerID    int              `json:"playerId"`
	Lines       int              `json:"lines"`
	Claimed     []territory.Cell `json:"claimed"`
	CaptureGrid territory.Grid   `json:"captureGrid"`
	Players     []PlayerInfo     `json:"players"`
}

// PlayerEliminatedBroadcast 玩家出局通知
type PlayerEliminatedBroadcast struct {
	PlayerID int          `json:"playerId"`
	Players  []PlayerInfo `json:"players"`
}

// ScoreUpdatePayload 分数更新
type ScoreUpdatePayload struct {
	PlayerID int `json:"playerId"`
	Score    int `json:"score"`
	Lines    int `json:"lines"`
}

// GameOverPayload 对战结束
type GameOverPayload struct {
	Winner      *PlayerInfo    `json:"winner"`
	Rankings    []PlayerInfo   `json:"rankings"`
	CaptureGrid territory.Grid `json:"captureGrid"`
	Players     []PlayerInfo   `json:"players"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InlineErrorPayload 无 type 字段的协议错误回复
type InlineErrorPayload struct {
	Error string `json:"error"`
}
