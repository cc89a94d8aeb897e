package client

import (
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
)

// --- 单人模式 ---

// StartGame 开始单人游戏，服务端回复 session_started
func (c *Client) StartGame() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgStartGame, nil))
}

// Sync 请求排行榜
func (c *Client) Sync() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgSync, nil))
}

// SubmitScore 提交单人成绩
func (c *Client) SubmitScore(sessionID, name string, score, lines int, hardMode bool) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgSubmitScore, protocol.SubmitScorePayload{
		SessionID: sessionID,
		Name:      name,
		Score:     score,
		Lines:     lines,
		HardMode:  hardMode,
	}))
}

// --- 房间 ---

// CreateRoom 创建房间
func (c *Client) CreateRoom(name string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		Name: name,
	}))
}

// JoinRoom 加入房间
func (c *Client) JoinRoom(name, roomCode string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		Name:     name,
		RoomCode: roomCode,
	}))
}

// LeaveRoom 离开房间
func (c *Client) LeaveRoom() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgLeaveRoom, nil))
}

// --- 对战 ---

// StartMultiplayer 房主开始对战
func (c *Client) StartMultiplayer(hardMode bool) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgStartMultiplayer, protocol.StartMultiplayerPayload{
		HardMode: hardMode,
	}))
}

// LineClear 上报消行
func (c *Client) LineClear(lines, score int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgLineClear, protocol.LineClearPayload{
		Lines: lines,
		Score: score,
	}))
}

// Eliminated 上报自己出局
func (c *Client) Eliminated(score int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPlayerEliminated, protocol.PlayerEliminatedPayload{
		Score: &score,
	}))
}

// UpdateScore 同步当前分数与消行数
func (c *Client) UpdateScore(score, lines int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgUpdateScore, protocol.UpdateScorePayload{
		Score: &score,
		Lines: &lines,
	}))
}
