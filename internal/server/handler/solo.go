package handler

import (
	"context"
	"log"

	"github.com/MJDaws0n/Tetris/internal/anticheat"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/server/storage"
	"github.com/MJDaws0n/Tetris/internal/types"
)

// handleStartGame 为单人对局创建防作弊会话
func (h *Handler) handleStartGame(client types.ClientInterface) {
	ctx, cancel := context.WithTimeout(context.Background(), h.persistTimeout)
	defer cancel()

	id, err := h.validator.StartSession(ctx)
	if err != nil {
		log.Printf("⚠️ 创建单人会话失败 (连接: %s): %v", client.GetID(), err)
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeStorage))
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgSessionStarted, protocol.SessionStartedPayload{
		SessionID: id,
	}))
}

// SendLeaderboard 发送排行榜快照给单个连接，存储失败时只记录日志
func (h *Handler) SendLeaderboard(client types.ClientInterface) {
	msg, ok := h.leaderboardMessage()
	if !ok {
		return
	}
	client.SendMessage(msg)
}

// broadcastLeaderboard 广播排行榜快照给所有连接
func (h *Handler) broadcastLeaderboard() {
	msg, ok := h.leaderboardMessage()
	if !ok {
		return
	}
	h.server.Broadcast(msg)
}

func (h *Handler) leaderboardMessage() (*protocol.Message, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), h.persistTimeout)
	defer cancel()

	snap, err := storage.Snapshot(ctx, h.leaderboard)
	if err != nil {
		log.Printf("⚠️ 读取排行榜失败: %v", err)
		return nil, false
	}
	return codec.MustNewMessage(protocol.MsgScores, snap), true
}

// handleSubmitScore 校验并写入单人成绩
func (h *Handler) handleSubmitScore(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.SubmitScorePayload](client, msg)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.persistTimeout)
	defer cancel()

	decision, err := h.validator.Check(ctx, anticheat.Submission{
		SessionID: payload.SessionID,
		Name:      payload.Name,
		Score:     payload.Score,
		Lines:     payload.Lines,
		HardMode:  payload.HardMode,
	})
	if err != nil {
		log.Printf("⚠️ 查询单人会话失败 (连接: %s): %v", client.GetID(), err)
		return
	}

	switch {
	case decision.Verdict == anticheat.VerdictNoOp:
		return
	case decision.Verdict.Rejected():
		client.SendMessage(codec.NewErrorMessage(decision.Verdict.ErrorCode()))
		return
	}

	if decision.Name == "" {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidName))
		return
	}

	mode := storage.ModeFor(payload.HardMode)
	if err := h.leaderboard.Upsert(ctx, decision.Name, payload.Score, mode); err != nil {
		log.Printf("⚠️ 写入排行榜失败 (%s, %d, %s): %v", decision.Name, payload.Score, mode, err)
		return
	}
	log.Printf("🏆 %s 提交成绩 %d (%s)", decision.Name, payload.Score, mode)

	h.broadcastLeaderboard()
}
