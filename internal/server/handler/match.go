package handler

import (
	"context"
	"log"

	"github.com/MJDaws0n/Tetris/internal/apperrors"
	"github.com/MJDaws0n/Tetris/internal/game/room"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/server/storage"
	"github.com/MJDaws0n/Tetris/internal/types"
)

// inRoom 在发送者所在房间的 Run 锁内执行 fn
func (h *Handler) inRoom(client types.ClientInterface, fn func(r *room.Room)) {
	r := h.roomManager.GetRoomByClient(client.GetID())
	if r == nil {
		sendError(client, apperrors.ErrNotInRoom)
		return
	}
	r.Run(func() { fn(r) })
}

// handleStartMultiplayer 房主开始对战
func (h *Handler) handleStartMultiplayer(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.StartMultiplayerPayload](client, msg)
	if !ok {
		return
	}

	h.inRoom(client, func(r *room.Room) {
		result, err := r.StartMatch(client.GetID(), payload.HardMode)
		if err != nil {
			sendError(client, err)
			return
		}
		r.Broadcast(codec.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
			Players:     result.Players,
			CaptureGrid: result.Grid,
			HardMode:    result.HardMode,
		}))
	})
}

// handleLineClear 消行并占领领地
func (h *Handler) handleLineClear(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.LineClearPayload](client, msg)
	if !ok {
		return
	}

	h.inRoom(client, func(r *room.Room) {
		result, err := r.ApplyLineClear(client.GetID(), payload.Lines, payload.Score)
		if err != nil {
			sendError(client, err)
			return
		}
		r.Broadcast(codec.MustNewMessage(protocol.MsgGridUpdate, protocol.GridUpdatePayload{
			PlayerID:    result.PlayerID,
			Lines:       result.Lines,
			Claimed:     result.Claimed,
			CaptureGrid: result.Grid,
			Players:     result.Players,
		}))
		for _, id := range result.Eliminated {
			r.Broadcast(codec.MustNewMessage(protocol.MsgPlayerEliminated, protocol.PlayerEliminatedBroadcast{
				PlayerID: id,
				Players:  result.Players,
			}))
		}
		if result.GameOver != nil {
			h.finishMatch(r, result.GameOver)
		}
	})
}

// handlePlayerEliminated 玩家顶出
func (h *Handler) handlePlayerEliminated(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.PlayerEliminatedPayload](client, msg)
	if !ok {
		return
	}

	h.inRoom(client, func(r *room.Room) {
		result, err := r.ApplyElimination(client.GetID(), payload.Score)
		if err != nil {
			sendError(client, err)
			return
		}
		r.Broadcast(codec.MustNewMessage(protocol.MsgPlayerEliminated, protocol.PlayerEliminatedBroadcast{
			PlayerID: result.PlayerID,
			Players:  result.Players,
		}))
		if result.GameOver != nil {
			h.finishMatch(r, result.GameOver)
		}
	})
}

// handleUpdateScore 同步分数给其他玩家
func (h *Handler) handleUpdateScore(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.UpdateScorePayload](client, msg)
	if !ok {
		return
	}

	h.inRoom(client, func(r *room.Room) {
		update, err := r.UpdateScore(client.GetID(), payload.Score, payload.Lines)
		if err != nil {
			sendError(client, err)
			return
		}
		r.BroadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgScoreUpdate, update))
	})
}

// finishMatch 先广播结算，再异步写排行榜（调用方持有房间 Run 锁）
func (h *Handler) finishMatch(r *room.Room, over *room.GameOverResult) {
	r.Broadcast(codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		Winner:      over.Winner,
		Rankings:    over.Rankings,
		CaptureGrid: over.Grid,
		Players:     over.Players,
	}))

	if len(over.Persist) == 0 {
		return
	}
	records := over.Persist
	code := r.Code
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		h.persist(code, records)
	}()
}

// persist 写入对局成绩，失败只记录日志
func (h *Handler) persist(code string, records []room.ScoreRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), h.persistTimeout)
	defer cancel()

	written := 0
	for _, rec := range records {
		mode := storage.ModeFor(rec.HardMode)
		if err := h.leaderboard.Upsert(ctx, rec.Name, rec.Score, mode); err != nil {
			log.Printf("⚠️ 房间 %s 写入成绩失败 (%s, %d, %s): %v", code, rec.Name, rec.Score, mode, err)
			continue
		}
		written++
	}
	if written == 0 {
		return
	}
	log.Printf("🏆 房间 %s 写入 %d 条对战成绩", code, written)
	h.broadcastLeaderboard()
}
