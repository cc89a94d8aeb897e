package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/MJDaws0n/Tetris/internal/anticheat"
	"github.com/MJDaws0n/Tetris/internal/apperrors"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/types"
)

// normalizeName 去除所有空白并校验长度
func normalizeName(raw string) (string, error) {
	name := anticheat.StripSpaces(raw)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", apperrors.ErrInvalidName
	}
	return name, nil
}

// rejectInMaintenance 维护模式下拒绝建房和加入
func (h *Handler) rejectInMaintenance(client types.ClientInterface) bool {
	if !h.server.IsMaintenanceMode() {
		return false
	}
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeServerMaintenance))
	return true
}

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.rejectInMaintenance(client) {
		return
	}

	payload, ok := parse[protocol.CreateRoomPayload](client, msg)
	if !ok {
		return
	}
	name, err := normalizeName(payload.Name)
	if err != nil {
		sendError(client, err)
		return
	}

	r, info, err := h.roomManager.CreateRoom(client, name)
	if err != nil {
		sendError(client, err)
		return
	}

	r.Run(func() {
		client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomJoinedPayload{
			RoomCode: r.Code,
			PlayerID: info.ID,
			IsHost:   true,
			Players:  r.PlayersInfo(),
		}))
	})
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.rejectInMaintenance(client) {
		return
	}

	payload, ok := parse[protocol.JoinRoomPayload](client, msg)
	if !ok {
		return
	}
	name, err := normalizeName(payload.Name)
	if err != nil {
		sendError(client, err)
		return
	}
	code := strings.ToUpper(strings.TrimSpace(payload.RoomCode))
	if code == "" {
		sendError(client, apperrors.ErrRoomNotFound)
		return
	}

	// 先拿到房间的 Run 锁，保证加入与广播之间不会插入其它房间消息
	target := h.roomManager.GetRoom(code)
	if target == nil {
		sendError(client, apperrors.ErrRoomNotFound)
		return
	}

	target.Run(func() {
		r, info, err := h.roomManager.JoinRoom(client, code, name)
		if err != nil {
			sendError(client, err)
			return
		}

		players := r.PlayersInfo()
		client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
			RoomCode: r.Code,
			PlayerID: info.ID,
			IsHost:   info.IsHost,
			Players:  players,
		}))
		r.BroadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
			Player:  info,
			Players: players,
		}))
	})
}

// handleLeaveRoom 处理离开房间（显式或断线）
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	current := h.roomManager.GetRoomByClient(client.GetID())
	if current == nil {
		sendError(client, apperrors.ErrNotInRoom)
		return
	}

	current.Run(func() {
		r, result, err := h.roomManager.LeaveRoom(client)
		if err != nil {
			sendError(client, err)
			return
		}
		if result.Empty {
			return
		}

		r.Broadcast(codec.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
			PlayerID:  result.Player.ID,
			Players:   result.Players,
			NewHostID: result.NewHostID,
		}))
		if result.GameOver != nil {
			h.finishMatch(r, result.GameOver)
		}
	})
}
