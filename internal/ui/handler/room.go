package handler

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

func handleMsgRoomJoined(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomJoinedPayload](msg)
	if err != nil {
		return nil
	}

	m.Game().EnterRoom(*payload)
	m.SetPhase(model.PhaseRoom)
	m.Input().Reset()
	m.Input().Blur()
	return nil
}

func handleMsgPlayerJoined(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerJoinedPayload](msg)
	if err != nil {
		return nil
	}

	m.Game().SetPlayers(payload.Players)
	m.Game().SetLastEvent(fmt.Sprintf("👤 %s 加入了房间", payload.Player.Name))
	return nil
}

func handleMsgPlayerLeft(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerLeftPayload](msg)
	if err != nil {
		return nil
	}

	name := fmt.Sprintf("玩家 %d", payload.PlayerID)
	if p, ok := m.Game().Player(payload.PlayerID); ok {
		name = p.Name
	}
	m.Game().SetPlayers(payload.Players)

	event := fmt.Sprintf("👋 %s 离开了房间", name)
	if payload.NewHostID != nil {
		if host, ok := m.Game().Player(*payload.NewHostID); ok {
			event += fmt.Sprintf("，%s 成为房主", host.Name)
		}
	}
	m.Game().SetLastEvent(event)
	return nil
}
