package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

func handleMsgSessionStarted(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.SessionStartedPayload](msg)
	if err != nil || payload.SessionID == "" {
		return nil
	}

	m.Solo().Start(payload.SessionID)
	m.SetPhase(model.PhaseSolo)
	m.Input().Reset()
	m.Input().Blur()
	return nil
}
