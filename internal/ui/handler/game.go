package handler

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

func handleMsgGameStarted(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GameStartedPayload](msg)
	if err != nil {
		return nil
	}

	m.Game().StartMatch(*payload)
	m.Game().SetLastEvent("🎮 对战开始！")
	m.SetPhase(model.PhasePlaying)
	return nil
}

func handleMsgGridUpdate(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GridUpdatePayload](msg)
	if err != nil {
		return nil
	}

	m.Game().ApplyGridUpdate(*payload)
	if p, ok := m.Game().Player(payload.PlayerID); ok {
		m.Game().SetLastEvent(fmt.Sprintf("🧱 %s 消除了 %d 行，占领 %d 格", p.Name, payload.Lines, len(payload.Claimed)))
	}
	return nil
}

func handleMsgScoreUpdate(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ScoreUpdatePayload](msg)
	if err != nil {
		return nil
	}
	m.Game().ApplyScoreUpdate(*payload)
	return nil
}

func handleMsgPlayerEliminated(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerEliminatedBroadcast](msg)
	if err != nil {
		return nil
	}

	m.Game().SetPlayers(payload.Players)
	if payload.PlayerID == m.Game().MyID() {
		m.Game().MarkEliminated()
		m.Game().SetLastEvent("💀 你出局了")
		return nil
	}
	if p, ok := m.Game().Player(payload.PlayerID); ok {
		m.Game().SetLastEvent(fmt.Sprintf("💀 %s 出局", p.Name))
	}
	return nil
}

func handleMsgGameOver(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GameOverPayload](msg)
	if err != nil {
		return nil
	}

	m.Game().Finish(*payload)
	m.SetPhase(model.PhaseGameOver)
	return nil
}
