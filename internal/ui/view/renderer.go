// Package view provides UI rendering functions.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MJDaws0n/Tetris/internal/ui/common"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

// Render 按当前界面阶段渲染
func Render(m model.Model, phase model.GamePhase) string {
	switch phase {
	case model.PhaseMenu:
		return MenuView(m)
	case model.PhaseEnterName, model.PhaseEnterCode:
		return PromptView(m)
	case model.PhaseLeaderboard:
		return LeaderboardView(m)
	case model.PhaseSolo:
		return SoloView(m)
	case model.PhaseRoom:
		return RoomView(m)
	case model.PhasePlaying:
		return MatchView(m)
	case model.PhaseGameOver:
		return GameOverView(m)
	}
	return ""
}

// notificationLine 渲染当前系统通知
func notificationLine(m model.Model) string {
	n := m.GetCurrentNotification()
	if n == nil {
		return ""
	}
	var style lipgloss.Style
	switch n.Type {
	case model.NotifyError, model.NotifyMaintenance:
		style = common.WarnStyle
	case model.NotifyReconnecting:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case model.NotifyReconnectSuccess:
		style = common.SuccessStyle
	}
	return style.Render(n.Message)
}

func centered(m model.Model, s string) string {
	return lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, s)
}
