package view

import (
	"fmt"
	"strings"

	"github.com/MJDaws0n/Tetris/internal/ui/common"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

// SoloView 单人练习界面
func SoloView(m model.Model) string {
	solo := m.Solo()
	var sb strings.Builder

	sb.WriteString(centered(m, common.TitleStyle("🎯 单人练习")))
	sb.WriteString("\n\n")

	mode := "普通模式"
	if solo.HardMode() {
		mode = common.HardStyle.Render("困难模式")
	}
	body := fmt.Sprintf("玩家: %s\n模式: %s\n\n分数: %d\n消行: %d",
		m.Lobby().PlayerName(), mode, solo.Score(), solo.Lines())
	sb.WriteString(centered(m, common.BoxStyle.Padding(0, 2).Render(body)))
	sb.WriteString("\n")

	if line := notificationLine(m); line != "" {
		sb.WriteString(centered(m, line))
		sb.WriteString("\n")
	}
	sb.WriteString(centered(m, common.DimStyle.Render("1-4 消行 · h 切换模式 · Enter 提交成绩 · q 放弃")))
	return sb.String()
}
