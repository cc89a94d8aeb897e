package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MJDaws0n/Tetris/internal/game/territory"
	"github.com/MJDaws0n/Tetris/internal/ui/common"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

// MatchView 对战界面：领地网格 + 玩家列表
func MatchView(m model.Model) string {
	game := m.Game()
	var sb strings.Builder

	title := fmt.Sprintf("房间 %s · 对战中", game.RoomCode())
	if game.HardMode() {
		title += " · " + common.HardStyle.Render("困难")
	}
	sb.WriteString(centered(m, common.TitleStyle(title)))
	sb.WriteString("\n\n")

	grid := renderGrid(game.Grid(), game.ColorOf)
	roster := renderRoster(game.Players(), game.MyID(), true)
	sb.WriteString(centered(m, lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", roster)))
	sb.WriteString("\n")

	status := fmt.Sprintf("我的分数 %d · 消行 %d", game.Score(), game.Lines())
	if game.Eliminated() {
		status = common.ErrorStyle.Render("你已出局") + " · " + status
	}
	sb.WriteString(centered(m, status))
	sb.WriteString("\n")

	if event := game.LastEvent(); event != "" {
		sb.WriteString(centered(m, event))
		sb.WriteString("\n")
	}
	if line := notificationLine(m); line != "" {
		sb.WriteString(centered(m, line))
		sb.WriteString("\n")
	}
	sb.WriteString(centered(m, common.DimStyle.Render("1-4 消行 · d 硬降 · x 出局 · q 离开")))
	return sb.String()
}

// renderGrid 渲染 10×10 领地，空格子显示为点
func renderGrid(grid territory.Grid, colorOf func(int) string) string {
	rows := make([]string, 0, territory.Size)
	for y := range territory.Size {
		var row strings.Builder
		for x := range territory.Size {
			owner := grid[y][x]
			if owner == 0 {
				row.WriteString(common.DimStyle.Render(" " + common.EmptyCell))
				continue
			}
			row.WriteString(common.PlayerStyle(colorOf(owner)).Render(common.OwnedCell))
		}
		rows = append(rows, row.String())
	}
	return common.BoxStyle.Render(strings.Join(rows, "\n"))
}

// GameOverView 结算界面
func GameOverView(m model.Model) string {
	game := m.Game()
	var sb strings.Builder

	sb.WriteString(centered(m, common.TitleStyle("🏁 对战结束")))
	sb.WriteString("\n\n")

	if w := game.Winner(); w != nil {
		line := fmt.Sprintf("%s 胜者: %s", common.WinnerIcon, common.PlayerStyle(w.Color).Render(w.Name))
		if w.ID == game.MyID() {
			line += common.SuccessStyle.Render("  你赢了！")
		}
		sb.WriteString(centered(m, line))
	} else {
		sb.WriteString(centered(m, "没有胜者"))
	}
	sb.WriteString("\n\n")

	lines := []string{"排名", ""}
	for i, p := range game.Rankings() {
		name := common.PlayerStyle(p.Color).Render(common.TruncateName(p.Name, 20))
		entry := fmt.Sprintf("%d. %s  %d 分 · %d 格", i+1, name, p.Score, p.TilesOwned)
		if p.Eliminated {
			entry += " " + common.EliminatedIcon
		}
		lines = append(lines, entry)
	}
	rankings := common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	grid := renderGrid(game.Grid(), game.ColorOf)
	sb.WriteString(centered(m, lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", rankings)))
	sb.WriteString("\n")
	sb.WriteString(centered(m, common.DimStyle.Render("Enter 返回主菜单")))
	return sb.String()
}
