package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/ui/common"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

const leaderboardRows = 10

// MenuView renders the main menu beside the leaderboard.
func MenuView(m model.Model) string {
	var sb strings.Builder

	sb.WriteString(centered(m, common.TitleStyle("🧱 Territory Tetris")))
	sb.WriteString("\n\n")
	if line := notificationLine(m); line != "" {
		sb.WriteString(centered(m, line))
		sb.WriteString("\n\n")
	}

	lines := []string{"请选择:", ""}
	for i, item := range model.MenuItems {
		prefix := "  "
		if i == m.Lobby().SelectedIndex() {
			prefix = "▶ "
		}
		lines = append(lines, prefix+item)
	}
	menu := common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	board := renderLeaderboard(m.Lobby())
	sb.WriteString(centered(m, lipgloss.JoinHorizontal(lipgloss.Top, menu, "  ", board)))
	sb.WriteString("\n")
	sb.WriteString(centered(m, common.DimStyle.Render("↑/↓ 选择 · Enter 确认 · r 刷新排行榜 · q 退出")))
	return sb.String()
}

// PromptView 输入名字或房间号
func PromptView(m model.Model) string {
	title := "输入名字"
	if m.Phase() == model.PhaseEnterCode {
		title = "加入房间"
	}

	var sb strings.Builder
	sb.WriteString(centered(m, common.TitleStyle(title)))
	sb.WriteString("\n\n")
	sb.WriteString(centered(m, common.BoxStyle.Padding(0, 1).Render(m.Input().View())))
	sb.WriteString("\n")
	if line := notificationLine(m); line != "" {
		sb.WriteString(centered(m, line))
		sb.WriteString("\n")
	}
	sb.WriteString(centered(m, common.DimStyle.Render("Enter 确认 · Esc 返回")))
	return sb.String()
}

// LeaderboardView 全屏排行榜
func LeaderboardView(m model.Model) string {
	var sb strings.Builder
	sb.WriteString(centered(m, common.TitleStyle("🏆 排行榜")))
	sb.WriteString("\n\n")
	sb.WriteString(centered(m, renderLeaderboard(m.Lobby())))
	sb.WriteString("\n")
	if line := notificationLine(m); line != "" {
		sb.WriteString(centered(m, line))
		sb.WriteString("\n")
	}
	sb.WriteString(centered(m, common.DimStyle.Render("r 刷新 · Esc 返回")))
	return sb.String()
}

func renderLeaderboard(lobby *model.LobbyModel) string {
	if !lobby.HasLeaderboard() {
		return common.BoxStyle.Padding(0, 2).Render("排行榜加载中...")
	}
	lb := lobby.Leaderboard()
	normal := renderLeaderboardTable("普通模式", lb.Names, lb.Scores)
	hard := renderLeaderboardTable(common.HardStyle.Render("困难模式"), lb.NamesHard, lb.ScoresHard)
	return lipgloss.JoinHorizontal(lipgloss.Top, normal, " ", hard)
}

func renderLeaderboardTable(title string, names []string, scores []int) string {
	lines := []string{title, ""}
	n := min(len(names), len(scores), leaderboardRows)
	if n == 0 {
		lines = append(lines, common.DimStyle.Render("暂无记录"))
	}
	for i := range n {
		lines = append(lines, fmt.Sprintf("%2d. %-20s %7d", i+1, common.TruncateName(names[i], 20), scores[i]))
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RoomView 房间等待界面
func RoomView(m model.Model) string {
	game := m.Game()
	var sb strings.Builder

	sb.WriteString(centered(m, common.TitleStyle(fmt.Sprintf("房间 %s", game.RoomCode()))))
	sb.WriteString("\n\n")

	mode := "普通模式"
	if game.HardMode() {
		mode = common.HardStyle.Render("困难模式")
	}
	sb.WriteString(centered(m, "模式: "+mode))
	sb.WriteString("\n\n")

	sb.WriteString(centered(m, renderRoster(game.Players(), game.MyID(), false)))
	sb.WriteString("\n")

	if event := game.LastEvent(); event != "" {
		sb.WriteString(centered(m, event))
		sb.WriteString("\n")
	}
	if line := notificationLine(m); line != "" {
		sb.WriteString(centered(m, line))
		sb.WriteString("\n")
	}

	help := "等待房主开始 · q 离开"
	if game.IsHost() {
		help = "s 开始对战 · h 切换困难模式 · q 离开"
	}
	sb.WriteString(centered(m, common.DimStyle.Render(help)))
	return sb.String()
}

// renderRoster 玩家列表，带颜色与房主标记
func renderRoster(players []protocol.PlayerInfo, myID int, withScores bool) string {
	lines := make([]string, 0, len(players)+2)
	lines = append(lines, fmt.Sprintf("玩家 (%d)", len(players)), "")
	for _, p := range players {
		var b strings.Builder
		b.WriteString(common.PlayerStyle(p.Color).Render("■ " + common.TruncateName(p.Name, 20)))
		if p.IsHost {
			b.WriteString(" " + common.HostIcon)
		}
		if p.Eliminated {
			b.WriteString(" " + common.EliminatedIcon)
		}
		if p.ID == myID {
			b.WriteString(common.DimStyle.Render(" (你)"))
		}
		if withScores {
			fmt.Fprintf(&b, "  %d 分 · %d 行 · %d 格", p.Score, p.Lines, p.TilesOwned)
		}
		lines = append(lines, b.String())
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
