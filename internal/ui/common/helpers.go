package common

import "strings"

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// LineClearScore 一次消 n 行的得分
func LineClearScore(lines int) int {
	return 100 * lines * lines
}

// NormalizeRoomCode 房间号统一大写并去掉空白
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
