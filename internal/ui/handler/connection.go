package handler

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/gjson"

	"github.com/MJDaws0n/Tetris/internal/logger"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

const errorTTL = 3 * time.Second

func clearNotificationLater() tea.Cmd {
	return tea.Tick(errorTTL, func(time.Time) tea.Msg {
		return model.ClearSystemNotificationMsg{}
	})
}

// showError 显示临时错误提示
func showError(m model.Model, text string) tea.Cmd {
	m.SetNotification(model.NotifyError, fmt.Sprintf("⚠️ %s", text), true)
	return clearNotificationLater()
}

func handleMsgError(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		logger.LogError("错误消息解析失败: %v", err)
		return nil
	}

	if payload.Code == protocol.ErrCodeServerMaintenance {
		m.SetNotification(model.NotifyMaintenance, "⚠️ 服务器维护中，暂停接受新连接", false)
		return nil
	}
	return showError(m, payload.Message)
}

// handleInlineError 处理无 type 字段的协议错误，如 {"error":"Unknown message type"}
func handleInlineError(m model.Model, msg *protocol.Message) tea.Cmd {
	text := gjson.GetBytes(msg.Payload, "error").String()
	if text == "" {
		return nil
	}
	logger.LogError("服务端协议错误: %s", text)
	return showError(m, text)
}

func handleMsgScores(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.LeaderboardPayload](msg)
	if err != nil {
		logger.LogError("排行榜解析失败: %v", err)
		return nil
	}
	m.Lobby().SetLeaderboard(*payload)
	return nil
}
