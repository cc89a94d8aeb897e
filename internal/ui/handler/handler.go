// Package handler processes server messages.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MJDaws0n/Tetris/internal/logger"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
)

// messageHandler 消息处理函数类型
type messageHandler func(m model.Model, msg *protocol.Message) tea.Cmd

// messageHandlers 消息处理器映射表
var messageHandlers = map[protocol.MessageType]messageHandler{
	// Connection
	protocol.MsgError:  handleMsgError,
	protocol.MsgScores: handleMsgScores,

	// Solo
	protocol.MsgSessionStarted: handleMsgSessionStarted,

	// Room
	protocol.MsgRoomCreated:  handleMsgRoomJoined,
	protocol.MsgRoomJoined:   handleMsgRoomJoined,
	protocol.MsgPlayerJoined: handleMsgPlayerJoined,
	protocol.MsgPlayerLeft:   handleMsgPlayerLeft,

	// Match
	protocol.MsgGameStarted:      handleMsgGameStarted,
	protocol.MsgGridUpdate:       handleMsgGridUpdate,
	protocol.MsgScoreUpdate:      handleMsgScoreUpdate,
	protocol.MsgPlayerEliminated: handleMsgPlayerEliminated,
	protocol.MsgGameOver:         handleMsgGameOver,
}

// HandleServerMessage dispatches server messages to appropriate handlers.
func HandleServerMessage(m model.Model, msg *protocol.Message) tea.Cmd {
	if msg.Type == "" {
		return handleInlineError(m, msg)
	}
	if handler, ok := messageHandlers[msg.Type]; ok {
		return handler(m, msg)
	}
	logger.LogInfo("忽略消息类型 %s", msg.Type)
	return nil
}
