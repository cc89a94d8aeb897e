// Package ui provides the main entry point for the UI.
package ui

import (
	"github.com/MJDaws0n/Tetris/internal/network/client"
	"github.com/MJDaws0n/Tetris/internal/ui/handler"
	"github.com/MJDaws0n/Tetris/internal/ui/input"
	"github.com/MJDaws0n/Tetris/internal/ui/model"
	"github.com/MJDaws0n/Tetris/internal/ui/view"
)

// NewOnlineModel creates the root model wired to a websocket client.
func NewOnlineModel(serverURL string) *model.OnlineModel {
	c := client.NewClient(serverURL)
	m := model.NewOnlineModel(c)

	m.SetViewRenderer(view.Render)
	m.SetKeyHandler(input.HandleKeyPress)
	m.SetServerMessageHandler(handler.HandleServerMessage)

	c.OnReconnecting = func(attempt, maxTries int) {
		m.Notify(model.ReconnectingMsg{Attempt: attempt, MaxTries: maxTries})
	}
	c.OnReconnect = func() {
		m.Notify(model.ReconnectSuccessMsg{})
	}
	c.OnClose = func() {
		m.Notify(model.DisconnectedMsg{})
	}

	return m
}
