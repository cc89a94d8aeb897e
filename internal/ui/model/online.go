package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/ui/common"
)

const notificationTTL = 3 * time.Second

// OnlineModel is the root bubbletea model of the terminal client.
type OnlineModel struct {
	client GameClient
	phase  GamePhase
	error  string

	// 客户端回调通过该通道进入 tea 事件循环
	events chan tea.Msg

	notifications map[NotificationType]*SystemNotification

	// Sub-models
	lobby *LobbyModel
	game  *GameModel
	solo  *SoloModel

	input  *textinput.Model
	width  int
	height int

	// 以下三个函数由 ui 包注入，避免循环引用
	viewRenderer         func(Model, GamePhase) string
	keyHandler           func(Model, tea.KeyMsg) (bool, tea.Cmd)
	serverMessageHandler func(Model, *protocol.Message) tea.Cmd
}

// NewOnlineModel creates a new OnlineModel.
func NewOnlineModel(c GameClient) *OnlineModel {
	ti := textinput.New()
	ti.CharLimit = 20
	ti.Width = 30

	return &OnlineModel{
		client:        c,
		phase:         PhaseConnecting,
		events:        make(chan tea.Msg, 10),
		notifications: make(map[NotificationType]*SystemNotification),
		lobby:         NewLobbyModel(),
		game:          NewGameModel(),
		solo:          NewSoloModel(),
		input:         &ti,
	}
}

// Notify 把连接层的事件投递给界面，通道满时丢弃
func (m *OnlineModel) Notify(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

func (m *OnlineModel) Init() tea.Cmd {
	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
		m.listenForEvents(),
	)
}

func (m *OnlineModel) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *OnlineModel) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *OnlineModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

// --- Model interface implementation ---

func (m *OnlineModel) Phase() GamePhase         { return m.phase }
func (m *OnlineModel) SetPhase(phase GamePhase) { m.phase = phase }
func (m *OnlineModel) Client() GameClient       { return m.client }
func (m *OnlineModel) Input() *textinput.Model  { return m.input }
func (m *OnlineModel) Lobby() *LobbyModel       { return m.lobby }
func (m *OnlineModel) Game() *GameModel         { return m.game }
func (m *OnlineModel) Solo() *SoloModel         { return m.solo }
func (m *OnlineModel) Width() int               { return m.width }
func (m *OnlineModel) Height() int              { return m.height }
func (m *OnlineModel) Error() string            { return m.error }
func (m *OnlineModel) SetError(e string)        { m.error = e }

func (m *OnlineModel) SetNotification(notifyType NotificationType, message string, temporary bool) {
	m.notifications[notifyType] = &SystemNotification{
		Message:   message,
		Type:      notifyType,
		Temporary: temporary,
	}
}

func (m *OnlineModel) ClearNotification(notifyType NotificationType) {
	delete(m.notifications, notifyType)
}

func (m *OnlineModel) GetCurrentNotification() *SystemNotification {
	priorityOrder := []NotificationType{
		NotifyError,
		NotifyReconnecting,
		NotifyReconnectSuccess,
		NotifyMaintenance,
	}

	for _, notifyType := range priorityOrder {
		if notification, exists := m.notifications[notifyType]; exists {
			return notification
		}
	}
	return nil
}

// EnterMenu 回到主菜单并清空房间状态
func (m *OnlineModel) EnterMenu() {
	m.phase = PhaseMenu
	m.error = ""
	m.game.Reset()
	m.solo.Reset()
	m.input.Reset()
	m.input.Blur()
}

// Update handles tea messages.
func (m *OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ConnectedMsg:
		m.EnterMenu()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.error = fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", msg.Err)
		m.phase = PhaseConnecting

	case ReconnectingMsg:
		m.SetNotification(NotifyReconnecting, fmt.Sprintf("🔄 正在重连 (%d/%d)...", msg.Attempt, msg.MaxTries), false)
		cmds = append(cmds, m.listenForEvents())

	case ReconnectSuccessMsg:
		// 服务端不恢复会话，断线即离开房间
		inRoom := m.phase == PhaseRoom || m.phase == PhasePlaying || m.phase == PhaseGameOver
		m.ClearNotification(NotifyReconnecting)
		m.ClearNotification(NotifyError)
		if inRoom {
			m.EnterMenu()
			m.SetNotification(NotifyReconnectSuccess, "✅ 重连成功，房间已失效", true)
		} else {
			m.SetNotification(NotifyReconnectSuccess, "✅ 重连成功！", true)
		}
		cmds = append(cmds,
			tea.Tick(notificationTTL, func(time.Time) tea.Msg { return ClearReconnectMsg{} }),
			m.listenForEvents(),
		)

	case DisconnectedMsg:
		m.ClearNotification(NotifyReconnecting)
		m.error = "与服务器的连接已断开\n\n按 ESC 退出"
		m.phase = PhaseConnecting

	case ClearReconnectMsg:
		m.ClearNotification(NotifyReconnectSuccess)

	case ClearSystemNotificationMsg:
		m.ClearNotification(NotifyError)

	case ServerMessage:
		if m.serverMessageHandler != nil {
			if cmd := m.serverMessageHandler(m, msg.Msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		cmds = append(cmds, m.listenForMessages())

	case tea.KeyMsg:
		if m.keyHandler != nil {
			handled, keyCmd := m.keyHandler(m, msg)
			if keyCmd != nil {
				cmds = append(cmds, keyCmd)
			}
			if handled {
				return m, tea.Batch(cmds...)
			}
		}
	}

	newInput, cmd := m.input.Update(msg)
	*m.input = newInput
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the model.
func (m *OnlineModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.phase {
	case PhaseConnecting:
		content = m.connectingView()
	default:
		if m.viewRenderer != nil {
			content = m.viewRenderer(m, m.phase)
		} else {
			content = "View renderer not initialized"
		}
	}

	return common.DocStyle.Render(content)
}

// SetViewRenderer sets the view rendering function.
func (m *OnlineModel) SetViewRenderer(fn func(Model, GamePhase) string) {
	m.viewRenderer = fn
}

// SetKeyHandler sets the keyboard event handler function.
func (m *OnlineModel) SetKeyHandler(fn func(Model, tea.KeyMsg) (bool, tea.Cmd)) {
	m.keyHandler = fn
}

// SetServerMessageHandler sets the server message handler function.
func (m *OnlineModel) SetServerMessageHandler(fn func(Model, *protocol.Message) tea.Cmd) {
	m.serverMessageHandler = fn
}

func (m *OnlineModel) connectingView() string {
	text := "正在连接服务器..."
	if m.error != "" {
		text = common.ErrorStyle.Render(m.error)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}
