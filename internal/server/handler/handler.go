package handler

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/MJDaws0n/Tetris/internal/anticheat"
	"github.com/MJDaws0n/Tetris/internal/apperrors"
	"github.com/MJDaws0n/Tetris/internal/game/room"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
	"github.com/MJDaws0n/Tetris/internal/server/storage"
	"github.com/MJDaws0n/Tetris/internal/types"
)

const (
	// MaxNameLength 去除空白后名字的最大长度
	MaxNameLength = 20

	defaultPersistTimeout = 5 * time.Second
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server         types.ServerInterface
	RoomManager    *room.RoomManager
	Leaderboard    storage.Leaderboard
	Validator      *anticheat.Validator
	PersistTimeout time.Duration // 对局结束后写排行榜的超时
}

// Handler 消息处理器
type Handler struct {
	server         types.ServerInterface
	roomManager    *room.RoomManager
	leaderboard    storage.Leaderboard
	validator      *anticheat.Validator
	persistTimeout time.Duration
	handlers       map[protocol.MessageType]handlerFunc

	// 追踪后台写入，关闭前等待
	pending sync.WaitGroup
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:         deps.Server,
		roomManager:    deps.RoomManager,
		leaderboard:    deps.Leaderboard,
		validator:      deps.Validator,
		persistTimeout: deps.PersistTimeout,
	}
	if h.persistTimeout <= 0 {
		h.persistTimeout = defaultPersistTimeout
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 单人模式
		protocol.MsgStartGame:   func(c types.ClientInterface, _ *protocol.Message) { h.handleStartGame(c) },
		protocol.MsgSync:        func(c types.ClientInterface, _ *protocol.Message) { h.SendLeaderboard(c) },
		protocol.MsgSubmitScore: h.handleSubmitScore,

		// 房间操作
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },

		// 对战操作
		protocol.MsgStartMultiplayer: h.handleStartMultiplayer,
		protocol.MsgLineClear:        h.handleLineClear,
		protocol.MsgPlayerEliminated: h.handlePlayerEliminated,
		protocol.MsgUpdateScore:      h.handleUpdateScore,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (连接: %s, %d bytes)", msg.Type, client.GetID(), len(msg.Payload))
	client.SendMessage(codec.NewInlineError(protocol.TextUnknownType))
}

// HandleDisconnect 连接断开时隐式离开房间
func (h *Handler) HandleDisconnect(client types.ClientInterface) {
	if client.GetRoom() == "" && h.roomManager.GetRoomByClient(client.GetID()) == nil {
		return
	}
	h.handleLeaveRoom(client)
}

// Wait 等待后台排行榜写入完成
func (h *Handler) Wait() {
	h.pending.Wait()
}

// parse 解析 payload，失败时回复格式错误
func parse[T any](client types.ClientInterface, msg *protocol.Message) (*T, bool) {
	payload, err := codec.ParsePayload[T](msg)
	if err != nil {
		log.Printf("消息 %s 解析失败 (连接: %s): %v", msg.Type, client.GetID(), err)
		client.SendMessage(codec.NewInlineError(protocol.TextInvalidFormat))
		return nil, false
	}
	return payload, true
}

// sendError 把业务错误回复给客户端
func sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	log.Printf("⚠️ 处理请求失败 (连接: %s): %v", client.GetID(), err)
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeUnknown))
}
