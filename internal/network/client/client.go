package client

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
	sendBufferSize   = 256
	recvBufferSize   = 256
)

var (
	ErrClosed     = errors.New("connection closed")
	ErrBufferFull = errors.New("send buffer full")
	ErrTimeout    = errors.New("receive timeout")
)

// Client 终端客户端的 WebSocket 连接
type Client struct {
	ServerURL string
	conn      *websocket.Conn
	send      chan []byte
	receive   chan *protocol.Message
	done      chan struct{}

	// 回调
	OnMessage      func(*protocol.Message) // 消息回调
	OnError        func(error)             // 错误回调
	OnClose        func()                  // 关闭回调（不再重连）
	OnReconnecting func(attempt, max int)  // 正在重连
	OnReconnect    func()                  // 重连成功，服务端已把本连接视为新玩家

	mu            sync.RWMutex
	closed        bool
	reconnecting  atomic.Bool
	autoReconnect bool
}

// NewClient 创建客户端
func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL:     serverURL,
		send:          make(chan []byte, sendBufferSize),
		receive:       make(chan *protocol.Message, recvBufferSize),
		done:          make(chan struct{}),
		autoReconnect: true,
	}
}

// SetAutoReconnect 开关断线自动重连
func (c *Client) SetAutoReconnect(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoReconnect = enabled
}

// Connect 连接服务器
func (c *Client) Connect() error {
	conn, err := dial(c.ServerURL)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	send := c.send
	c.mu.Unlock()

	c.startPumps(conn, send)
	return nil
}

// startPumps 为一条连接启动读写协程，读协程退出时通知写协程停止
func (c *Client) startPumps(conn *websocket.Conn, send <-chan []byte) {
	stop := make(chan struct{})
	go c.readPump(conn, stop)
	go c.writePump(conn, send, stop)
}

func dial(url string) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := dialer.Dial(url, nil)
	return conn, err
}

// SendMessage 发送消息
func (c *Client) SendMessage(msg *protocol.Message) error {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Receive 接收消息 (阻塞)
func (c *Client) Receive() (*protocol.Message, error) {
	select {
	case msg := <-c.receive:
		return msg, nil
	case <-c.done:
		return nil, ErrClosed
	}
}

// ReceiveWithTimeout 带超时接收消息
func (c *Client) ReceiveWithTimeout(timeout time.Duration) (*protocol.Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-c.receive:
		return msg, nil
	case <-timer.C:
		return nil, ErrTimeout
	case <-c.done:
		return nil, ErrClosed
	}
}

// Close 主动关闭连接，之后不会再重连
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil && !c.reconnecting.Load()
}

// IsReconnecting 是否正在重连
func (c *Client) IsReconnecting() bool {
	return c.reconnecting.Load()
}
