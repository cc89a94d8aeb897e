package client

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MJDaws0n/Tetris/internal/logger"
)

const (
	maxReconnectAttempts = 5
	reconnectInterval    = time.Second
	maxReconnectBackoff  = 30 * time.Second
)

// connectionLost 读协程退出时调用。主动关闭则通知 OnClose，否则尝试重连。
// 服务端没有会话恢复：重连后是一个全新的连接，房间身份已经失效。
func (c *Client) connectionLost(conn *websocket.Conn) {
	c.mu.RLock()
	current := c.conn == conn
	closed := c.closed
	auto := c.autoReconnect
	c.mu.RUnlock()

	if !current {
		return
	}
	if closed || !auto {
		c.Close()
		if c.OnClose != nil {
			c.OnClose()
		}
		return
	}
	if c.reconnecting.CompareAndSwap(false, true) {
		go c.tryReconnect()
	}
}

// tryReconnect 指数退避重连
func (c *Client) tryReconnect() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			c.reconnecting.Store(false)
		}
	}()

	backoff := reconnectInterval
	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		if c.OnReconnecting != nil {
			c.OnReconnecting(attempt, maxReconnectAttempts)
		}
		log.Printf("🔄 尝试重连 (%d/%d)...", attempt, maxReconnectAttempts)

		select {
		case <-time.After(backoff):
		case <-c.done:
			c.reconnecting.Store(false)
			return
		}
		backoff = min(backoff*2, maxReconnectBackoff)

		conn, err := dial(c.ServerURL)
		if err != nil {
			log.Printf("重连失败: %v", err)
			continue
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			_ = conn.Close()
			c.reconnecting.Store(false)
			return
		}
		c.conn = conn
		c.send = make(chan []byte, sendBufferSize)
		send := c.send
		c.mu.Unlock()

		c.startPumps(conn, send)

		c.reconnecting.Store(false)
		log.Printf("✅ 重连成功")
		if c.OnReconnect != nil {
			c.OnReconnect()
		}
		return
	}

	log.Printf("❌ 重连失败，已达最大尝试次数")
	c.reconnecting.Store(false)
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}
