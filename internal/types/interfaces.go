package types

import (
	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	IsMaintenanceMode() bool
	GetOnlineCount() int
	// Broadcast 发送给所有在线连接
	Broadcast(msg *protocol.Message)
}

// ClientInterface 定义客户端接口。GetID 返回连接建立时生成的不透明连接 ID，
// 房间成员关系以它为键。
type ClientInterface interface {
	GetID() string
	GetRoom() string
	SetRoom(code string)
	SendMessage(msg *protocol.Message)
	Close()
}
