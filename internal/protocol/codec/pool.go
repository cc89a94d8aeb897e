package codec

import (
	"sync"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// 入站消息对象池，减少 GC 压力
var messagePool = sync.Pool{
	New: func() any {
		return &protocol.Message{}
	},
}

// GetMessage 从池中获取消息对象
func GetMessage() *protocol.Message {
	return messagePool.Get().(*protocol.Message)
}

// PutMessage 归还消息对象，字段会被清空以免持有引用
func PutMessage(msg *protocol.Message) {
	if msg == nil {
		return
	}
	msg.Type = ""
	msg.Payload = nil
	messagePool.Put(msg)
}
