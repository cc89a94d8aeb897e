// Package codec 负责扁平 JSON 信封的编解码与 payload 校验
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// ErrInvalidFormat 帧不是合法的 JSON 对象
var ErrInvalidFormat = errors.New("invalid message format")

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewMessage 创建一个新消息，payload 的字段与 type 平铺在同一对象中。
// msgType 为空时不写入 type 字段。
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	data := []byte("{}")
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
		}
		if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
			return nil, fmt.Errorf("%s payload is not a JSON object", msgType)
		}
	}

	if msgType != "" {
		var err error
		data, err = sjson.SetBytes(data, "type", string(msgType))
		if err != nil {
			return nil, fmt.Errorf("set type %s: %w", msgType, err)
		}
	}

	return &protocol.Message{Type: msgType, Payload: data}, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 返回消息的线上字节
func Encode(m *protocol.Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("nil message")
	}
	if len(m.Payload) == 0 {
		return sjson.SetBytes([]byte("{}"), "type", string(m.Type))
	}
	return m.Payload, nil
}

// Decode 解析一帧入站数据。缺少字符串 type 字段时 Type 为空，由路由层按未知类型处理。
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func Decode(data []byte) (*protocol.Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidFormat
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrInvalidFormat
	}

	msg := GetMessage()
	if t := root.Get("type"); t.Type == gjson.String {
		msg.Type = protocol.MessageType(t.Str)
	}
	msg.Payload = data
	return msg, nil
}

// ParsePayload 解析消息字段到指定类型并执行 validate 标签校验
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, err
		}
	}
	if err := validate.Struct(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText 创建带自定义文本的错误消息
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	return MustNewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
}

// NewInlineError 创建无 type 字段的协议错误回复，如 {"error":"Unknown message type"}
func NewInlineError(text string) *protocol.Message {
	return MustNewMessage("", protocol.InlineErrorPayload{Error: text})
}
