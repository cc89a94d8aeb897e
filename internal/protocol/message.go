package protocol

import "encoding/json"

// Message 一帧消息。线上格式为扁平 JSON 对象，type 字段与其它字段同级；
// Payload 保存完整的原始帧。
type Message struct {
	Type    MessageType
	Payload json.RawMessage
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 单人模式
	MsgStartGame   MessageType = "start_game"   // 开始单人游戏（创建防作弊会话）
	MsgSync        MessageType = "sync"         // 请求排行榜
	MsgSubmitScore MessageType = "submit_score" // 提交单人成绩

	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgLeaveRoom  MessageType = "leave_room"  // 离开房间

	// 对战操作
	MsgStartMultiplayer MessageType = "start_multiplayer" // 房主开始对战
	MsgLineClear        MessageType = "line_clear"        // 消行
	MsgPlayerEliminated MessageType = "player_eliminated" // 玩家出局（双向）
	MsgUpdateScore      MessageType = "update_score"      // 分数同步
)

// 服务端 → 客户端 消息类型
const (
	MsgSessionStarted MessageType = "session_started" // 单人会话已创建
	MsgScores         MessageType = "scores"          // 排行榜快照

	// 房间相关
	MsgRoomCreated  MessageType = "room_created"  // 房间创建成功
	MsgRoomJoined   MessageType = "room_joined"   // 加入房间成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开

	// 对战流程
	MsgGameStarted MessageType = "game_started" // 对战开始
	MsgGridUpdate  MessageType = "grid_update"  // 领地更新
	MsgScoreUpdate MessageType = "score_update" // 分数更新
	MsgGameOver    MessageType = "game_over"    // 对战结束

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// 无 type 字段的内联回复
const (
	TextUnknownType   = "Unknown message type"
	TextInvalidFormat = "Invalid message format"
)
