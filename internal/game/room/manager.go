package room

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/MJDaws0n/Tetris/internal/apperrors"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/types"
)

// Sweeper 随房间清理周期一起执行的附加清理任务，返回清理数量
type Sweeper func(ctx context.Context, now time.Time) (int, error)

// RoomManager 房间注册表：房间号 → 房间，以及连接 ID → 房间号的反向索引
type RoomManager struct {
	emptyRoomTTL time.Duration
	rooms        map[string]*Room
	byClient     map[string]string
	sweepers     map[string]Sweeper
	mu           sync.RWMutex
}

// NewRoomManager 创建房间管理器
func NewRoomManager(emptyRoomTTL time.Duration) *RoomManager {
	return &RoomManager{
		emptyRoomTTL: emptyRoomTTL,
		rooms:        make(map[string]*Room),
		byClient:     make(map[string]string),
		sweepers:     make(map[string]Sweeper),
	}
}

// CreateRoom 创建房间，创建者成为房主
func (rm *RoomManager) CreateRoom(client types.ClientInterface, name string) (*Room, protocol.PlayerInfo, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, in := rm.byClient[client.GetID()]; in {
		return nil, protocol.PlayerInfo{}, apperrors.ErrAlreadyInRoom
	}

	code := rm.generateRoomCode()
	room := NewRoom(code, client, name)
	rm.rooms[code] = room
	rm.byClient[client.GetID()] = code
	client.SetRoom(code)

	info, _ := room.PlayerInfo(client.GetID())
	log.Printf("🏠 房间 %s 已创建，房主 %s", code, name)

	return room, info, nil
}

// JoinRoom 加入房间
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code, name string) (*Room, protocol.PlayerInfo, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, in := rm.byClient[client.GetID()]; in {
		return nil, protocol.PlayerInfo{}, apperrors.ErrAlreadyInRoom
	}

	room, exists := rm.rooms[code]
	if !exists {
		return nil, protocol.PlayerInfo{}, apperrors.ErrRoomNotFound
	}

	info, err := room.AddPlayer(client, name)
	if err != nil {
		return nil, protocol.PlayerInfo{}, err
	}

	rm.byClient[client.GetID()] = code
	client.SetRoom(code)

	log.Printf("👤 玩家 %s 加入房间 %s (ID %d)", name, code, info.ID)

	return room, info, nil
}

// LeaveRoom 离开房间，房间空了则立即删除
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) (*Room, LeaveResult, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	code, in := rm.byClient[client.GetID()]
	if !in {
		return nil, LeaveResult{}, apperrors.ErrNotInRoom
	}
	delete(rm.byClient, client.GetID())
	client.SetRoom("")

	room, exists := rm.rooms[code]
	if !exists {
		return nil, LeaveResult{}, apperrors.ErrRoomNotFound
	}

	result, removed := room.RemovePlayer(client.GetID())
	if !removed {
		return nil, LeaveResult{}, apperrors.ErrNotInRoom
	}

	log.Printf("👋 玩家 %s 离开房间 %s", result.Player.Name, code)

	if result.Empty {
		delete(rm.rooms, code)
		log.Printf("🏠 房间 %s 已解散", code)
	}

	return room, result, nil
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// GetRoomByClient 通过连接 ID 获取所在房间
func (rm *RoomManager) GetRoomByClient(connID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	code, in := rm.byClient[connID]
	if !in {
		return nil
	}
	return rm.rooms[code]
}

// RoomCount 返回房间数量
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// GetActiveGamesCount 获取进行中的对局数量
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		if room.State() == RoomStatePlaying {
			count++
		}
	}
	return count
}
