//go:build !production

package room

import "github.com/MJDaws0n/Tetris/internal/game/territory"

// AddRoomForTest 添加房间用于测试
func (rm *RoomManager) AddRoomForTest(room *Room) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.rooms[room.Code] = room
	for _, p := range room.players {
		rm.byClient[p.ConnID()] = room.Code
	}
}

// SetGridForTest 直接设置网格并重新统计领地
func (r *Room) SetGridForTest(g territory.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grid = g
	r.recountLocked()
}
