package room

import (
	"context"
	"log"
	"math/rand/v2"
	"time"
)

// GenerateCode 生成一个不与现存房间冲突的房间号
func (rm *RoomManager) GenerateCode() string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.generateRoomCode()
}

// generateRoomCode 生成房间号，冲突时无限重试（调用方持有 rm.mu）
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// RegisterSweeper 注册随清理周期执行的附加任务
func (rm *RoomManager) RegisterSweeper(name string, fn Sweeper) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.sweepers[name] = fn
}

// StartCleanup 启动清理协程，ctx 取消后退出
func (rm *RoomManager) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rm.Cleanup(ctx, now)
			}
		}
	}()
}

// Cleanup 删除空置超过 emptyRoomTTL 的房间并执行附加清理任务，返回删除的房间数。
// 有玩家的房间永远不会被清理。
func (rm *RoomManager) Cleanup(ctx context.Context, now time.Time) int {
	rm.mu.Lock()
	removed := 0
	for code, room := range rm.rooms {
		if room.PlayerCount() > 0 {
			continue
		}
		since := room.EmptySince()
		if since.IsZero() {
			since = room.CreatedAt
		}
		if now.Sub(since) > rm.emptyRoomTTL {
			delete(rm.rooms, code)
			removed++
			log.Printf("🧹 房间 %s 空置超时已清理", code)
		}
	}
	sweepers := make(map[string]Sweeper, len(rm.sweepers))
	for name, fn := range rm.sweepers {
		sweepers[name] = fn
	}
	rm.mu.Unlock()

	for name, fn := range sweepers {
		n, err := fn(ctx, now)
		if err != nil {
			log.Printf("⚠️ 清理任务 %s 失败: %v", name, err)
			continue
		}
		if n > 0 {
			log.Printf("🧹 清理任务 %s 清理了 %d 条记录", name, n)
		}
	}

	return removed
}
