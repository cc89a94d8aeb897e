package room

import (
	"strings"
	"sync"
	"time"

	"github.com/MJDaws0n/Tetris/internal/game/territory"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/types"
)

const (
	MaxPlayers     = 8 // 房间人数上限
	MinPlayers     = 2 // 开局最少人数
	roomCodeLength = 6
	// 去掉易混淆的 I/O/0/1，共 32 个字符
	roomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Palette 玩家颜色，按 (id-1)%8 取色
var Palette = [MaxPlayers]string{
	"#ff453a",
	"#0a84ff",
	"#30d158",
	"#ffd60a",
	"#bf5af2",
	"#ff9f0a",
	"#64d2ff",
	"#ff375f",
}

// Player 房间中的玩家
type Player struct {
	Client        types.ClientInterface
	ID            int // 1-8，对局内不变
	Name          string
	Color         string
	Score         int
	Lines         int
	TilesOwned    int
	LastClearSize int
	Eliminated    bool
}

// ConnID 返回玩家的连接 ID
func (p *Player) ConnID() string {
	return p.Client.GetID()
}

// ScoreRecord 对局结束后需要写入排行榜的成绩
type ScoreRecord struct {
	Name     string
	Score    int
	HardMode bool
}

// Room 一局多人对战的权威状态。所有字段由 mu 保护；
// Run 串行化"命令 + 广播"，保证出站消息顺序与状态变更顺序一致。
type Room struct {
	Code      string
	CreatedAt time.Time

	host       string // 房主连接 ID
	state      RoomState
	hardMode   bool
	grid       territory.Grid
	players    []*Player // 按加入顺序
	winner     *Player
	rankings   []protocol.PlayerInfo
	persisted  bool
	emptySince time.Time

	mu    sync.RWMutex
	runMu sync.Mutex
}

// NewRoom 创建房间，房主为 1 号玩家
func NewRoom(code string, host types.ClientInterface, hostName string) *Room {
	r := &Room{
		Code:      code,
		CreatedAt: time.Now(),
		host:      host.GetID(),
		state:     RoomStateLobby,
		grid:      territory.NewGrid(),
		players:   make([]*Player, 0, MaxPlayers),
	}
	r.players = append(r.players, &Player{
		Client: host,
		ID:     1,
		Name:   hostName,
		Color:  Palette[0],
	})
	return r
}

// Run 串行执行 fn。处理器在其中调用命令并广播结果。
func (r *Room) Run(fn func()) {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	fn()
}

// State 返回房间状态
func (r *Room) State() RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// HardMode 返回是否困难模式
func (r *Room) HardMode() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hardMode
}

// Host 返回房主连接 ID
func (r *Room) Host() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.host
}

// PlayerCount 返回玩家数量
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Winner 返回胜者快照
func (r *Room) Winner() *protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.winner == nil {
		return nil
	}
	info := r.infoLocked(r.winner)
	return &info
}

// Rankings 返回对局结束时的排名（对局未结束时为 nil）
func (r *Room) Rankings() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]protocol.PlayerInfo(nil), r.rankings...)
}

// GridSnapshot 返回网格副本
func (r *Room) GridSnapshot() territory.Grid {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.grid
}

// PlayersInfo 返回所有玩家快照（按加入顺序）
func (r *Room) PlayersInfo() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playersInfoLocked()
}

// PlayerInfo 返回指定连接的玩家快照
func (r *Room) PlayerInfo(connID string) (protocol.PlayerInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.findLocked(connID)
	if p == nil {
		return protocol.PlayerInfo{}, false
	}
	return r.infoLocked(p), true
}

// EmptySince 返回房间变空的时间，房间有人时为零值
func (r *Room) EmptySince() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emptySince
}

// Broadcast 广播消息给房间内所有玩家
func (r *Room) Broadcast(msg *protocol.Message) {
	r.BroadcastExcept("", msg)
}

// BroadcastExcept 广播消息给除指定连接外的所有玩家
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.Client != nil && p.ConnID() != excludeID {
			p.Client.SendMessage(msg)
		}
	}
}

func (r *Room) findLocked(connID string) *Player {
	for _, p := range r.players {
		if p.ConnID() == connID {
			return p
		}
	}
	return nil
}

func (r *Room) nameTakenLocked(name string) bool {
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// nextIDLocked 返回 1..8 中最小的空闲 ID
func (r *Room) nextIDLocked() int {
	used := make(map[int]bool, len(r.players))
	for _, p := range r.players {
		used[p.ID] = true
	}
	for id := 1; id <= MaxPlayers; id++ {
		if !used[id] {
			return id
		}
	}
	return 0
}

func (r *Room) infoLocked(p *Player) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:         p.ID,
		Name:       p.Name,
		Color:      p.Color,
		IsHost:     p.ConnID() == r.host,
		Eliminated: p.Eliminated,
		Score:      p.Score,
		Lines:      p.Lines,
		TilesOwned: p.TilesOwned,
	}
}

func (r *Room) playersInfoLocked() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		infos = append(infos, r.infoLocked(p))
	}
	return infos
}

func (r *Room) aliveLocked() []*Player {
	var alive []*Player
	for _, p := range r.players {
		if !p.Eliminated {
			alive = append(alive, p)
		}
	}
	return alive
}
