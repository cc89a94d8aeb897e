package room

import (
	"log"
	"sort"
	"time"

	"github.com/MJDaws0n/Tetris/internal/apperrors"
	"github.com/MJDaws0n/Tetris/internal/game/territory"
	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/types"
)

// GameOverResult 对局结束结果
type GameOverResult struct {
	Winner   *protocol.PlayerInfo
	Rankings []protocol.PlayerInfo
	Grid     territory.Grid
	Players  []protocol.PlayerInfo
	// Persist 需要写入排行榜的成绩，每局只会产生一次
	Persist []ScoreRecord
}

// LeaveResult 玩家离开结果
type LeaveResult struct {
	Player    protocol.PlayerInfo
	Players   []protocol.PlayerInfo
	NewHostID *int // 房主转移后新房主的玩家 ID
	Empty     bool
	GameOver  *GameOverResult
}

// StartResult 开局结果
type StartResult struct {
	Players  []protocol.PlayerInfo
	Grid     territory.Grid
	HardMode bool
}

// LineClearResult 消行结果
type LineClearResult struct {
	PlayerID   int
	Lines      int
	Claimed    []territory.Cell
	Grid       territory.Grid
	Players    []protocol.PlayerInfo
	Eliminated []int // 本次因失去全部领地出局的玩家 ID
	GameOver   *GameOverResult
}

// EliminationResult 出局结果
type EliminationResult struct {
	PlayerID int
	Players  []protocol.PlayerInfo
	GameOver *GameOverResult
}

// AddPlayer 加入玩家，仅大厅阶段有效
func (r *Room) AddPlayer(client types.ClientInterface, name string) (protocol.PlayerInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RoomStateLobby {
		return protocol.PlayerInfo{}, apperrors.ErrGameStarted
	}
	if len(r.players) >= MaxPlayers {
		return protocol.PlayerInfo{}, apperrors.ErrRoomFull
	}
	if r.findLocked(client.GetID()) != nil {
		return protocol.PlayerInfo{}, apperrors.ErrAlreadyInRoom
	}
	if r.nameTakenLocked(name) {
		return protocol.PlayerInfo{}, apperrors.ErrNameTaken
	}

	id := r.nextIDLocked()
	p := &Player{
		Client: client,
		ID:     id,
		Name:   name,
		Color:  Palette[(id-1)%MaxPlayers],
	}
	r.players = append(r.players, p)
	r.emptySince = time.Time{}

	return r.infoLocked(p), nil
}

// RemovePlayer 移除玩家。大厅阶段房主离开时转移给最早加入的玩家；
// 对战中离开的玩家领地被清空，存活玩家不足两人时对局结束。
func (r *Room) RemovePlayer(connID string) (LeaveResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.players {
		if p.ConnID() == connID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return LeaveResult{}, false
	}

	leaving := r.players[idx]
	result := LeaveResult{Player: r.infoLocked(leaving)}
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	if len(r.players) == 0 {
		r.emptySince = time.Now()
		result.Empty = true
		return result, true
	}

	if r.host == connID && r.state == RoomStateLobby {
		next := r.players[0]
		r.host = next.ConnID()
		id := next.ID
		result.NewHostID = &id
		log.Printf("👑 房间 %s 房主转移给 %s", r.Code, next.Name)
	}

	if r.state == RoomStatePlaying {
		r.grid.ClearOwner(leaving.ID)
		r.recountLocked()
		if alive := r.aliveLocked(); len(alive) <= 1 {
			result.GameOver = r.finishLocked(firstOrNil(alive))
		}
	}

	result.Players = r.playersInfoLocked()
	return result, true
}

// StartMatch 房主开局
func (r *Room) StartMatch(connID string, hardMode bool) (StartResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findLocked(connID) == nil {
		return StartResult{}, apperrors.ErrNotInRoom
	}
	if r.host != connID {
		return StartResult{}, apperrors.ErrNotHost
	}
	if r.state != RoomStateLobby {
		return StartResult{}, apperrors.ErrGameStarted
	}
	if len(r.players) < MinPlayers {
		return StartResult{}, apperrors.ErrNotEnoughPlayers
	}

	r.hardMode = hardMode
	r.grid.Reset()
	for _, p := range r.players {
		p.Score = 0
		p.Lines = 0
		p.TilesOwned = 0
		p.LastClearSize = 0
		p.Eliminated = false
	}
	r.state = RoomStatePlaying

	log.Printf("🎮 房间 %s 开始对战，%d 名玩家，困难模式=%v", r.Code, len(r.players), hardMode)

	return StartResult{
		Players:  r.playersInfoLocked(),
		Grid:     r.grid,
		HardMode: r.hardMode,
	}, nil
}

// ApplyLineClear 处理消行：累计行数、覆盖分数、占领领地并判定胜负
func (r *Room) ApplyLineClear(connID string, lines, score int) (LineClearResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.activePlayerLocked(connID)
	if err != nil {
		return LineClearResult{}, err
	}

	p.Lines += lines
	p.Score = score
	p.LastClearSize = lines

	before := territory.CountTiles(&r.grid)
	claimed := territory.Capture(&r.grid, p.ID, lines)
	after := r.recountLocked()

	result := LineClearResult{
		PlayerID: p.ID,
		Lines:    lines,
		Claimed:  claimed,
	}

	for _, other := range r.players {
		if other == p || other.Eliminated {
			continue
		}
		if before[other.ID] > 0 && after[other.ID] == 0 {
			other.Eliminated = true
			result.Eliminated = append(result.Eliminated, other.ID)
			log.Printf("💥 房间 %s 玩家 %s 失去全部领地", r.Code, other.Name)
		}
	}

	if winner := r.checkWinLocked(); winner != nil {
		result.GameOver = r.finishLocked(winner)
	} else if alive := r.aliveLocked(); len(alive) <= 1 {
		result.GameOver = r.finishLocked(firstOrNil(alive))
	}

	result.Grid = r.grid
	result.Players = r.playersInfoLocked()
	return result, nil
}

// ApplyElimination 玩家出局（顶出），score 非空时覆盖分数
func (r *Room) ApplyElimination(connID string, score *int) (EliminationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.activePlayerLocked(connID)
	if err != nil {
		return EliminationResult{}, err
	}

	p.Eliminated = true
	if score != nil {
		p.Score = *score
	}

	result := EliminationResult{PlayerID: p.ID}
	if alive := r.aliveLocked(); len(alive) <= 1 {
		result.GameOver = r.finishLocked(firstOrNil(alive))
	}
	result.Players = r.playersInfoLocked()
	return result, nil
}

// UpdateScore 同步分数与行数，仅对战中有效
func (r *Room) UpdateScore(connID string, score, lines *int) (protocol.ScoreUpdatePayload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findLocked(connID)
	if p == nil {
		return protocol.ScoreUpdatePayload{}, apperrors.ErrNotInRoom
	}
	if r.state != RoomStatePlaying {
		return protocol.ScoreUpdatePayload{}, apperrors.ErrGameNotStarted
	}

	if score != nil {
		p.Score = *score
	}
	if lines != nil {
		p.Lines = *lines
	}
	return protocol.ScoreUpdatePayload{PlayerID: p.ID, Score: p.Score, Lines: p.Lines}, nil
}

// CalculateRankings 计算排名：胜者第一，其余存活优先，再按领地、分数降序，
// 仍相同时保持加入顺序
func (r *Room) CalculateRankings() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rankingsLocked()
}

func (r *Room) rankingsLocked() []protocol.PlayerInfo {
	ordered := make([]*Player, len(r.players))
	copy(ordered, r.players)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if (a == r.winner) != (b == r.winner) {
			return a == r.winner
		}
		if a.Eliminated != b.Eliminated {
			return !a.Eliminated
		}
		if a.TilesOwned != b.TilesOwned {
			return a.TilesOwned > b.TilesOwned
		}
		return a.Score > b.Score
	})

	rankings := make([]protocol.PlayerInfo, 0, len(ordered))
	for _, p := range ordered {
		rankings = append(rankings, r.infoLocked(p))
	}
	return rankings
}

func (r *Room) activePlayerLocked(connID string) (*Player, error) {
	p := r.findLocked(connID)
	if p == nil {
		return nil, apperrors.ErrNotInRoom
	}
	switch r.state {
	case RoomStateLobby:
		return nil, apperrors.ErrGameNotStarted
	case RoomStateFinished:
		return nil, apperrors.ErrGameFinished
	}
	if p.Eliminated {
		return nil, apperrors.ErrPlayerEliminated
	}
	return p, nil
}

// recountLocked 重新统计所有玩家的领地数
func (r *Room) recountLocked() map[int]int {
	counts := territory.CountTiles(&r.grid)
	for _, p := range r.players {
		p.TilesOwned = counts[p.ID]
	}
	return counts
}

// checkWinLocked 返回按加入顺序第一个占满全图的存活玩家
func (r *Room) checkWinLocked() *Player {
	for _, p := range r.players {
		if !p.Eliminated && p.TilesOwned == territory.TotalCells {
			return p
		}
	}
	return nil
}

// finishLocked 结束对局，成绩只会交付一次
func (r *Room) finishLocked(winner *Player) *GameOverResult {
	r.state = RoomStateFinished
	r.winner = winner
	r.rankings = r.rankingsLocked()

	result := &GameOverResult{
		Rankings: append([]protocol.PlayerInfo(nil), r.rankings...),
		Grid:     r.grid,
		Players:  r.playersInfoLocked(),
	}
	if winner != nil {
		info := r.infoLocked(winner)
		result.Winner = &info
		log.Printf("🏆 房间 %s 对局结束，胜者 %s", r.Code, winner.Name)
	} else {
		log.Printf("🏁 房间 %s 对局结束，无胜者", r.Code)
	}

	if !r.persisted {
		r.persisted = true
		for _, p := range r.players {
			if !p.Eliminated && p.Score > 0 {
				result.Persist = append(result.Persist, ScoreRecord{
					Name:     p.Name,
					Score:    p.Score,
					HardMode: r.hardMode,
				})
			}
		}
	}
	return result
}

func firstOrNil(players []*Player) *Player {
	if len(players) == 0 {
		return nil
	}
	return players[0]
}
