// Package territory 实现 10×10 领地网格的占领算法
package territory

import (
	"math"
	"sort"
)

const (
	// Size 网格边长
	Size = 10
	// TotalCells 网格格子总数
	TotalCells = Size * Size
	// Unclaimed 无主格子
	Unclaimed = 0
)

// angleEpsilon 角度比较容差
const angleEpsilon = 1e-9

// Grid 领地网格，Grid[y][x] 为所有者 ID（0 表示无主）
type Grid [Size][Size]int

// Cell 网格坐标，y 轴向下
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InitialPositions 玩家首次占领时的落点（四角与边中点），按 (playerID-1)%8 索引
var InitialPositions = [8]Cell{
	{X: 0, Y: 0},
	{X: Size - 1, Y: Size - 1},
	{X: Size - 1, Y: 0},
	{X: 0, Y: Size - 1},
	{X: Size/2 - 1, Y: 0},
	{X: Size / 2, Y: Size - 1},
	{X: 0, Y: Size / 2},
	{X: Size - 1, Y: Size/2 - 1},
}

// NewGrid 创建空网格
func NewGrid() Grid {
	return Grid{}
}

// Reset 清空网格
func (g *Grid) Reset() {
	*g = Grid{}
}

// Owner 返回格子所有者
func (g *Grid) Owner(c Cell) int {
	return g[c.Y][c.X]
}

// ClearOwner 清除某玩家的所有格子，返回清除数量
func (g *Grid) ClearOwner(playerID int) int {
	cleared := 0
	for y := range Size {
		for x := range Size {
			if g[y][x] == playerID {
				g[y][x] = Unclaimed
				cleared++
			}
		}
	}
	return cleared
}

// CountTiles 统计每个所有者的格子数（不含无主格子）
func CountTiles(g *Grid) map[int]int {
	counts := make(map[int]int)
	for y := range Size {
		for x := range Size {
			if owner := g[y][x]; owner != Unclaimed {
				counts[owner]++
			}
		}
	}
	return counts
}

// Capture 为玩家占领 lines 个格子，返回按占领顺序排列的格子。
// 零领地的玩家先落在初始位置（覆盖原所有者），之后逐层顺时针螺旋扩张：
// 每层重新计算边界与质心，按质心方位角（0° 为正北）升序占领，
// 同角度按 (Y, X) 升序。边界为空（全图已归该玩家）时提前结束。
func Capture(g *Grid, playerID, lines int) []Cell {
	if lines <= 0 {
		return nil
	}

	budget := lines
	var claimed []Cell

	if len(ownedCells(g, playerID)) == 0 {
		start := InitialPositions[(playerID-1)%len(InitialPositions)]
		g[start.Y][start.X] = playerID
		claimed = append(claimed, start)
		budget--
	}

	for budget > 0 {
		owned := ownedCells(g, playerID)
		if len(owned) == 0 {
			break
		}
		border := borderCells(g, playerID, owned)
		if len(border) == 0 {
			break
		}
		sortClockwise(border, centroid(owned))

		for _, c := range border {
			if budget == 0 {
				break
			}
			g[c.Y][c.X] = playerID
			claimed = append(claimed, c)
			budget--
		}
	}

	return claimed
}

// ownedCells 返回玩家拥有的格子（行优先）
func ownedCells(g *Grid, playerID int) []Cell {
	var cells []Cell
	for y := range Size {
		for x := range Size {
			if g[y][x] == playerID {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

var neighborOffsets = [4]Cell{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// borderCells 返回与玩家领地正交相邻、且不属于该玩家的格子（去重）
func borderCells(g *Grid, playerID int, owned []Cell) []Cell {
	var seen [Size][Size]bool
	var border []Cell
	for _, c := range owned {
		for _, d := range neighborOffsets {
			x, y := c.X+d.X, c.Y+d.Y
			if x < 0 || x >= Size || y < 0 || y >= Size {
				continue
			}
			if g[y][x] == playerID || seen[y][x] {
				continue
			}
			seen[y][x] = true
			border = append(border, Cell{X: x, Y: y})
		}
	}
	return border
}

type point struct{ x, y float64 }

func centroid(cells []Cell) point {
	var sx, sy float64
	for _, c := range cells {
		sx += float64(c.X)
		sy += float64(c.Y)
	}
	n := float64(len(cells))
	return point{x: sx / n, y: sy / n}
}

// bearing 返回格子相对质心的方位角，0° 正北，顺时针递增，范围 [0, 360)
func bearing(c Cell, from point) float64 {
	dx := float64(c.X) - from.x
	dy := float64(c.Y) - from.y
	deg := math.Atan2(dy, dx)*180/math.Pi + 90
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

func sortClockwise(cells []Cell, center point) {
	angles := make(map[Cell]float64, len(cells))
	for _, c := range cells {
		angles[c] = bearing(c, center)
	}
	sort.SliceStable(cells, func(i, j int) bool {
		ai, aj := angles[cells[i]], angles[cells[j]]
		if math.Abs(ai-aj) > angleEpsilon {
			return ai < aj
		}
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}
