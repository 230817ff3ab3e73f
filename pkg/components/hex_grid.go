package components

import "github.com/decker502/fruitpop/pkg/ecs"

// CellID 格子在网格数组中的下标，网格重建前保持不变
type CellID int

// NoCell 表示不存在的格子
const NoCell CellID = -1

// PassTag 单次消除计算中格子的临时标记
// 一个格子同一时刻只会处于一种状态
type PassTag uint8

const (
	// TagNone 未访问
	TagNone PassTag = iota
	// TagPendingDelete 将被移除（匹配或掉落）
	TagPendingDelete
	// TagSearching 正在当前连通性搜索路径上
	TagSearching
	// TagSecure 已证明与顶行相连
	TagSecure
)

// String 返回标记名称，便于日志输出
func (t PassTag) String() string {
	switch t {
	case TagPendingDelete:
		return "PendingDelete"
	case TagSearching:
		return "Searching"
	case TagSecure:
		return "Secure"
	default:
		return "None"
	}
}

// Cell 网格中的一个格子
type Cell struct {
	Row int
	Col int

	// Occupant 占用该格子的泡泡实体，0 表示空格子
	Occupant ecs.EntityID

	// Neighbors 相邻格子，网格建立后不再变化
	Neighbors []CellID

	tag    PassTag
	tagGen uint32
}

// HexGridComponent 六边形交错网格
//
// 偶数行有 MaxColumns 个格子，奇数行少一个；第 0 行为顶行（锚定行），
// 顶行中的泡泡永远视为有支撑。
//
// 临时标记带有世代号：只有 tagGen == Generation 的标记才有效，
// 每次计算结束推进 Generation，所有标记随之失效。
type HexGridComponent struct {
	MaxRows    int
	MaxColumns int

	// Cells 所有格子，按行优先排列
	Cells []Cell

	// RowStart 每行第一个格子的下标
	RowStart []CellID

	// Counter 棋盘上各类型泡泡数量
	Counter *TypeCounter

	// Generation 当前计算世代号，从 1 开始
	Generation uint32
}

// ColumnsInRow 返回指定行的格子数量，越界返回 0
func (g *HexGridComponent) ColumnsInRow(row int) int {
	if row < 0 || row >= g.MaxRows {
		return 0
	}
	if row%2 != 0 {
		return g.MaxColumns - 1
	}
	return g.MaxColumns
}

// IsValidPosition 检查行列是否在该行实际宽度内
func (g *HexGridComponent) IsValidPosition(row, col int) bool {
	return col >= 0 && col < g.ColumnsInRow(row)
}

// CellAt 返回行列对应的格子ID
func (g *HexGridComponent) CellAt(row, col int) (CellID, bool) {
	if !g.IsValidPosition(row, col) {
		return NoCell, false
	}
	return g.RowStart[row] + CellID(col), true
}

// IsValidCell 检查格子ID是否有效
func (g *HexGridComponent) IsValidCell(id CellID) bool {
	return id >= 0 && int(id) < len(g.Cells)
}

// IsOccupied 检查格子是否有泡泡
func (g *HexGridComponent) IsOccupied(id CellID) bool {
	return g.Cells[id].Occupant != 0
}

// Tag 返回格子在当前世代的标记
func (g *HexGridComponent) Tag(id CellID) PassTag {
	c := &g.Cells[id]
	if c.tagGen != g.Generation {
		return TagNone
	}
	return c.tag
}

// SetTag 设置格子在当前世代的标记
func (g *HexGridComponent) SetTag(id CellID, tag PassTag) {
	c := &g.Cells[id]
	c.tag = tag
	c.tagGen = g.Generation
}

// AdvanceGeneration 结束本次计算，使所有标记失效
func (g *HexGridComponent) AdvanceGeneration() {
	g.Generation++
	if g.Generation == 0 {
		// 世代号回绕时清空旧标记，避免与很久以前的标记撞号
		for i := range g.Cells {
			g.Cells[i].tag = TagNone
			g.Cells[i].tagGen = 0
		}
		g.Generation = 1
	}
}
