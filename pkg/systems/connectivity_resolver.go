package systems

import (
	"fmt"
	"log"

	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/types"
)

// MinMatchSize 同类型连通块至少需要的泡泡数量
const MinMatchSize = 3

// RemovedToken 一次消除中被移除的泡泡
type RemovedToken struct {
	Cell    components.CellID
	Row     int
	Col     int
	Type    types.TokenType
	Dropped bool // true 表示因失去支撑而掉落，false 表示被匹配消除
}

// PlacementResult 放置一个泡泡后的消除结果
type PlacementResult struct {
	Removed      []RemovedToken
	TotalRemoved int
	Matched      int
	Dropped      int
}

// ConnectivityResolver 泡泡放置后的消除计算
//
// 两个阶段，按顺序执行：
//  1. 从新放置的格子出发做同类型深度优先搜索，连通数量 >= 3 时构成匹配
//  2. 只有发生匹配时才做掉落检测：检查被消除格子的每个相邻泡泡，
//     找出不再与顶行相连的泡泡
//
// 所有临时标记都挂在网格的当前世代上，计算结束时推进世代统一清除。
type ConnectivityResolver struct {
	grid *HexGridSystem
}

// NewConnectivityResolver 创建消除计算器
func NewConnectivityResolver(grid *HexGridSystem) *ConnectivityResolver {
	return &ConnectivityResolver{
		grid: grid,
	}
}

// PlaceToken 在空格子上放置泡泡并立即结算
// 参数:
//   - id: 泡泡停靠的格子，调用方保证放置前为空
//   - tokenType: 泡泡类型
//
// 返回:
//   - PlacementResult: 被移除的泡泡（可能为空）
//   - error: 目标格子已被占用或网格未建立时返回 ErrInvariantViolation
func (r *ConnectivityResolver) PlaceToken(id components.CellID, tokenType types.TokenType) (PlacementResult, error) {
	if err := r.grid.OccupyCell(id, tokenType); err != nil {
		log.Printf("[ConnectivityResolver] Invariant violation on place: %v", err)
		return PlacementResult{}, fmt.Errorf("place %s at cell %d: %w", tokenType, id, err)
	}
	return r.Resolve(id)
}

// Resolve 以指定格子上的泡泡为起点做匹配和掉落结算
//
// 返回:
//   - PlacementResult: 被移除的泡泡，匹配的在前，掉落的在后
//   - error: 格子为空或网格未建立时返回 ErrInvariantViolation
func (r *ConnectivityResolver) Resolve(id components.CellID) (PlacementResult, error) {
	grid, err := r.grid.Grid()
	if err != nil {
		log.Printf("[ConnectivityResolver] Invariant violation on resolve: %v", err)
		return PlacementResult{}, err
	}
	if !grid.IsValidCell(id) {
		err := fmt.Errorf("%w: cell %d does not exist", ErrInvariantViolation, id)
		log.Printf("[ConnectivityResolver] Invariant violation on resolve: %v", err)
		return PlacementResult{}, err
	}
	tokenType, ok := r.grid.tokenType(grid, id)
	if !ok {
		cell := grid.Cells[id]
		err := fmt.Errorf("%w: match search on empty cell (%d, %d)", ErrInvariantViolation, cell.Row, cell.Col)
		log.Printf("[ConnectivityResolver] Invariant violation on resolve: %v", err)
		return PlacementResult{}, err
	}

	// 无论结果如何，结束时清除本次的所有标记
	defer grid.AdvanceGeneration()

	matched := r.collectMatch(grid, id, tokenType)
	if len(matched) < MinMatchSize {
		return PlacementResult{}, nil
	}

	dropped := r.collectDrops(grid, matched)

	result := PlacementResult{
		Removed: make([]RemovedToken, 0, len(matched)+len(dropped)),
	}
	for _, cellID := range matched {
		if err := r.release(grid, cellID, false, &result); err != nil {
			return result, err
		}
	}
	for _, cellID := range dropped {
		if err := r.release(grid, cellID, true, &result); err != nil {
			return result, err
		}
	}
	r.grid.FlushReleased()

	log.Printf("[ConnectivityResolver] %s at (%d, %d): matched=%d dropped=%d",
		tokenType, grid.Cells[id].Row, grid.Cells[id].Col, result.Matched, result.Dropped)
	return result, nil
}

func (r *ConnectivityResolver) release(grid *components.HexGridComponent, id components.CellID, dropped bool, result *PlacementResult) error {
	tokenType, err := r.grid.ReleaseCell(id)
	if err != nil {
		return err
	}
	cell := grid.Cells[id]
	result.Removed = append(result.Removed, RemovedToken{
		Cell:    id,
		Row:     cell.Row,
		Col:     cell.Col,
		Type:    tokenType,
		Dropped: dropped,
	})
	result.TotalRemoved++
	if dropped {
		result.Dropped++
	} else {
		result.Matched++
	}
	return nil
}

// collectMatch 从 start 出发收集同类型连通块，访问过的格子标记为 PendingDelete
func (r *ConnectivityResolver) collectMatch(grid *components.HexGridComponent, start components.CellID, tokenType types.TokenType) []components.CellID {
	grid.SetTag(start, components.TagPendingDelete)
	matched := []components.CellID{start}
	stack := []components.CellID{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range grid.Cells[current].Neighbors {
			if grid.Tag(n) == components.TagPendingDelete {
				continue
			}
			if t, ok := r.grid.tokenType(grid, n); !ok || t != tokenType {
				continue
			}
			grid.SetTag(n, components.TagPendingDelete)
			matched = append(matched, n)
			stack = append(stack, n)
		}
	}

	return matched
}

// collectDrops 找出因本次匹配而失去支撑的泡泡
// 只需从被消除格子的相邻泡泡出发：其他泡泡的连通性没有变化
func (r *ConnectivityResolver) collectDrops(grid *components.HexGridComponent, matched []components.CellID) []components.CellID {
	var dropped []components.CellID
	for _, m := range matched {
		for _, n := range grid.Cells[m].Neighbors {
			if !grid.IsOccupied(n) || grid.Tag(n) != components.TagNone {
				continue
			}
			dropped = append(dropped, exploreSupport(grid, n)...)
		}
	}
	return dropped
}

// exploreSupport 从 start 出发搜索支撑
//
// 碰到顶行或已证明安全的格子时立即停止，本次访问过的格子全部标记 Secure；
// 搜完整个连通块仍没有支撑时，全部标记 PendingDelete 并返回。
// PendingDelete 的格子视为不提供支撑。同一世代内每个格子最多展开一次。
func exploreSupport(grid *components.HexGridComponent, start components.CellID) []components.CellID {
	visited := []components.CellID{start}
	grid.SetTag(start, components.TagSearching)
	if grid.Cells[start].Row == 0 {
		markAll(grid, visited, components.TagSecure)
		return nil
	}

	stack := []components.CellID{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range grid.Cells[current].Neighbors {
			if !grid.IsOccupied(n) {
				continue
			}
			switch grid.Tag(n) {
			case components.TagSecure:
				markAll(grid, visited, components.TagSecure)
				return nil
			case components.TagPendingDelete, components.TagSearching:
				continue
			}

			grid.SetTag(n, components.TagSearching)
			visited = append(visited, n)
			if grid.Cells[n].Row == 0 {
				markAll(grid, visited, components.TagSecure)
				return nil
			}
			stack = append(stack, n)
		}
	}

	markAll(grid, visited, components.TagPendingDelete)
	return visited
}

func markAll(grid *components.HexGridComponent, ids []components.CellID, tag components.PassTag) {
	for _, id := range ids {
		grid.SetTag(id, tag)
	}
}
