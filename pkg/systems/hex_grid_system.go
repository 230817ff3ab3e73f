package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/ecs"
	"github.com/decker502/fruitpop/pkg/types"
)

// ErrInvariantViolation 调用方违反了约定（程序错误，而非玩法上的失败）
// 例如向已有泡泡的格子放置、对空格子做匹配搜索、在网格建立前生成关卡
var ErrInvariantViolation = errors.New("invariant violation")

// ErrGridNotBuilt 网格尚未建立
var ErrGridNotBuilt = fmt.Errorf("%w: grid not built", ErrInvariantViolation)

// HexGridSystem 管理六边形网格的结构和占用状态
// 负责建立网格、计算相邻关系，并且是唯一可以修改格子占用和类型计数的地方
type HexGridSystem struct {
	entityManager *ecs.EntityManager
	gridEntity    ecs.EntityID
}

// NewHexGridSystem 创建网格系统
// 参数:
//   - em: EntityManager 实例
//
// 返回:
//   - *HexGridSystem: 尚未建立网格的系统实例，需要调用 Build
func NewHexGridSystem(em *ecs.EntityManager) *HexGridSystem {
	return &HexGridSystem{
		entityManager: em,
	}
}

// Build 建立（或重建）网格
//
// 偶数行 maxColumns 个格子，奇数行 maxColumns-1 个。
// 所有格子分配完成后才计算相邻关系；旧网格上的泡泡全部销毁，类型计数清零。
//
// 参数:
//   - maxRows: 行数，至少 1
//   - maxColumns: 偶数行列数，至少 2（奇数行至少要有 1 列）
//
// 返回:
//   - error: 尺寸不合法时返回错误
func (s *HexGridSystem) Build(maxRows, maxColumns int) error {
	if maxRows < 1 || maxColumns < 2 {
		return fmt.Errorf("invalid grid size: rows=%d, columns=%d (need rows >= 1, columns >= 2)", maxRows, maxColumns)
	}

	s.clear()

	grid := &components.HexGridComponent{
		MaxRows:    maxRows,
		MaxColumns: maxColumns,
		Cells:      make([]components.Cell, 0, maxRows*maxColumns-maxRows/2),
		RowStart:   make([]components.CellID, maxRows),
		Counter:    components.NewTypeCounter(),
		Generation: 1,
	}

	for row := 0; row < maxRows; row++ {
		grid.RowStart[row] = components.CellID(len(grid.Cells))
		for col := 0; col < grid.ColumnsInRow(row); col++ {
			grid.Cells = append(grid.Cells, components.Cell{Row: row, Col: col})
		}
	}

	linkNeighbors(grid)

	s.gridEntity = s.entityManager.CreateEntity()
	s.entityManager.AddComponent(s.gridEntity, grid)

	log.Printf("[HexGridSystem] Built grid %dx%d (%d cells, entity %d)",
		maxRows, maxColumns, len(grid.Cells), s.gridEntity)
	return nil
}

// clear 销毁旧网格及其上的所有泡泡
func (s *HexGridSystem) clear() {
	if s.gridEntity == 0 {
		return
	}
	if grid, ok := ecs.GetComponent[*components.HexGridComponent](s.entityManager, s.gridEntity); ok {
		for i := range grid.Cells {
			if grid.Cells[i].Occupant != 0 {
				s.entityManager.DestroyEntity(grid.Cells[i].Occupant)
			}
		}
	}
	s.entityManager.DestroyEntity(s.gridEntity)
	s.entityManager.RemoveMarkedEntities()
	s.gridEntity = 0
}

// linkNeighbors 为每个格子计算最多 6 个相邻格子
//
// 候选: (r-1,c) (r+1,c) (r,c-1) (r,c+1)，以及随行奇偶变化的两条斜边：
// 偶数行取 (r-1,c-1) (r+1,c-1)，奇数行取 (r-1,c+1) (r+1,c+1)。
// 只保留在该行实际宽度内的候选。
func linkNeighbors(grid *components.HexGridComponent) {
	for i := range grid.Cells {
		cell := &grid.Cells[i]
		row, col := cell.Row, cell.Col

		diagonal := col + 1
		if row%2 == 0 {
			diagonal = col - 1
		}

		candidates := [6][2]int{
			{row - 1, col},
			{row + 1, col},
			{row, col - 1},
			{row, col + 1},
			{row - 1, diagonal},
			{row + 1, diagonal},
		}

		cell.Neighbors = make([]components.CellID, 0, len(candidates))
		for _, pos := range candidates {
			if id, ok := grid.CellAt(pos[0], pos[1]); ok {
				cell.Neighbors = append(cell.Neighbors, id)
			}
		}
	}
}

// Grid 返回网格组件
// 返回:
//   - error: 网格未建立时返回 ErrGridNotBuilt
func (s *HexGridSystem) Grid() (*components.HexGridComponent, error) {
	if s.gridEntity == 0 {
		return nil, ErrGridNotBuilt
	}
	grid, ok := ecs.GetComponent[*components.HexGridComponent](s.entityManager, s.gridEntity)
	if !ok {
		return nil, ErrGridNotBuilt
	}
	return grid, nil
}

// IsBuilt 网格是否已建立
func (s *HexGridSystem) IsBuilt() bool {
	_, err := s.Grid()
	return err == nil
}

// CellAt 返回行列对应的格子ID，网格未建立或越界时返回 false
func (s *HexGridSystem) CellAt(row, col int) (components.CellID, bool) {
	grid, err := s.Grid()
	if err != nil {
		return components.NoCell, false
	}
	return grid.CellAt(row, col)
}

// NeighborsOf 返回相邻格子列表的副本（最多 6 个）
// 供瞄准等外部系统查询，调用方无法借此修改网格结构
func (s *HexGridSystem) NeighborsOf(id components.CellID) []components.CellID {
	grid, err := s.Grid()
	if err != nil || !grid.IsValidCell(id) {
		return nil
	}
	neighbors := grid.Cells[id].Neighbors
	out := make([]components.CellID, len(neighbors))
	copy(out, neighbors)
	return out
}

// TokenAt 返回格子上泡泡的类型，空格子返回 false
func (s *HexGridSystem) TokenAt(id components.CellID) (types.TokenType, bool) {
	grid, err := s.Grid()
	if err != nil || !grid.IsValidCell(id) {
		return 0, false
	}
	return s.tokenType(grid, id)
}

func (s *HexGridSystem) tokenType(grid *components.HexGridComponent, id components.CellID) (types.TokenType, bool) {
	occupant := grid.Cells[id].Occupant
	if occupant == 0 {
		return 0, false
	}
	token, ok := ecs.GetComponent[*components.TokenComponent](s.entityManager, occupant)
	if !ok {
		return 0, false
	}
	return token.Type, true
}

// OccupyCell 在空格子上创建一个泡泡，并更新类型计数
// 参数:
//   - id: 目标格子
//   - tokenType: 泡泡类型
//
// 返回:
//   - error: 格子无效或已被占用时返回 ErrInvariantViolation
func (s *HexGridSystem) OccupyCell(id components.CellID, tokenType types.TokenType) error {
	grid, err := s.Grid()
	if err != nil {
		return err
	}
	if !grid.IsValidCell(id) {
		return fmt.Errorf("%w: cell %d does not exist", ErrInvariantViolation, id)
	}

	cell := &grid.Cells[id]
	if cell.Occupant != 0 {
		return fmt.Errorf("%w: cell (%d, %d) is already occupied by entity %d",
			ErrInvariantViolation, cell.Row, cell.Col, cell.Occupant)
	}

	entity := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(entity, &components.TokenComponent{Type: tokenType})
	cell.Occupant = entity
	grid.Counter.Increment(tokenType)
	return nil
}

// ReleaseCell 移除格子上的泡泡并更新类型计数
//
// 格子立即变空；泡泡实体只是标记销毁，需要 FlushReleased 真正回收。
//
// 返回:
//   - types.TokenType: 被移除泡泡的类型
//   - error: 格子无效或本来就是空的
func (s *HexGridSystem) ReleaseCell(id components.CellID) (types.TokenType, error) {
	grid, err := s.Grid()
	if err != nil {
		return 0, err
	}
	if !grid.IsValidCell(id) {
		return 0, fmt.Errorf("%w: cell %d does not exist", ErrInvariantViolation, id)
	}

	tokenType, ok := s.tokenType(grid, id)
	if !ok {
		cell := grid.Cells[id]
		return 0, fmt.Errorf("%w: cell (%d, %d) has no token to release", ErrInvariantViolation, cell.Row, cell.Col)
	}

	s.entityManager.DestroyEntity(grid.Cells[id].Occupant)
	grid.Cells[id].Occupant = 0
	if !grid.Counter.Decrement(tokenType) {
		log.Printf("[HexGridSystem] Warning: type counter for %s was already 0", tokenType)
	}
	return tokenType, nil
}

// FlushReleased 回收 ReleaseCell 标记的泡泡实体
func (s *HexGridSystem) FlushReleased() int {
	return s.entityManager.RemoveMarkedEntities()
}

// TypeCounts 返回各类型泡泡数量的副本
func (s *HexGridSystem) TypeCounts() map[types.TokenType]int {
	grid, err := s.Grid()
	if err != nil {
		return components.NewTypeCounter().Snapshot()
	}
	return grid.Counter.Snapshot()
}

// OccupiedCount 返回有泡泡的格子数量
func (s *HexGridSystem) OccupiedCount() int {
	grid, err := s.Grid()
	if err != nil {
		return 0
	}
	count := 0
	for i := range grid.Cells {
		if grid.Cells[i].Occupant != 0 {
			count++
		}
	}
	return count
}

// VerifyTags 返回仍带有有效临时标记的格子
// 每次消除计算结束后应为空
func (s *HexGridSystem) VerifyTags() []components.CellID {
	grid, err := s.Grid()
	if err != nil {
		return nil
	}
	var tagged []components.CellID
	for i := range grid.Cells {
		id := components.CellID(i)
		if tag := grid.Tag(id); tag != components.TagNone {
			log.Printf("[HexGridSystem] Cell (%d, %d) still tagged %s",
				grid.Cells[i].Row, grid.Cells[i].Col, tag)
			tagged = append(tagged, id)
		}
	}
	return tagged
}

// VerifyOwnership 检查每个泡泡实体恰好被一个格子持有
// 需在 FlushReleased 之后调用，否则已释放但未回收的实体会被当作无主
func (s *HexGridSystem) VerifyOwnership() error {
	grid, err := s.Grid()
	if err != nil {
		return err
	}

	holders := make(map[ecs.EntityID]int)
	for i := range grid.Cells {
		if occupant := grid.Cells[i].Occupant; occupant != 0 {
			holders[occupant]++
		}
	}

	for _, entity := range ecs.GetEntitiesWith1[*components.TokenComponent](s.entityManager) {
		switch n := holders[entity]; n {
		case 1:
			delete(holders, entity)
		case 0:
			return fmt.Errorf("%w: token entity %d is not held by any cell", ErrInvariantViolation, entity)
		default:
			return fmt.Errorf("%w: token entity %d is held by %d cells", ErrInvariantViolation, entity, n)
		}
	}
	for entity := range holders {
		return fmt.Errorf("%w: cell occupant %d is not a token", ErrInvariantViolation, entity)
	}
	return nil
}
