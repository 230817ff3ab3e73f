package systems

import (
	"testing"

	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/ecs"
	"github.com/decker502/fruitpop/pkg/types"
)

// newTestGridSystem 创建并建立一个测试网格
func newTestGridSystem(t *testing.T, maxRows, maxColumns int) (*ecs.EntityManager, *HexGridSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	gs := NewHexGridSystem(em)
	if err := gs.Build(maxRows, maxColumns); err != nil {
		t.Fatalf("Build(%d, %d) failed: %v", maxRows, maxColumns, err)
	}
	return em, gs
}

// mustCell 返回行列对应的格子ID，越界直接失败
func mustCell(t *testing.T, gs *HexGridSystem, row, col int) components.CellID {
	t.Helper()
	id, ok := gs.CellAt(row, col)
	if !ok {
		t.Fatalf("cell (%d, %d) out of bounds", row, col)
	}
	return id
}

// mustOccupy 直接放置泡泡（不结算）
func mustOccupy(t *testing.T, gs *HexGridSystem, row, col int, tokenType types.TokenType) {
	t.Helper()
	if err := gs.OccupyCell(mustCell(t, gs, row, col), tokenType); err != nil {
		t.Fatalf("OccupyCell(%d, %d) failed: %v", row, col, err)
	}
}

// assertEmpty 断言格子为空
func assertEmpty(t *testing.T, gs *HexGridSystem, row, col int) {
	t.Helper()
	if tt, ok := gs.TokenAt(mustCell(t, gs, row, col)); ok {
		t.Errorf("cell (%d, %d) should be empty, holds %v", row, col, tt)
	}
}

// assertToken 断言格子上的泡泡类型
func assertToken(t *testing.T, gs *HexGridSystem, row, col int, want types.TokenType) {
	t.Helper()
	got, ok := gs.TokenAt(mustCell(t, gs, row, col))
	if !ok {
		t.Errorf("cell (%d, %d) should hold %v, is empty", row, col, want)
		return
	}
	if got != want {
		t.Errorf("cell (%d, %d) holds %v, want %v", row, col, got, want)
	}
}

// assertNoTags 断言没有格子残留临时标记
func assertNoTags(t *testing.T, gs *HexGridSystem) {
	t.Helper()
	if tagged := gs.VerifyTags(); len(tagged) > 0 {
		t.Errorf("%d cells still tagged after resolution: %v", len(tagged), tagged)
	}
}

// assertEntitiesMatchOccupancy 每个泡泡实体都由一个格子持有（外加网格实体本身）
func assertEntitiesMatchOccupancy(t *testing.T, em *ecs.EntityManager, gs *HexGridSystem) {
	t.Helper()
	if got, want := em.EntityCount(), gs.OccupiedCount()+1; got != want {
		t.Errorf("entity count = %d, want %d (occupied cells + grid)", got, want)
	}
	counts := gs.TypeCounts()
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != gs.OccupiedCount() {
		t.Errorf("type counts sum to %d, occupied cells = %d", total, gs.OccupiedCount())
	}
	if err := gs.VerifyOwnership(); err != nil {
		t.Errorf("VerifyOwnership: %v", err)
	}
}
