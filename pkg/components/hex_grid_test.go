package components

import "testing"

// newTestGrid 手工构造一个只有格子数组的网格（不计算邻居）
func newTestGrid(maxRows, maxColumns int) *HexGridComponent {
	g := &HexGridComponent{MaxRows: maxRows, MaxColumns: maxColumns, Generation: 1, Counter: NewTypeCounter()}
	for row := 0; row < maxRows; row++ {
		g.RowStart = append(g.RowStart, CellID(len(g.Cells)))
		for col := 0; col < g.ColumnsInRow(row); col++ {
			g.Cells = append(g.Cells, Cell{Row: row, Col: col})
		}
	}
	return g
}

func TestColumnsInRow(t *testing.T) {
	g := newTestGrid(4, 5)

	tests := []struct {
		row  int
		want int
	}{
		{-1, 0},
		{0, 5},
		{1, 4},
		{2, 5},
		{3, 4},
		{4, 0},
	}
	for _, tt := range tests {
		if got := g.ColumnsInRow(tt.row); got != tt.want {
			t.Errorf("ColumnsInRow(%d) = %d, want %d", tt.row, got, tt.want)
		}
	}

	if len(g.Cells) != 18 {
		t.Errorf("cell count = %d, want 18", len(g.Cells))
	}
}

func TestCellAt(t *testing.T) {
	g := newTestGrid(3, 4)

	id, ok := g.CellAt(1, 2)
	if !ok {
		t.Fatal("CellAt(1, 2) should be valid")
	}
	if c := g.Cells[id]; c.Row != 1 || c.Col != 2 {
		t.Errorf("CellAt(1, 2) returned cell (%d, %d)", c.Row, c.Col)
	}

	// 奇数行少一列
	if _, ok := g.CellAt(1, 3); ok {
		t.Error("CellAt(1, 3) should be out of bounds for an odd row")
	}
	if _, ok := g.CellAt(2, 3); !ok {
		t.Error("CellAt(2, 3) should be valid for an even row")
	}
	if id, ok := g.CellAt(-1, 0); ok || id != NoCell {
		t.Errorf("CellAt(-1, 0) = (%d, %v), want (NoCell, false)", id, ok)
	}
}

// TestTagsExpireWithGeneration 推进世代后旧标记全部失效
func TestTagsExpireWithGeneration(t *testing.T) {
	g := newTestGrid(2, 3)

	g.SetTag(0, TagSecure)
	g.SetTag(3, TagPendingDelete)
	if g.Tag(0) != TagSecure || g.Tag(3) != TagPendingDelete {
		t.Fatal("tags should be readable within the same generation")
	}

	g.AdvanceGeneration()
	for id := range g.Cells {
		if tag := g.Tag(CellID(id)); tag != TagNone {
			t.Errorf("cell %d kept tag %v after AdvanceGeneration", id, tag)
		}
	}
}

func TestGenerationWrap(t *testing.T) {
	g := newTestGrid(1, 3)
	g.Generation = ^uint32(0)
	g.SetTag(1, TagSearching)

	g.AdvanceGeneration()

	if g.Generation != 1 {
		t.Errorf("Generation after wrap = %d, want 1", g.Generation)
	}
	if g.Tag(1) != TagNone {
		t.Errorf("tag survived generation wrap: %v", g.Tag(1))
	}
}
