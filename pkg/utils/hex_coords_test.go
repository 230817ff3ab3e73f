package utils

import (
	"math"
	"testing"
)

func TestCellCenter(t *testing.T) {
	l := HexLayout{StartX: 10, StartY: 20, CellSize: 40}

	tests := []struct {
		name  string
		row   int
		col   int
		wantX float64
		wantY float64
	}{
		{"原点格子", 0, 0, 30, 40},
		{"偶数行第3列", 0, 3, 150, 40},
		{"奇数行右移半格", 1, 0, 50, 76},
		{"第2行不偏移", 2, 1, 70, 112},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := l.CellCenter(tt.row, tt.col)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("CellCenter(%d, %d) = (%v, %v), want (%v, %v)", tt.row, tt.col, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestNearestRowColRoundTrip 格子中心应映射回自身
func TestNearestRowColRoundTrip(t *testing.T) {
	l := DefaultHexLayout()

	for row := 0; row < 15; row++ {
		for col := 0; col < 11; col++ {
			x, y := l.CellCenter(row, col)
			gotRow, gotCol := l.NearestRowCol(x+3, y-2)
			if gotRow != row || gotCol != col {
				t.Errorf("NearestRowCol(center of %d,%d) = (%d, %d)", row, col, gotRow, gotCol)
			}
		}
	}
}

func TestLayoutSize(t *testing.T) {
	l := HexLayout{CellSize: 40}
	w, h := l.Size(15, 11)
	if w != 440 {
		t.Errorf("width = %v, want 440", w)
	}
	if math.Abs(h-(14*36+40)) > 1e-9 {
		t.Errorf("height = %v, want %v", h, 14*36+40)
	}

	if _, h := l.Size(0, 11); h != 0 {
		t.Errorf("height of empty grid = %v, want 0", h)
	}
}
