package utils

import "math"

// 六边形网格布局参数
// 奇数行整体右移半个格子，行距为格子直径的 0.9 倍，使上下两行交错贴合
const (
	DefaultCellSize   = 40.0 // 泡泡直径（像素）
	RowSpacingFactor  = 0.9  // 行距 / 直径
	DefaultGridStartX = 20.0 // 网格起始X坐标
	DefaultGridStartY = 20.0 // 网格起始Y坐标
)

// HexLayout 描述网格在屏幕上的摆放方式
type HexLayout struct {
	StartX   float64 // 第 0 行第 0 列格子左边缘
	StartY   float64 // 第 0 行格子上边缘
	CellSize float64 // 泡泡直径
}

// DefaultHexLayout 返回默认布局
func DefaultHexLayout() HexLayout {
	return HexLayout{
		StartX:   DefaultGridStartX,
		StartY:   DefaultGridStartY,
		CellSize: DefaultCellSize,
	}
}

// RowHeight 返回相邻两行中心的垂直距离
func (l HexLayout) RowHeight() float64 {
	return l.CellSize * RowSpacingFactor
}

// CellCenter 将网格坐标转换为格子中心的屏幕坐标
// 参数:
//   - row: 行索引
//   - col: 列索引
//
// 返回:
//   - centerX, centerY: 格子中心的屏幕坐标
func (l HexLayout) CellCenter(row, col int) (centerX, centerY float64) {
	offset := 0.0
	if row%2 != 0 {
		offset = l.CellSize / 2
	}
	centerX = l.StartX + float64(col)*l.CellSize + offset + l.CellSize/2
	centerY = l.StartY + float64(row)*l.RowHeight() + l.CellSize/2
	return centerX, centerY
}

// NearestRowCol 返回离屏幕坐标最近的行列（不做边界检查）
func (l HexLayout) NearestRowCol(x, y float64) (row, col int) {
	row = int(math.Round((y - l.StartY - l.CellSize/2) / l.RowHeight()))
	offset := 0.0
	if row%2 != 0 {
		offset = l.CellSize / 2
	}
	col = int(math.Round((x - l.StartX - offset - l.CellSize/2) / l.CellSize))
	return row, col
}

// DistanceSq 返回点到格子中心距离的平方
func (l HexLayout) DistanceSq(x, y float64, row, col int) float64 {
	cx, cy := l.CellCenter(row, col)
	dx := x - cx
	dy := y - cy
	return dx*dx + dy*dy
}

// Size 返回网格占用的像素宽高
func (l HexLayout) Size(maxRows, maxColumns int) (width, height float64) {
	width = float64(maxColumns) * l.CellSize
	if maxRows <= 0 {
		return width, 0
	}
	height = float64(maxRows-1)*l.RowHeight() + l.CellSize
	return width, height
}
