package config

// 布局配置常量
// 窗口尺寸、棋盘位置和右侧信息栏位置（逻辑像素）
const (
	// GameWindowWidth 逻辑屏幕宽度
	// 宽网格 16 列 * 40 + 左边距 + 半格偏移 + 信息栏
	GameWindowWidth = 900

	// GameWindowHeight 逻辑屏幕高度
	// 15 行 * 36 行距 + 泡泡直径 + 上下边距
	GameWindowHeight = 620

	// BoardStartX 棋盘左边缘
	BoardStartX = 20.0

	// BoardStartY 棋盘上边缘
	BoardStartY = 20.0

	// BoardCellSize 泡泡直径
	BoardCellSize = 36.0

	// SidePanelMargin 信息栏与棋盘右边缘的间距
	SidePanelMargin = 30.0
)

// SidePanelX 返回信息栏左边缘，棋盘越宽信息栏越靠右
func SidePanelX(maxColumns int) float64 {
	// 奇数行右移半格
	return BoardStartX + (float64(maxColumns)+0.5)*BoardCellSize + SidePanelMargin
}
