package game

import (
	"fmt"
	"strings"

	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/types"
)

// 快照中空格子的字符
const emptyCellSymbol = '.'

// RenderBoard 将网格渲染为文本，每行一行，奇数行缩进一个字符
//
//	A . C . .
//	 . A . .
func RenderBoard(grid *components.HexGridComponent, tokenAt func(components.CellID) (types.TokenType, bool)) string {
	var b strings.Builder
	for row := 0; row < grid.MaxRows; row++ {
		if row%2 != 0 {
			b.WriteByte(' ')
		}
		for col := 0; col < grid.ColumnsInRow(row); col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			id, _ := grid.CellAt(row, col)
			symbol := rune(emptyCellSymbol)
			if t, ok := tokenAt(id); ok {
				symbol = t.Symbol()
			}
			b.WriteRune(symbol)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Snapshot 返回带状态行的棋盘文本，用于调试和复制到剪贴板
func (s *Session) Snapshot() string {
	grid, err := s.grid.Grid()
	if err != nil {
		return "(no board)\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Level %d  Score %d  State %s  Next %c / %c\n",
		s.level, s.score, s.state, s.dealer.Current().Symbol(), s.dealer.OnDeck().Symbol())
	b.WriteString(RenderBoard(grid, s.grid.TokenAt))
	return b.String()
}
