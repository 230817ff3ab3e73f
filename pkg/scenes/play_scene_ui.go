package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/game"
	"github.com/decker502/fruitpop/pkg/types"
	"github.com/decker502/fruitpop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 28, B: 44, A: 255}
	emptyCellColor  = color.RGBA{R: 60, G: 66, B: 90, A: 255}
	outlineColor    = color.RGBA{R: 20, G: 20, B: 28, A: 255}
	aimColor        = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	boundaryColor   = color.RGBA{R: 200, G: 60, B: 60, A: 180}
)

// tokenColor 返回泡泡的填充色
func tokenColor(t types.TokenType) color.RGBA {
	switch t {
	case types.TokenApple:
		return color.RGBA{R: 220, G: 40, B: 40, A: 255}
	case types.TokenCherry:
		return color.RGBA{R: 150, G: 20, B: 70, A: 255}
	case types.TokenOrange:
		return color.RGBA{R: 250, G: 150, B: 30, A: 255}
	case types.TokenPear:
		return color.RGBA{R: 170, G: 210, B: 60, A: 255}
	case types.TokenPeach:
		return color.RGBA{R: 250, G: 180, B: 160, A: 255}
	case types.TokenBlocker:
		return color.RGBA{R: 110, G: 110, B: 120, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
}

// Draw 绘制棋盘、瞄准框和信息栏
func (p *PlayScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	grid, err := p.session.Grid()
	if err != nil {
		ebitenutil.DebugPrintAt(screen, "No board", 20, 20)
		return
	}

	p.drawBoard(screen, grid)
	p.drawPanel(screen, grid)
}

func (p *PlayScene) drawBoard(screen *ebiten.Image, grid *components.HexGridComponent) {
	layout := p.session.Layout()
	radius := float32(layout.CellSize/2 - 1)

	// 最后一行是失败边界
	_, lastY := layout.CellCenter(grid.MaxRows-1, 0)
	boardWidth, _ := layout.Size(grid.MaxRows, grid.MaxColumns)
	lineY := float32(lastY - layout.CellSize/2)
	vector.StrokeLine(screen, float32(layout.StartX), lineY,
		float32(layout.StartX+boardWidth+layout.CellSize/2), lineY, 2, boundaryColor, true)

	for i := range grid.Cells {
		cell := &grid.Cells[i]
		cx, cy := layout.CellCenter(cell.Row, cell.Col)
		x, y := float32(cx), float32(cy)

		t, occupied := p.session.TokenAt(components.CellID(i))
		if !occupied {
			vector.StrokeCircle(screen, x, y, radius, 1, emptyCellColor, true)
			continue
		}
		vector.FillCircle(screen, x, y, radius, tokenColor(t), true)
		vector.StrokeCircle(screen, x, y, radius, 2, outlineColor, true)
		if t == types.TokenBlocker {
			vector.StrokeLine(screen, x-radius/2, y-radius/2, x+radius/2, y+radius/2, 2, outlineColor, true)
			vector.StrokeLine(screen, x-radius/2, y+radius/2, x+radius/2, y-radius/2, 2, outlineColor, true)
		}
	}

	if p.hasAim {
		cell := &grid.Cells[p.aim]
		cx, cy := layout.CellCenter(cell.Row, cell.Col)
		ghost := tokenColor(p.session.Dealer().Current())
		ghost.A = 110
		vector.FillCircle(screen, float32(cx), float32(cy), radius, ghost, true)
		vector.StrokeCircle(screen, float32(cx), float32(cy), radius, 2, aimColor, true)
	}
}

func (p *PlayScene) drawPanel(screen *ebiten.Image, grid *components.HexGridComponent) {
	x := config.SidePanelX(grid.MaxColumns)
	ix := int(x)

	lines := []string{
		fmt.Sprintf("Level  %d", p.session.Level()),
		fmt.Sprintf("Score  %d", p.session.Score()),
		fmt.Sprintf("Best   %d", p.settings.GetSettings().BestScore),
		"",
		"Next",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, ix, 20+i*18)
	}

	dealer := p.session.Dealer()
	cx, cy, r := float32(x+dealerCurrentOffsetX), float32(dealerCurrentY), float32(dealerCurrentRadius)
	vector.FillCircle(screen, cx, cy, r, tokenColor(dealer.Current()), true)
	vector.StrokeCircle(screen, cx, cy, r, 2, outlineColor, true)
	cx, cy, r = float32(x+dealerOnDeckOffsetX), float32(dealerOnDeckY), float32(dealerOnDeckRadius)
	vector.FillCircle(screen, cx, cy, r, tokenColor(dealer.OnDeck()), true)
	vector.StrokeCircle(screen, cx, cy, r, 2, outlineColor, true)

	// 剩余数量
	counts := p.session.TypeCounts()
	row := 0
	for _, t := range types.AllTokenTypes() {
		if counts[t] == 0 {
			continue
		}
		y := 175 + row*22
		vector.FillCircle(screen, float32(x)+8, float32(y)+7, 7, tokenColor(t), true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-8s %d", t, counts[t]), ix+22, y)
		row++
	}

	help := []string{
		"[LMB]   place",
		"[RMB]   swap",
		"[R]     restart",
		"[C]     copy board",
		"[Esc]   menu",
		"[F11]   fullscreen",
	}
	if utils.IsMobile() {
		help = []string{
			"drag to aim",
			"release to place",
			"tap Next to swap",
		}
	}
	for i, line := range help {
		ebitenutil.DebugPrintAt(screen, line, ix, config.GameWindowHeight-140+i*18)
	}

	if msg := p.Message(); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, ix, 340)
	}
	if p.session.State() == game.StateGameOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER", ix, 370)
	}
}
