package main

import (
	"fmt"
	"log"

	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/game"
	"github.com/decker502/fruitpop/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// 棋盘在终端中的位置
const (
	boardLeft = 2
	boardTop  = 2
)

// TUI 终端界面
// 光标选择格子，Enter/Space 放置当前泡泡
type TUI struct {
	screen   tcell.Screen
	session  *game.Session
	settings *game.SettingsManager

	cursorRow int
	cursorCol int
	message   string
	recorded  bool
}

// NewTUI 创建终端界面并开始新的一局
func NewTUI(screen tcell.Screen, session *game.Session, settings *game.SettingsManager) (*TUI, error) {
	if err := session.StartNewGame(); err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	return &TUI{
		screen:   screen,
		session:  session,
		settings: settings,
	}, nil
}

// Run 事件循环，直到玩家退出
func (t *TUI) Run() {
	t.Draw()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if !t.HandleEvent(ev) {
			return
		}
		t.Draw()
	}
}

// HandleEvent 处理一个事件，返回 false 表示退出
//   - 方向键 / hjkl: 移动光标
//   - Enter / Space: 放置
//   - s: 交换当前和下一发
//   - r: 重新开始
//   - q / Esc / Ctrl-C: 退出
func (t *TUI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.recordResult()
			return false
		case tcell.KeyUp:
			t.moveCursor(-1, 0)
		case tcell.KeyDown:
			t.moveCursor(1, 0)
		case tcell.KeyLeft:
			t.moveCursor(0, -1)
		case tcell.KeyRight:
			t.moveCursor(0, 1)
		case tcell.KeyEnter:
			t.placeAtCursor()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				t.recordResult()
				return false
			case 'k':
				t.moveCursor(-1, 0)
			case 'j':
				t.moveCursor(1, 0)
			case 'h':
				t.moveCursor(0, -1)
			case 'l':
				t.moveCursor(0, 1)
			case ' ':
				t.placeAtCursor()
			case 's':
				t.session.Dealer().Swap()
			case 'r':
				t.restart()
			}
		}

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *TUI) moveCursor(dRow, dCol int) {
	grid, err := t.session.Grid()
	if err != nil {
		return
	}
	row := t.cursorRow + dRow
	if row < 0 || row >= grid.MaxRows {
		return
	}
	col := t.cursorCol + dCol
	if col < 0 {
		col = 0
	}
	if maxCol := grid.ColumnsInRow(row) - 1; col > maxCol {
		col = maxCol
	}
	t.cursorRow, t.cursorCol = row, col
}

// Cursor 返回光标所在格子
func (t *TUI) Cursor() (components.CellID, bool) {
	return t.session.CellAt(t.cursorRow, t.cursorCol)
}

func (t *TUI) placeAtCursor() {
	if t.session.State() != game.StatePlaying {
		t.message = "Game over - press r to restart"
		return
	}
	id, ok := t.Cursor()
	if !ok || !t.session.CanHold(id) {
		t.message = "Cannot place there"
		return
	}

	turn, err := t.session.Place(id)
	if err != nil {
		log.Printf("[TUI] Place failed: %v", err)
		t.message = err.Error()
		return
	}

	switch {
	case turn.GameOver:
		t.recordResult()
		t.message = fmt.Sprintf("Game over! Score %d", t.session.Score())
	case turn.LevelCleared:
		t.message = fmt.Sprintf("Level %d!", t.session.Level())
	case turn.TotalRemoved > 0:
		t.message = fmt.Sprintf("+%d (%d matched, %d dropped)", turn.ScoreGained, turn.Matched, turn.Dropped)
	default:
		t.message = ""
	}
}

func (t *TUI) restart() {
	t.recordResult()
	if err := t.session.StartNewGame(); err != nil {
		t.message = err.Error()
		return
	}
	t.recorded = false
	t.cursorRow, t.cursorCol = 0, 0
	t.message = "New game"
}

func (t *TUI) recordResult() {
	if t.recorded || t.settings == nil {
		return
	}
	t.recorded = true
	if t.settings.RecordResult(t.session.Score(), t.session.Level()) {
		if err := t.settings.Save(); err != nil {
			log.Printf("[TUI] Warning: failed to save records: %v", err)
		}
	}
}

// tokenStyle 返回泡泡的终端颜色
func tokenStyle(tt types.TokenType) tcell.Style {
	switch tt {
	case types.TokenApple:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case types.TokenCherry:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	case types.TokenOrange:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	case types.TokenPear:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case types.TokenPeach:
		return tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true)
	case types.TokenBlocker:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

// cellPosition 返回格子在终端中的坐标（奇数行右移一格）
func cellPosition(row, col int) (x, y int) {
	return boardLeft + col*2 + row%2, boardTop + row
}

// Draw 绘制整个界面
func (t *TUI) Draw() {
	t.screen.Clear()

	grid, err := t.session.Grid()
	if err != nil {
		t.drawText(0, 0, tcell.StyleDefault, "No board")
		t.screen.Show()
		return
	}

	emptyStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for i := range grid.Cells {
		cell := &grid.Cells[i]
		x, y := cellPosition(cell.Row, cell.Col)

		symbol, style := '.', emptyStyle
		if tt, ok := t.session.TokenAt(components.CellID(i)); ok {
			symbol, style = tt.Symbol(), tokenStyle(tt)
		}
		if cell.Row == t.cursorRow && cell.Col == t.cursorCol {
			style = style.Reverse(true)
		}
		t.screen.SetContent(x, y, symbol, nil, style)
	}

	// 失败边界
	_, lastY := cellPosition(grid.MaxRows-1, 0)
	t.drawText(0, lastY, tcell.StyleDefault.Foreground(tcell.ColorRed), ">")

	panelX := boardLeft + grid.MaxColumns*2 + 4
	dealer := t.session.Dealer()
	best := 0
	if t.settings != nil {
		best = t.settings.GetSettings().BestScore
	}

	t.drawText(boardLeft, 0, tcell.StyleDefault.Bold(true), "FRUIT POP")
	t.drawText(panelX, boardTop, tcell.StyleDefault, fmt.Sprintf("Level %d", t.session.Level()))
	t.drawText(panelX, boardTop+1, tcell.StyleDefault, fmt.Sprintf("Score %d", t.session.Score()))
	t.drawText(panelX, boardTop+2, tcell.StyleDefault, fmt.Sprintf("Best  %d", best))
	t.drawText(panelX, boardTop+4, tcell.StyleDefault, "Next")
	t.screen.SetContent(panelX+5, boardTop+4, dealer.Current().Symbol(), nil, tokenStyle(dealer.Current()))
	t.screen.SetContent(panelX+7, boardTop+4, dealer.OnDeck().Symbol(), nil, tokenStyle(dealer.OnDeck()))

	row := boardTop + 6
	counts := t.session.TypeCounts()
	for _, tt := range types.AllTokenTypes() {
		if counts[tt] == 0 {
			continue
		}
		t.screen.SetContent(panelX, row, tt.Symbol(), nil, tokenStyle(tt))
		t.drawText(panelX+2, row, tcell.StyleDefault, fmt.Sprintf("%-8s %d", tt, counts[tt]))
		row++
	}

	help := "arrows/hjkl move  enter place  s swap  r restart  q quit"
	t.drawText(boardLeft, boardTop+grid.MaxRows+1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), help)
	if t.message != "" {
		t.drawText(boardLeft, boardTop+grid.MaxRows+2, tcell.StyleDefault.Foreground(tcell.ColorYellow), t.message)
	}
	if t.session.State() == game.StateGameOver {
		t.drawText(panelX, row+1, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true), "GAME OVER")
	}

	t.screen.Show()
}

func (t *TUI) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
