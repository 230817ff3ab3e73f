package scenes

import (
	"fmt"
	"log"

	"github.com/atotto/clipboard"
	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/game"
	"github.com/decker502/fruitpop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 提示文字显示时长（秒）
const messageDuration = 2.0

// 信息栏中"当前"和"下一发"泡泡的位置（相对 SidePanelX）
const (
	dealerCurrentOffsetX = 20
	dealerCurrentY       = 130
	dealerCurrentRadius  = 16
	dealerOnDeckOffsetX  = 60
	dealerOnDeckY        = 134
	dealerOnDeckRadius   = 11
)

// PlayScene 游戏界面
//
// 指针位置决定停靠格子（最近的可停靠空格），松开左键或手指时放置当前泡泡。
// 没有弹道模拟：泡泡直接落到瞄准的格子上。
type PlayScene struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	session      *game.Session
	gesture      *utils.AimGesture

	aim    components.CellID
	hasAim bool

	message      string
	messageTimer float64

	// 本局成绩是否已写入最佳记录
	recorded bool
}

// NewPlayScene 创建游戏界面并开始新的一局
//
// 参数:
//   - sm: 场景管理器（返回标题界面用）
//   - settings: 设置管理器（记录最佳成绩）
//   - session: 尚未开始的会话
func NewPlayScene(sm *game.SceneManager, settings *game.SettingsManager, session *game.Session) (*PlayScene, error) {
	session.SetLayout(utils.HexLayout{
		StartX:   config.BoardStartX,
		StartY:   config.BoardStartY,
		CellSize: config.BoardCellSize,
	})
	if err := session.StartNewGame(); err != nil {
		return nil, fmt.Errorf("start play scene: %w", err)
	}
	return &PlayScene{
		sceneManager: sm,
		settings:     settings,
		session:      session,
		gesture:      utils.NewAimGesture(),
		aim:          components.NoCell,
	}, nil
}

// Update 处理输入
//   - 指针移动/拖动: 瞄准
//   - 松开左键/手指: 放置；在信息栏的泡泡上松开则交换
//   - 右键/Space: 交换当前和下一发
//   - R: 重新开始
//   - C: 复制棋盘快照到剪贴板
//   - Esc: 返回标题
func (p *PlayScene) Update(deltaTime float64) {
	if p.messageTimer > 0 {
		p.messageTimer -= deltaTime
	}

	p.gesture.Update()
	x, y := utils.PointerPosition()
	if p.gesture.Active() || p.gesture.Released() {
		x, y = p.gesture.Position()
	}
	p.UpdateAim(float64(x), float64(y))

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		p.sceneManager.LoadScene(SceneMenu)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		p.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		p.CopySnapshot()
	case p.session.State() != game.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || p.gesture.Released() {
			p.Restart()
		}
	case p.gesture.Released():
		p.Release(float64(x), float64(y))
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		inpututil.IsKeyJustPressed(ebiten.KeySpace):
		p.session.Dealer().Swap()
	}
}

// UpdateAim 根据指针位置更新瞄准格子
func (p *PlayScene) UpdateAim(x, y float64) {
	if p.session.State() != game.StatePlaying {
		p.hasAim = false
		return
	}
	p.aim, p.hasAim = p.session.AimTarget(x, y)
}

// Release 手势在 (x, y) 松开：落在信息栏的泡泡上时交换，否则放置
func (p *PlayScene) Release(x, y float64) {
	if p.onDealerPanel(x, y) {
		p.session.Dealer().Swap()
		return
	}
	p.Click(x, y)
}

// onDealerPanel 判断坐标是否落在信息栏的"当前"或"下一发"泡泡上
func (p *PlayScene) onDealerPanel(x, y float64) bool {
	grid, err := p.session.Grid()
	if err != nil {
		return false
	}
	panelX := config.SidePanelX(grid.MaxColumns)
	return withinCircle(x, y, panelX+dealerCurrentOffsetX, dealerCurrentY, dealerCurrentRadius) ||
		withinCircle(x, y, panelX+dealerOnDeckOffsetX, dealerOnDeckY, dealerOnDeckRadius)
}

func withinCircle(x, y, cx, cy, r float64) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// Click 在指针位置放置当前泡泡
func (p *PlayScene) Click(x, y float64) {
	if p.session.State() != game.StatePlaying {
		return
	}
	id, ok := p.session.AimTarget(x, y)
	if !ok {
		return
	}

	turn, err := p.session.Place(id)
	if err != nil {
		log.Printf("[PlayScene] Place failed: %v", err)
		p.showMessage("Cannot place there")
		return
	}
	p.handleTurn(turn)
}

func (p *PlayScene) handleTurn(turn game.TurnResult) {
	switch {
	case turn.GameOver:
		p.recordResult()
		p.showMessage(fmt.Sprintf("Game over! Score %d  [Enter] retry", p.session.Score()))
	case turn.LevelCleared:
		p.showMessage(fmt.Sprintf("Level %d!", p.session.Level()))
	case turn.TotalRemoved > 0:
		msg := fmt.Sprintf("+%d", turn.ScoreGained)
		if turn.Dropped > 0 {
			msg += fmt.Sprintf(" (%d dropped)", turn.Dropped)
		}
		p.showMessage(msg)
	}
}

// Restart 放弃当前一局重新开始
func (p *PlayScene) Restart() {
	p.recordResult()
	if err := p.session.StartNewGame(); err != nil {
		log.Printf("[PlayScene] Restart failed: %v", err)
		return
	}
	p.recorded = false
	p.showMessage("New game")
}

// CopySnapshot 复制棋盘文本到剪贴板
func (p *PlayScene) CopySnapshot() {
	if err := clipboard.WriteAll(p.session.Snapshot()); err != nil {
		log.Printf("[PlayScene] Warning: clipboard unavailable: %v", err)
		p.showMessage("Clipboard unavailable")
		return
	}
	p.showMessage("Board copied")
}

// SaveOnExit 实现 game.Saveable，窗口关闭或返回标题时记录成绩
func (p *PlayScene) SaveOnExit() bool {
	p.recordResult()
	if err := p.settings.Save(); err != nil {
		log.Printf("[PlayScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}

func (p *PlayScene) recordResult() {
	if p.recorded {
		return
	}
	p.recorded = true
	if p.settings.RecordResult(p.session.Score(), p.session.Level()) {
		if err := p.settings.Save(); err != nil {
			log.Printf("[PlayScene] Warning: failed to save records: %v", err)
		}
	}
}

func (p *PlayScene) showMessage(msg string) {
	p.message = msg
	p.messageTimer = messageDuration
}

// Session 返回当前会话
func (p *PlayScene) Session() *game.Session {
	return p.session
}

// Message 返回正在显示的提示，没有时返回空字符串
func (p *PlayScene) Message() string {
	if p.messageTimer <= 0 {
		return ""
	}
	return p.message
}
