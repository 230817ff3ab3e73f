package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/game"
	"github.com/decker502/fruitpop/pkg/types"
	"github.com/decker502/fruitpop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MenuScene 标题界面：显示最佳记录，切换网格宽度和障碍开关
type MenuScene struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
}

// NewMenuScene 创建标题界面
func NewMenuScene(sm *game.SceneManager, settings *game.SettingsManager) *MenuScene {
	return &MenuScene{
		sceneManager: sm,
		settings:     settings,
	}
}

// Update 处理按键
//   - W: 切换窄/宽网格
//   - B: 障碍开关
//   - Enter/Space/鼠标左键/触摸: 开始
func (m *MenuScene) Update(deltaTime float64) {
	switch {
	case len(inpututil.AppendJustPressedTouchIDs(nil)) > 0:
		m.sceneManager.LoadScene(ScenePlay)
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		m.ToggleWidth()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		m.ToggleBlockers()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		inpututil.IsKeyJustPressed(ebiten.KeySpace),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		m.sceneManager.LoadScene(ScenePlay)
	}
}

// ToggleWidth 切换网格宽度并保存
func (m *MenuScene) ToggleWidth() {
	width := m.settings.ToggleGridWidth()
	log.Printf("[MenuScene] Grid width: %s", width)
	m.save()
}

// ToggleBlockers 切换障碍开关并保存
func (m *MenuScene) ToggleBlockers() {
	enabled := !m.settings.GetSettings().BlockersEnabled
	m.settings.SetBlockersEnabled(enabled)
	log.Printf("[MenuScene] Blockers enabled: %v", enabled)
	m.save()
}

func (m *MenuScene) save() {
	if err := m.settings.Save(); err != nil {
		log.Printf("[MenuScene] Warning: failed to save settings: %v", err)
	}
}

// Lines 返回菜单文本
func (m *MenuScene) Lines() []string {
	s := m.settings.GetSettings()
	blockers := "on"
	if !s.BlockersEnabled {
		blockers = "off"
	}
	return []string{
		"FRUIT POP",
		"",
		fmt.Sprintf("Best score: %d", s.BestScore),
		fmt.Sprintf("Best level: %d", s.BestLevel),
		"",
		fmt.Sprintf("[W] Grid width: %s", s.GridWidth),
		fmt.Sprintf("[B] Blockers:   %s", blockers),
		"",
		m.startHint(),
	}
}

func (m *MenuScene) startHint() string {
	if utils.IsMobile() {
		return "Tap to start"
	}
	return "[Enter] Start"
}

// Draw 绘制标题界面
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	// 一排装饰用的水果
	fruits := types.FruitTokenTypes()
	for i, t := range fruits {
		x := float32(config.GameWindowWidth)/2 + float32(i-len(fruits)/2)*48
		vector.FillCircle(screen, x, 120, 18, tokenColor(t), true)
		vector.StrokeCircle(screen, x, 120, 18, 2, color.RGBA{R: 30, G: 30, B: 40, A: 255}, true)
	}

	for i, line := range m.Lines() {
		ebitenutil.DebugPrintAt(screen, line, config.GameWindowWidth/2-90, 180+i*20)
	}
}
