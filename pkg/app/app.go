// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/embedded"
	"github.com/decker502/fruitpop/pkg/game"
	"github.com/decker502/fruitpop/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出，并在每次放置后检查残留标记
	Verbose bool
	// ConfigPath 游戏配置文件路径，为空时使用内置的 data/game.yaml
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// SkipMenu 跳过标题界面直接开始
	SkipMenu bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadGameConfig 按优先级加载游戏配置：指定文件 > 内置文件 > 代码默认值
func LoadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	if embedded.IsInitialized() {
		data, err := embedded.ReadFile(embedded.DefaultGameConfigPath)
		if err != nil {
			return nil, fmt.Errorf("内置配置读取失败: %w", err)
		}
		return config.ParseGameConfig(data)
	}
	log.Printf("[App] No config file, using built-in defaults")
	return config.DefaultGameConfig(), nil
}

// NewApp 创建并初始化游戏应用
//
// 使用内置配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	log.Printf("[Config] Grid %d rows, %s width, spawn rows < %d, blocker chance %.2f",
		gameConfig.Grid.MaxRows, gameConfig.Grid.Width, gameConfig.Populate.MaxRowForSpawn, gameConfig.Populate.Chance())

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("[App] Random seed: %d", seed)

	settings := game.GetGameState().GetSettingsManager()
	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(sceneID string) game.Scene {
		switch sceneID {
		case scenes.SceneMenu:
			return scenes.NewMenuScene(sceneManager, settings)
		case scenes.ScenePlay:
			session, err := game.NewSession(settings.GetSettings().Apply(gameConfig), rng)
			if err != nil {
				log.Printf("[App] 会话创建失败: %v", err)
				return nil
			}
			session.SetVerbose(cfg.Verbose)
			play, err := scenes.NewPlayScene(sceneManager, settings, session)
			if err != nil {
				log.Printf("[App] 游戏场景创建失败: %v", err)
				return nil
			}
			return play
		default:
			return nil
		}
	})

	start := scenes.SceneMenu
	if cfg.SkipMenu {
		start = scenes.ScenePlay
	}
	if !sceneManager.LoadScene(start) {
		return nil, fmt.Errorf("无法创建启动场景: %s", start)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存记录
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// SaveOnExit 窗口关闭时保存当前场景的记录和设置
func (a *App) SaveOnExit() {
	if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		saveable.SaveOnExit()
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings on exit: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
