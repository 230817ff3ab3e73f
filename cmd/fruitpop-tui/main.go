// fruitpop-tui 终端版本
//
// 用法:
//
//	go run ./cmd/fruitpop-tui [-config data/game.yaml] [-width wide] [-seed 42] [-log tui.log]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/game"
	"github.com/gdamore/tcell/v2"
)

var (
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置默认值）")
	width      = flag.String("width", "", "网格宽度 narrow/wide（默认使用保存的设置）")
	noBlockers = flag.Bool("no-blockers", false, "不生成障碍泡泡")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	logPath    = flag.String("log", "", "日志文件路径（终端界面运行时日志不能输出到屏幕）")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fruitpop-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	settings := game.GetGameState().GetSettingsManager()
	if *width != "" {
		if err := settings.SetGridWidth(*width); err != nil {
			return err
		}
	}
	if *noBlockers {
		settings.SetBlockersEnabled(false)
	}
	cfg = settings.GetSettings().Apply(cfg)

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	session, err := game.NewSession(cfg, rand.New(rand.NewSource(s)))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	tui, err := NewTUI(screen, session, settings)
	if err != nil {
		return err
	}
	tui.Run()

	if err := settings.Save(); err != nil {
		log.Printf("[TUI] Warning: failed to save settings: %v", err)
	}
	return nil
}
