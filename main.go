package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/fruitpop/pkg/app"
	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志")
	configPath := flag.String("config", "", "游戏配置文件路径（默认使用内置 data/game.yaml）")
	seed := flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	skipMenu := flag.Bool("play", false, "跳过标题界面直接开始")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		SkipMenu:   *skipMenu,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Fruit Pop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the game loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}

	gameApp.SaveOnExit()
}
