package game

import (
	"log"

	"github.com/decker502/fruitpop/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "fruitpop"

// GameState 存储全局状态
// 这是一个单例，持有跨场景共享的存储和设置
type GameState struct {
	gdataManager    *gdata.Manager   // 可为 nil（降级模式，设置不持久化）
	settingsManager *SettingsManager // 玩家设置
}

// 全局单例实例（唯一允许的全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = newGameState(AppName)
	}
	return globalGameState
}

func newGameState(appName string) *GameState {
	gs := &GameState{}

	if err := utils.PrepareStorage(); err != nil {
		log.Printf("[GameState] Warning: storage not ready: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		// 无法访问存储目录时游戏照常运行，只是设置不保存
		log.Printf("[GameState] Warning: gdata unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	gs.gdataManager = manager

	sm, err := NewSettingsManager(manager)
	if err != nil {
		log.Printf("[GameState] Warning: settings manager init failed: %v", err)
	}
	gs.settingsManager = sm
	return gs
}

// GetGdataManager 返回 gdata 存储管理器，可能为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}
