package game

import (
	"fmt"
	"log"

	"github.com/decker502/fruitpop/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// PlayerSettings 玩家设置和最佳记录
// 只保存偏好和成绩，不保存棋盘状态
type PlayerSettings struct {
	// 玩法设置
	GridWidth       string `yaml:"gridWidth"`       // "narrow" 或 "wide"
	BlockersEnabled bool   `yaml:"blockersEnabled"` // 是否生成障碍泡泡

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏

	// 最佳记录
	BestScore int `yaml:"bestScore"`
	BestLevel int `yaml:"bestLevel"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *PlayerSettings {
	return &PlayerSettings{
		GridWidth:       config.GridWidthNarrow,
		BlockersEnabled: true,
		Fullscreen:      false,
	}
}

// Apply 返回按玩家设置修改过的配置副本，不修改传入的配置
func (ps *PlayerSettings) Apply(cfg *config.GameConfig) *config.GameConfig {
	out := *cfg
	out.Grid.Width = ps.GridWidth
	if !ps.BlockersEnabled {
		zero := 0.0
		out.Populate.BlockerChance = &zero
	}
	return &out
}

// SettingsManager 设置管理器
// 负责玩家设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *PlayerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方判断，加载失败不会返回错误
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 未出现的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if loaded.GridWidth != config.GridWidthNarrow && loaded.GridWidth != config.GridWidthWide {
		log.Printf("[SettingsManager] Warning: unknown grid width %q, using %s", loaded.GridWidth, config.GridWidthNarrow)
		loaded.GridWidth = config.GridWidthNarrow
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *PlayerSettings {
	return sm.settings
}

// SetGridWidth 设置网格宽度
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 参数：
//   - width: "narrow" 或 "wide"
//
// 返回：
//   - error: 宽度名称不合法
func (sm *SettingsManager) SetGridWidth(width string) error {
	if width != config.GridWidthNarrow && width != config.GridWidthWide {
		return fmt.Errorf("unknown grid width %q", width)
	}
	sm.settings.GridWidth = width
	return nil
}

// ToggleGridWidth 在窄和宽之间切换，返回切换后的宽度
func (sm *SettingsManager) ToggleGridWidth() string {
	if sm.settings.GridWidth == config.GridWidthWide {
		sm.settings.GridWidth = config.GridWidthNarrow
	} else {
		sm.settings.GridWidth = config.GridWidthWide
	}
	return sm.settings.GridWidth
}

// SetBlockersEnabled 设置是否生成障碍
func (sm *SettingsManager) SetBlockersEnabled(enabled bool) {
	sm.settings.BlockersEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// RecordResult 记录一局的成绩
//
// 返回：
//   - bool: 是否刷新了最高分或最高关卡
func (sm *SettingsManager) RecordResult(score, level int) bool {
	improved := false
	if score > sm.settings.BestScore {
		sm.settings.BestScore = score
		improved = true
	}
	if level > sm.settings.BestLevel {
		sm.settings.BestLevel = level
		improved = true
	}
	if improved {
		log.Printf("[SettingsManager] New record: score %d, level %d", sm.settings.BestScore, sm.settings.BestLevel)
	}
	return improved
}
