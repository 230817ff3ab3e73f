package game

import (
	"testing"

	"github.com/decker502/fruitpop/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	useTempHome(t)
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.GridWidth != config.GridWidthNarrow {
		t.Errorf("GridWidth: got %q, want narrow", settings.GridWidth)
	}
	if !settings.BlockersEnabled {
		t.Error("BlockersEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.BestScore != 0 || settings.BestLevel != 0 {
		t.Errorf("records: got %d / %d, want 0 / 0", settings.BestScore, settings.BestLevel)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm.GetSettings().GridWidth != config.GridWidthNarrow {
		t.Errorf("Degraded mode GridWidth: got %q", sm.GetSettings().GridWidth)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	// 降级模式下 Load() 恢复默认值
	sm.SetBlockersEnabled(false)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if !sm.GetSettings().BlockersEnabled {
		t.Error("Load() in degraded mode should restore defaults")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	manager := openTestGdata(t, "fruitpop_test_settings")

	sm1, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if err := sm1.SetGridWidth(config.GridWidthWide); err != nil {
		t.Fatalf("SetGridWidth() error: %v", err)
	}
	sm1.SetBlockersEnabled(false)
	sm1.SetFullscreen(true)
	sm1.RecordResult(1500, 9)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	settings := sm2.GetSettings()

	if settings.GridWidth != config.GridWidthWide {
		t.Errorf("Loaded GridWidth: got %q, want wide", settings.GridWidth)
	}
	if settings.BlockersEnabled {
		t.Error("Loaded BlockersEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if settings.BestScore != 1500 || settings.BestLevel != 9 {
		t.Errorf("Loaded records: got %d / %d, want 1500 / 9", settings.BestScore, settings.BestLevel)
	}
}

// TestSettingsLoadCorrupted 存储内容损坏时回退到默认值
func TestSettingsLoadCorrupted(t *testing.T) {
	manager := openTestGdata(t, "fruitpop_test_corrupted")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("gridWidth: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm.GetSettings().GridWidth != config.GridWidthNarrow {
		t.Errorf("corrupted settings should fall back to defaults, got %+v", sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestSettingsLoadUnknownWidth 未知宽度名回退为 narrow，其余字段保留
func TestSettingsLoadUnknownWidth(t *testing.T) {
	manager := openTestGdata(t, "fruitpop_test_width")
	data := []byte("gridWidth: enormous\nbestScore: 77\n")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, _ := NewSettingsManager(manager)
	settings := sm.GetSettings()
	if settings.GridWidth != config.GridWidthNarrow {
		t.Errorf("GridWidth: got %q, want narrow", settings.GridWidth)
	}
	if settings.BestScore != 77 {
		t.Errorf("BestScore: got %d, want 77", settings.BestScore)
	}
	// 字段缺失时保留默认值
	if !settings.BlockersEnabled {
		t.Error("BlockersEnabled missing from storage should default to true")
	}
}

// TestSetGridWidth 测试宽度校验和切换
func TestSetGridWidth(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	if err := sm.SetGridWidth("huge"); err == nil {
		t.Error("SetGridWidth(huge) should fail")
	}
	if sm.GetSettings().GridWidth != config.GridWidthNarrow {
		t.Error("invalid width must not change settings")
	}

	if got := sm.ToggleGridWidth(); got != config.GridWidthWide {
		t.Errorf("ToggleGridWidth: got %q, want wide", got)
	}
	if got := sm.ToggleGridWidth(); got != config.GridWidthNarrow {
		t.Errorf("ToggleGridWidth: got %q, want narrow", got)
	}
}

// TestRecordResult 测试最佳记录只增不减
func TestRecordResult(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		score, level int
		improved     bool
		bestScore    int
		bestLevel    int
	}{
		{100, 2, true, 100, 2},
		{50, 1, false, 100, 2},
		{80, 3, true, 100, 3},
		{300, 1, true, 300, 3},
		{300, 3, false, 300, 3},
	}

	for _, tt := range tests {
		if got := sm.RecordResult(tt.score, tt.level); got != tt.improved {
			t.Errorf("RecordResult(%d, %d) = %v, want %v", tt.score, tt.level, got, tt.improved)
		}
		s := sm.GetSettings()
		if s.BestScore != tt.bestScore || s.BestLevel != tt.bestLevel {
			t.Errorf("after RecordResult(%d, %d): best %d / %d, want %d / %d",
				tt.score, tt.level, s.BestScore, s.BestLevel, tt.bestScore, tt.bestLevel)
		}
	}
}

// TestPlayerSettingsApply 测试设置覆盖到游戏配置
func TestPlayerSettingsApply(t *testing.T) {
	base := config.DefaultGameConfig()
	settings := &PlayerSettings{GridWidth: config.GridWidthWide, BlockersEnabled: false}

	applied := settings.Apply(base)
	if applied.Grid.Columns() != config.DefaultWideColumns {
		t.Errorf("applied columns %d, want %d", applied.Grid.Columns(), config.DefaultWideColumns)
	}
	if applied.Populate.Chance() != 0 {
		t.Errorf("blockers disabled should set chance 0, got %v", applied.Populate.Chance())
	}

	// 原配置不受影响
	if base.Grid.Width != config.GridWidthNarrow || base.Populate.Chance() != config.DefaultBlockerChance {
		t.Error("Apply must not modify the base config")
	}

	settings.BlockersEnabled = true
	if got := settings.Apply(base).Populate.Chance(); got != config.DefaultBlockerChance {
		t.Errorf("blockers enabled keeps configured chance, got %v", got)
	}
}
