package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/fruitpop/pkg/types"
)

// TestLoadGameConfig 测试游戏配置文件加载
func TestLoadGameConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "game.yaml")

		validYAML := `grid:
  maxRows: 12
  width: wide
  wideColumns: 14
populate:
  maxRowForSpawn: 6
  blockerChance: 0
  tokenTypes: [Apple, cherry, " pear "]
spawnBands:
  - { fromLevel: 4, lowDivisor: 3, highDivisor: 2 }
  - { fromLevel: 1, lowDivisor: 8, highDivisor: 4 }
scoring:
  dropPoints: 50
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := LoadGameConfig(testFile)
		if err != nil {
			t.Fatalf("LoadGameConfig() failed: %v", err)
		}

		if cfg.Grid.MaxRows != 12 {
			t.Errorf("Expected maxRows 12, got %d", cfg.Grid.MaxRows)
		}
		if got := cfg.Grid.Columns(); got != 14 {
			t.Errorf("Expected wide columns 14, got %d", got)
		}
		if cfg.Grid.NarrowColumns != DefaultNarrowColumns {
			t.Errorf("Expected default narrow columns, got %d", cfg.Grid.NarrowColumns)
		}

		// 显式写 0 表示关闭障碍，不能被默认值覆盖
		if got := cfg.Populate.Chance(); got != 0 {
			t.Errorf("Expected blockerChance 0, got %v", got)
		}

		pool, err := cfg.Populate.TokenPool()
		if err != nil {
			t.Fatalf("TokenPool() failed: %v", err)
		}
		want := []types.TokenType{types.TokenApple, types.TokenCherry, types.TokenPear}
		if len(pool) != len(want) {
			t.Fatalf("Expected pool %v, got %v", want, pool)
		}
		for i := range want {
			if pool[i] != want[i] {
				t.Errorf("pool[%d] = %v, want %v", i, pool[i], want[i])
			}
		}

		// 区间表按 fromLevel 排序
		if cfg.SpawnBands[0].FromLevel != 1 || cfg.SpawnBands[1].FromLevel != 4 {
			t.Errorf("Expected bands sorted by fromLevel, got %+v", cfg.SpawnBands)
		}

		if cfg.Scoring.MatchPoints != DefaultMatchPoints || cfg.Scoring.DropPoints != 50 {
			t.Errorf("Unexpected scoring %+v", cfg.Scoring)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		testFile := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(testFile, []byte("grid: [unclosed"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		_, err := LoadGameConfig(testFile)
		if err == nil || !strings.Contains(err.Error(), "parse") {
			t.Errorf("Expected parse error, got %v", err)
		}
	})
}

func TestParseGameConfigDefaults(t *testing.T) {
	cfg, err := ParseGameConfig([]byte("{}"))
	if err != nil {
		t.Fatalf("ParseGameConfig() failed: %v", err)
	}

	if cfg.Grid.MaxRows != 15 || cfg.Grid.Width != GridWidthNarrow || cfg.Grid.Columns() != 11 {
		t.Errorf("Unexpected grid defaults %+v", cfg.Grid)
	}
	if cfg.Populate.MaxRowForSpawn != 8 || cfg.Populate.Chance() != 0.25 {
		t.Errorf("Unexpected populate defaults maxRow=%d chance=%v", cfg.Populate.MaxRowForSpawn, cfg.Populate.Chance())
	}
	if len(cfg.Populate.TokenTypes) != 5 {
		t.Errorf("Expected 5 default token types, got %v", cfg.Populate.TokenTypes)
	}
	if len(cfg.SpawnBands) != 7 {
		t.Errorf("Expected 7 default spawn bands, got %d", len(cfg.SpawnBands))
	}
}

func TestParseGameConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown width", "grid: {width: huge}"},
		{"negative rows", "grid: {maxRows: -1}"},
		{"one column", "grid: {narrowColumns: 1}"},
		{"spawn rows above grid", "grid: {maxRows: 5}\npopulate: {maxRowForSpawn: 6}"},
		{"chance above one", "populate: {blockerChance: 1.5}"},
		{"negative chance", "populate: {blockerChance: -0.5}"},
		{"unknown token", "populate: {tokenTypes: [apple, banana]}"},
		{"blocker token", "populate: {tokenTypes: [apple, blocker]}"},
		{"duplicate token", "populate: {tokenTypes: [apple, apple]}"},
		{"zero divisor", "spawnBands: [{fromLevel: 1, lowDivisor: 0, highDivisor: 2}]"},
		{"level zero band", "spawnBands: [{fromLevel: 0, lowDivisor: 8, highDivisor: 4}]"},
		{"duplicate band", "spawnBands: [{fromLevel: 1, lowDivisor: 8, highDivisor: 4}, {fromLevel: 1, lowDivisor: 6, highDivisor: 4}]"},
		{"negative points", "scoring: {matchPoints: -1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGameConfig([]byte(tt.yaml)); err == nil {
				t.Errorf("Expected validation error for %q", tt.yaml)
			}
		})
	}
}

func TestSpawnInterval(t *testing.T) {
	bands := DefaultSpawnBands()
	total := TotalCells(15, 11) // 158

	tests := []struct {
		level     int
		low, high int
	}{
		{0, 0, 0},
		{-3, 0, 0},
		{1, 20, 41},
		{5, 20, 41},
		{6, 27, 41},
		{11, 32, 54},
		{16, 40, 54},
		{21, 40, 80},
		{26, 53, 80},
		{31, 79, 80},
		{99, 79, 80},
	}

	for _, tt := range tests {
		low, high := SpawnInterval(bands, tt.level, total)
		if low != tt.low || high != tt.high {
			t.Errorf("level %d: got [%d, %d), want [%d, %d)", tt.level, low, high, tt.low, tt.high)
		}
	}
}

func TestTotalCells(t *testing.T) {
	tests := []struct{ rows, cols, want int }{
		{15, 11, 158},
		{15, 16, 233},
		{8, 11, 84},
		{1, 2, 2},
	}
	for _, tt := range tests {
		if got := TotalCells(tt.rows, tt.cols); got != tt.want {
			t.Errorf("TotalCells(%d, %d) = %d, want %d", tt.rows, tt.cols, got, tt.want)
		}
	}
}

// TestShippedGameConfig 仓库自带的 data/game.yaml 必须能通过校验，并与默认值一致
func TestShippedGameConfig(t *testing.T) {
	cfg, err := LoadGameConfig(filepath.Join("..", "..", "data", "game.yaml"))
	if err != nil {
		t.Fatalf("LoadGameConfig(data/game.yaml) failed: %v", err)
	}
	def := DefaultGameConfig()
	if cfg.Grid != def.Grid {
		t.Errorf("grid %+v differs from defaults %+v", cfg.Grid, def.Grid)
	}
	if cfg.Populate.MaxRowForSpawn != def.Populate.MaxRowForSpawn || cfg.Populate.Chance() != def.Populate.Chance() {
		t.Errorf("populate settings differ from defaults")
	}
	if len(cfg.SpawnBands) != len(def.SpawnBands) {
		t.Fatalf("spawn bands %d, want %d", len(cfg.SpawnBands), len(def.SpawnBands))
	}
	for i := range def.SpawnBands {
		if cfg.SpawnBands[i] != def.SpawnBands[i] {
			t.Errorf("band %d: %+v, want %+v", i, cfg.SpawnBands[i], def.SpawnBands[i])
		}
	}
}
