package config

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/decker502/fruitpop/pkg/types"
	"gopkg.in/yaml.v3"
)

// 网格宽度选项
const (
	GridWidthNarrow = "narrow"
	GridWidthWide   = "wide"
)

// 默认值（与原版一致）
const (
	DefaultMaxRows        = 15
	DefaultNarrowColumns  = 11
	DefaultWideColumns    = 16
	DefaultMaxRowForSpawn = 8
	DefaultBlockerChance  = 0.25
	DefaultMatchPoints    = 10
	DefaultDropPoints     = 20
)

// GameConfig 游戏配置数据结构
// 对应 data/game.yaml
type GameConfig struct {
	Grid       GridConfig       `yaml:"grid"`       // 网格尺寸
	Populate   PopulateSettings `yaml:"populate"`   // 关卡生成参数
	SpawnBands []SpawnBand      `yaml:"spawnBands"` // 按关卡分段的生成数量区间
	Scoring    ScoringConfig    `yaml:"scoring"`    // 计分
}

// GridConfig 网格尺寸配置
type GridConfig struct {
	MaxRows       int    `yaml:"maxRows"`       // 行数，默认 15
	Width         string `yaml:"width"`         // "narrow" 或 "wide"，默认 "narrow"
	NarrowColumns int    `yaml:"narrowColumns"` // 窄网格偶数行列数，默认 11
	WideColumns   int    `yaml:"wideColumns"`   // 宽网格偶数行列数，默认 16
}

// Columns 返回当前宽度对应的列数
func (g GridConfig) Columns() int {
	if g.Width == GridWidthWide {
		return g.WideColumns
	}
	return g.NarrowColumns
}

// PopulateSettings 关卡生成参数
type PopulateSettings struct {
	MaxRowForSpawn int      `yaml:"maxRowForSpawn"` // 只在前 N 行生成泡泡，默认 8
	BlockerChance  *float64 `yaml:"blockerChance"`  // 每个分支点生成障碍的概率 [0,1]，默认 0.25；显式写 0 关闭障碍
	TokenTypes     []string `yaml:"tokenTypes"`     // 参与生成和发放的水果类型，默认全部五种
}

// Chance 返回障碍概率（未配置时为默认值）
func (p PopulateSettings) Chance() float64 {
	if p.BlockerChance == nil {
		return DefaultBlockerChance
	}
	return *p.BlockerChance
}

// TokenPool 将类型名称解析为 TokenType 列表
func (p PopulateSettings) TokenPool() ([]types.TokenType, error) {
	pool := make([]types.TokenType, 0, len(p.TokenTypes))
	for _, name := range p.TokenTypes {
		t, err := types.ParseTokenType(name)
		if err != nil {
			return nil, err
		}
		pool = append(pool, t)
	}
	return pool, nil
}

// SpawnBand 一个关卡区段的生成数量区间
// 区间为 [ceil(total/LowDivisor), ceil(total/HighDivisor)+1)
type SpawnBand struct {
	FromLevel   int     `yaml:"fromLevel"`   // 从第几关开始生效
	LowDivisor  float64 `yaml:"lowDivisor"`  // 下限除数
	HighDivisor float64 `yaml:"highDivisor"` // 上限除数
}

// ScoringConfig 计分配置
type ScoringConfig struct {
	MatchPoints int `yaml:"matchPoints"` // 每个被匹配消除的泡泡得分，默认 10
	DropPoints  int `yaml:"dropPoints"`  // 每个掉落的泡泡得分，默认 20
}

// DefaultSpawnBands 返回原版的 5 关一档的生成区间表
func DefaultSpawnBands() []SpawnBand {
	return []SpawnBand{
		{FromLevel: 1, LowDivisor: 8, HighDivisor: 4},
		{FromLevel: 6, LowDivisor: 6, HighDivisor: 4},
		{FromLevel: 11, LowDivisor: 5, HighDivisor: 3},
		{FromLevel: 16, LowDivisor: 4, HighDivisor: 3},
		{FromLevel: 21, LowDivisor: 4, HighDivisor: 2},
		{FromLevel: 26, LowDivisor: 3, HighDivisor: 2},
		{FromLevel: 31, LowDivisor: 2, HighDivisor: 2},
	}
}

// DefaultGameConfig 返回全部使用默认值的配置
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{}
	applyDefaults(cfg)
	return cfg
}

// SpawnInterval 计算指定关卡的生成数量区间 [low, high)
// 参数:
//   - bands: 按 FromLevel 升序排列的区段表
//   - level: 关卡号（从 1 开始）
//   - totalCells: 整个网格的格子数
//
// 返回:
//   - low, high: 半开区间；关卡号小于第一档时返回 [0, 0)
func SpawnInterval(bands []SpawnBand, level, totalCells int) (low, high int) {
	var band *SpawnBand
	for i := range bands {
		if level >= bands[i].FromLevel {
			band = &bands[i]
		}
	}
	if band == nil {
		return 0, 0
	}
	t := float64(totalCells)
	low = int(math.Ceil(t / band.LowDivisor))
	high = int(math.Ceil(t/band.HighDivisor)) + 1
	return low, high
}

// TotalCells 返回 rows 行交错网格的格子总数（奇数行少一列）
func TotalCells(rows, columns int) int {
	return rows*columns - rows/2
}

// LoadGameConfig 从YAML文件加载游戏配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*GameConfig - 已填充默认值并通过校验的配置
//	error - 读取、解析或校验失败
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("game config %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析 YAML 内容（用于嵌入的默认配置）
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *GameConfig) {
	if cfg.Grid.MaxRows == 0 {
		cfg.Grid.MaxRows = DefaultMaxRows
	}
	if cfg.Grid.Width == "" {
		cfg.Grid.Width = GridWidthNarrow
	}
	if cfg.Grid.NarrowColumns == 0 {
		cfg.Grid.NarrowColumns = DefaultNarrowColumns
	}
	if cfg.Grid.WideColumns == 0 {
		cfg.Grid.WideColumns = DefaultWideColumns
	}

	if cfg.Populate.MaxRowForSpawn == 0 {
		cfg.Populate.MaxRowForSpawn = DefaultMaxRowForSpawn
	}
	if cfg.Populate.BlockerChance == nil {
		chance := DefaultBlockerChance
		cfg.Populate.BlockerChance = &chance
	}
	if len(cfg.Populate.TokenTypes) == 0 {
		for _, t := range types.FruitTokenTypes() {
			cfg.Populate.TokenTypes = append(cfg.Populate.TokenTypes, t.String())
		}
	}

	if len(cfg.SpawnBands) == 0 {
		cfg.SpawnBands = DefaultSpawnBands()
	}
	sort.SliceStable(cfg.SpawnBands, func(i, j int) bool {
		return cfg.SpawnBands[i].FromLevel < cfg.SpawnBands[j].FromLevel
	})

	if cfg.Scoring.MatchPoints == 0 {
		cfg.Scoring.MatchPoints = DefaultMatchPoints
	}
	if cfg.Scoring.DropPoints == 0 {
		cfg.Scoring.DropPoints = DefaultDropPoints
	}
}

// validateGameConfig 验证配置的完整性和合法性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Grid.MaxRows < 1 {
		return fmt.Errorf("grid.maxRows must be >= 1, got %d", cfg.Grid.MaxRows)
	}
	if cfg.Grid.Width != GridWidthNarrow && cfg.Grid.Width != GridWidthWide {
		return fmt.Errorf("grid.width must be one of: narrow, wide, got %q", cfg.Grid.Width)
	}
	if cfg.Grid.NarrowColumns < 2 || cfg.Grid.WideColumns < 2 {
		return fmt.Errorf("grid columns must be >= 2, got narrow=%d wide=%d", cfg.Grid.NarrowColumns, cfg.Grid.WideColumns)
	}

	if cfg.Populate.MaxRowForSpawn < 1 || cfg.Populate.MaxRowForSpawn > cfg.Grid.MaxRows {
		return fmt.Errorf("populate.maxRowForSpawn must be between 1 and %d, got %d",
			cfg.Grid.MaxRows, cfg.Populate.MaxRowForSpawn)
	}
	if chance := cfg.Populate.Chance(); chance < 0 || chance > 1 {
		return fmt.Errorf("populate.blockerChance must be between 0 and 1, got %v", chance)
	}

	pool, err := cfg.Populate.TokenPool()
	if err != nil {
		return fmt.Errorf("populate.tokenTypes: %w", err)
	}
	seen := make(map[types.TokenType]bool)
	for _, t := range pool {
		if !t.IsDealable() {
			return fmt.Errorf("populate.tokenTypes: %s cannot be dealt", t)
		}
		if seen[t] {
			return fmt.Errorf("populate.tokenTypes: duplicate type %s", t)
		}
		seen[t] = true
	}

	for i, band := range cfg.SpawnBands {
		if band.FromLevel < 1 {
			return fmt.Errorf("spawnBands[%d]: fromLevel must be >= 1, got %d", i, band.FromLevel)
		}
		if band.LowDivisor <= 0 || band.HighDivisor <= 0 {
			return fmt.Errorf("spawnBands[%d]: divisors must be > 0, got low=%v high=%v", i, band.LowDivisor, band.HighDivisor)
		}
		if i > 0 && band.FromLevel == cfg.SpawnBands[i-1].FromLevel {
			return fmt.Errorf("spawnBands[%d]: duplicate fromLevel %d", i, band.FromLevel)
		}
	}

	if cfg.Scoring.MatchPoints < 0 || cfg.Scoring.DropPoints < 0 {
		return fmt.Errorf("scoring points cannot be negative")
	}

	return nil
}
