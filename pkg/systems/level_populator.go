package systems

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/types"
	"github.com/decker502/fruitpop/pkg/utils"
)

// PopulateConfig 关卡生成参数
type PopulateConfig struct {
	// MaxRowForSpawn 只在 row < MaxRowForSpawn 的格子生成，超过网格行数时按行数处理
	MaxRowForSpawn int
	// BlockerChance 每个分支点额外生成障碍的概率 [0,1]
	BlockerChance float64
	// TokenTypePool 可生成的水果类型，不能包含 Blocker 或 Debug
	TokenTypePool []types.TokenType
	// SpawnBands 生成数量区间表，为空时使用默认表
	SpawnBands []config.SpawnBand
}

// NewPopulateConfig 从游戏配置构造生成参数
func NewPopulateConfig(cfg *config.GameConfig) (PopulateConfig, error) {
	pool, err := cfg.Populate.TokenPool()
	if err != nil {
		return PopulateConfig{}, err
	}
	return PopulateConfig{
		MaxRowForSpawn: cfg.Populate.MaxRowForSpawn,
		BlockerChance:  cfg.Populate.Chance(),
		TokenTypePool:  pool,
		SpawnBands:     cfg.SpawnBands,
	}, nil
}

// PopulateStats 一次生成的统计（按阶段）
type PopulateStats struct {
	Level    int
	Low      int // 预算区间下限
	High     int // 预算区间上限（不含）
	Budget   int // 实际抽到的预算（已按可生成区域截断）
	Seeded   int // 顶行种子
	Branched int // 种子分支扩展
	Backward int // 自下而上补充
	Forward  int // 自上而下补充
	Blockers int // 其中的障碍数量
	Placed   int // 总数
}

// LevelPopulator 关卡开始时按随机分支生长的方式铺设泡泡
//
// 流程:
//  1. 按关卡区段计算数量区间，均匀抽取预算
//  2. 在顶行随机选若干列作为种子
//  3. 从种子出发逐轮向空邻格分支生长，直到没有新格子或预算用完
//  4. 从最底的可生成行向上，以每行已有泡泡为起点再生长一次
//  5. 从顶行向下，以每行所有格子为起点再生长一次
//
// 任何阶段都不会超出预算，也不会重复占用格子。
type LevelPopulator struct {
	grid *HexGridSystem
	rng  *rand.Rand
}

// NewLevelPopulator 创建关卡生成器
// 参数:
//   - grid: 已建立（或稍后建立）的网格系统
//   - rng: 随机数源，测试时传入固定种子以获得可复现的棋盘
func NewLevelPopulator(grid *HexGridSystem, rng *rand.Rand) *LevelPopulator {
	return &LevelPopulator{
		grid: grid,
		rng:  rng,
	}
}

// Populate 为指定关卡生成泡泡
//
// 返回:
//   - int: 实际放置的泡泡数量
//   - error: 网格未建立（ErrGridNotBuilt）或参数不合法
func (p *LevelPopulator) Populate(level int, cfg PopulateConfig) (int, error) {
	stats, err := p.PopulateWithStats(level, cfg)
	return stats.Placed, err
}

// populateRun 单次生成的可变状态
type populateRun struct {
	grid      *components.HexGridComponent
	cfg       PopulateConfig
	maxRow    int
	remaining int
	blockers  int
}

// PopulateWithStats 与 Populate 相同，额外返回各阶段统计
func (p *LevelPopulator) PopulateWithStats(level int, cfg PopulateConfig) (PopulateStats, error) {
	stats := PopulateStats{Level: level}

	grid, err := p.grid.Grid()
	if err != nil {
		return stats, fmt.Errorf("populate level %d: %w", level, err)
	}
	if err := validatePopulateConfig(cfg); err != nil {
		return stats, fmt.Errorf("populate level %d: %w", level, err)
	}

	bands := cfg.SpawnBands
	if len(bands) == 0 {
		bands = config.DefaultSpawnBands()
	}

	maxRow := cfg.MaxRowForSpawn
	if maxRow > grid.MaxRows {
		maxRow = grid.MaxRows
	}

	total := config.TotalCells(grid.MaxRows, grid.MaxColumns)
	stats.Low, stats.High = config.SpawnInterval(bands, level, total)
	budget := utils.RangeInt(p.rng, stats.Low, stats.High)
	if spawnable := config.TotalCells(maxRow, grid.MaxColumns); budget > spawnable {
		budget = spawnable
	}
	stats.Budget = budget

	log.Printf("[LevelPopulator] Level %d: interval [%d, %d), budget %d (spawn rows < %d)",
		level, stats.Low, stats.High, budget, maxRow)

	run := &populateRun{
		grid:      grid,
		cfg:       cfg,
		maxRow:    maxRow,
		remaining: budget,
	}

	// 种子
	seeds, err := p.seedAnchorRow(run)
	if err != nil {
		return stats, err
	}
	stats.Seeded = len(seeds)

	// 分支生长
	before := run.remaining
	if err := p.grow(run, seeds); err != nil {
		return stats, err
	}
	stats.Branched = before - run.remaining

	// 自下而上：每行已有的泡泡作为起点
	before = run.remaining
	for row := maxRow - 1; row >= 0 && run.remaining > 0; row-- {
		if err := p.grow(run, occupiedInRow(grid, row)); err != nil {
			return stats, err
		}
	}
	stats.Backward = before - run.remaining

	// 自上而下：每行所有格子作为起点
	before = run.remaining
	for row := 0; row < maxRow && run.remaining > 0; row++ {
		if err := p.grow(run, cellsInRow(grid, row)); err != nil {
			return stats, err
		}
	}
	stats.Forward = before - run.remaining

	stats.Blockers = run.blockers
	stats.Placed = budget - run.remaining

	if run.remaining > 0 {
		log.Printf("[LevelPopulator] Level %d: search exhausted with %d of budget unused", level, run.remaining)
	}
	log.Printf("[LevelPopulator] Level %d: placed %d (seed %d, branch %d, backward %d, forward %d, blockers %d)",
		level, stats.Placed, stats.Seeded, stats.Branched, stats.Backward, stats.Forward, stats.Blockers)

	return stats, nil
}

func validatePopulateConfig(cfg PopulateConfig) error {
	if cfg.MaxRowForSpawn < 1 {
		return fmt.Errorf("maxRowForSpawn must be >= 1, got %d", cfg.MaxRowForSpawn)
	}
	if cfg.BlockerChance < 0 || cfg.BlockerChance > 1 {
		return fmt.Errorf("blockerChance must be between 0 and 1, got %v", cfg.BlockerChance)
	}
	if len(cfg.TokenTypePool) == 0 {
		return fmt.Errorf("token type pool is empty")
	}
	for _, t := range cfg.TokenTypePool {
		if !t.IsDealable() {
			return fmt.Errorf("token type pool cannot contain %s", t)
		}
	}
	return nil
}

// seedAnchorRow 在顶行随机选 [2, 宽度) 个不同的列放置泡泡
func (p *LevelPopulator) seedAnchorRow(run *populateRun) ([]components.CellID, error) {
	if run.remaining <= 0 {
		return nil, nil
	}
	width := run.grid.ColumnsInRow(0)
	count := utils.RangeInt(p.rng, 2, width)
	if count > run.remaining {
		count = run.remaining
	}

	seeds := make([]components.CellID, 0, count)
	for _, col := range utils.ChooseUnique(p.rng, count, width) {
		id, _ := run.grid.CellAt(0, col)
		if err := p.place(run, id, p.randomPoolType(run.cfg)); err != nil {
			return seeds, err
		}
		seeds = append(seeds, id)
	}
	return seeds, nil
}

// grow 从 frontier 出发逐轮分支，新放置的格子组成下一轮的 frontier
func (p *LevelPopulator) grow(run *populateRun, frontier []components.CellID) error {
	for len(frontier) > 0 && run.remaining > 0 {
		var next []components.CellID

		for _, id := range frontier {
			if run.remaining <= 0 {
				break
			}

			empties := p.emptySpawnableNeighbors(run, id)
			if len(empties) == 0 {
				continue
			}

			// 普通泡泡：随机取 0..n 个空邻格
			count := p.rng.Intn(len(empties) + 1)
			if count > run.remaining {
				count = run.remaining
			}
			picked := utils.ChooseUnique(p.rng, count, len(empties))
			used := make(map[int]bool, len(picked))
			for _, idx := range picked {
				used[idx] = true
				if err := p.place(run, empties[idx], p.randomPoolType(run.cfg)); err != nil {
					return err
				}
				next = append(next, empties[idx])
			}

			// 障碍：按概率在剩下的空邻格中再取一部分
			if run.remaining <= 0 || run.cfg.BlockerChance <= 0 || p.rng.Float64() >= run.cfg.BlockerChance {
				continue
			}
			rest := make([]components.CellID, 0, len(empties)-len(picked))
			for i, cell := range empties {
				if !used[i] {
					rest = append(rest, cell)
				}
			}
			count = p.rng.Intn(len(rest) + 1)
			if count > run.remaining {
				count = run.remaining
			}
			for _, idx := range utils.ChooseUnique(p.rng, count, len(rest)) {
				if err := p.place(run, rest[idx], types.TokenBlocker); err != nil {
					return err
				}
				run.blockers++
				next = append(next, rest[idx])
			}
		}

		frontier = next
	}
	return nil
}

// emptySpawnableNeighbors 返回可生成区域内的空邻格
func (p *LevelPopulator) emptySpawnableNeighbors(run *populateRun, id components.CellID) []components.CellID {
	var empties []components.CellID
	for _, n := range run.grid.Cells[id].Neighbors {
		cell := &run.grid.Cells[n]
		if cell.Row < run.maxRow && cell.Occupant == 0 {
			empties = append(empties, n)
		}
	}
	return empties
}

func (p *LevelPopulator) place(run *populateRun, id components.CellID, tokenType types.TokenType) error {
	if err := p.grid.OccupyCell(id, tokenType); err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	run.remaining--
	return nil
}

func (p *LevelPopulator) randomPoolType(cfg PopulateConfig) types.TokenType {
	return cfg.TokenTypePool[p.rng.Intn(len(cfg.TokenTypePool))]
}

func occupiedInRow(grid *components.HexGridComponent, row int) []components.CellID {
	var out []components.CellID
	for _, id := range cellsInRow(grid, row) {
		if grid.IsOccupied(id) {
			out = append(out, id)
		}
	}
	return out
}

func cellsInRow(grid *components.HexGridComponent, row int) []components.CellID {
	n := grid.ColumnsInRow(row)
	out := make([]components.CellID, 0, n)
	for col := 0; col < n; col++ {
		out = append(out, grid.RowStart[row]+components.CellID(col))
	}
	return out
}
