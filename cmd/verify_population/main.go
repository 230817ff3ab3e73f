// verify_population 统计关卡生成结果
//
// 对每个关卡使用多个随机种子生成棋盘，输出预算区间和各阶段的平均生成数量，
// 用于调整 data/game.yaml 中的生成区段。
//
// 用法:
//
//	go run ./cmd/verify_population [-config data/game.yaml] [-levels 1-35] [-seeds 50] [-width wide]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/ecs"
	"github.com/decker502/fruitpop/pkg/systems"
)

var (
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置默认值）")
	levels     = flag.String("levels", "1-35", "关卡范围，如 1-35 或 7")
	seeds      = flag.Int("seeds", 50, "每个关卡使用的随机种子数量")
	width      = flag.String("width", "", "覆盖网格宽度 narrow/wide")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			fmt.Printf("❌ 加载配置失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *width != "" {
		if *width != config.GridWidthNarrow && *width != config.GridWidthWide {
			fmt.Printf("❌ 未知的网格宽度: %s\n", *width)
			os.Exit(1)
		}
		cfg.Grid.Width = *width
	}

	from, to, err := parseLevelRange(*levels)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	if err := report(os.Stdout, cfg, from, to, *seeds); err != nil {
		fmt.Printf("❌ 统计失败: %v\n", err)
		os.Exit(1)
	}
}

// parseLevelRange 解析 "a-b" 或单个关卡号
func parseLevelRange(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid level range %q: %w", s, err)
	}
	to := from
	if len(parts) == 2 {
		to, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid level range %q: %w", s, err)
		}
	}
	if from < 1 || to < from {
		return 0, 0, fmt.Errorf("invalid level range %q", s)
	}
	return from, to, nil
}

// levelSummary 一个关卡在所有种子上的平均值
type levelSummary struct {
	level    int
	low      int
	high     int
	budget   float64
	seeded   float64
	branched float64
	backward float64
	forward  float64
	blockers float64
	placed   float64
	maxRow   int
}

// summarize 对一个关卡运行 seedCount 次生成
func summarize(cfg *config.GameConfig, popCfg systems.PopulateConfig, level, seedCount int) (levelSummary, error) {
	sum := levelSummary{level: level, maxRow: -1}
	gs := systems.NewHexGridSystem(ecs.NewEntityManager())

	for seed := 1; seed <= seedCount; seed++ {
		if err := gs.Build(cfg.Grid.MaxRows, cfg.Grid.Columns()); err != nil {
			return sum, err
		}
		p := systems.NewLevelPopulator(gs, rand.New(rand.NewSource(int64(seed))))
		stats, err := p.PopulateWithStats(level, popCfg)
		if err != nil {
			return sum, fmt.Errorf("level %d seed %d: %w", level, seed, err)
		}

		sum.low, sum.high = stats.Low, stats.High
		sum.budget += float64(stats.Budget)
		sum.seeded += float64(stats.Seeded)
		sum.branched += float64(stats.Branched)
		sum.backward += float64(stats.Backward)
		sum.forward += float64(stats.Forward)
		sum.blockers += float64(stats.Blockers)
		sum.placed += float64(stats.Placed)

		grid, err := gs.Grid()
		if err != nil {
			return sum, err
		}
		for i := range grid.Cells {
			if grid.Cells[i].Occupant != 0 && grid.Cells[i].Row > sum.maxRow {
				sum.maxRow = grid.Cells[i].Row
			}
		}
	}

	n := float64(seedCount)
	sum.budget /= n
	sum.seeded /= n
	sum.branched /= n
	sum.backward /= n
	sum.forward /= n
	sum.blockers /= n
	sum.placed /= n
	return sum, nil
}

// report 输出每个关卡的统计表
func report(w io.Writer, cfg *config.GameConfig, from, to, seedCount int) error {
	if seedCount < 1 {
		return fmt.Errorf("seed count must be positive, got %d", seedCount)
	}
	popCfg, err := systems.NewPopulateConfig(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "网格: %d 行 x %d 列 (%s), 可生成行数 %d, 障碍概率 %.2f, 种子数 %d\n\n",
		cfg.Grid.MaxRows, cfg.Grid.Columns(), cfg.Grid.Width, popCfg.MaxRowForSpawn, popCfg.BlockerChance, seedCount)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "level\tinterval\tbudget\tseeded\tbranched\tbackward\tforward\tblockers\tplaced\tmaxRow\t")
	for level := from; level <= to; level++ {
		s, err := summarize(cfg, popCfg, level, seedCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t[%d,%d)\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%d\t\n",
			s.level, s.low, s.high, s.budget, s.seeded, s.branched, s.backward, s.forward, s.blockers, s.placed, s.maxRow)
	}
	return tw.Flush()
}
