package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/fruitpop/pkg/components"
	"github.com/decker502/fruitpop/pkg/config"
	"github.com/decker502/fruitpop/pkg/ecs"
	"github.com/decker502/fruitpop/pkg/systems"
	"github.com/decker502/fruitpop/pkg/types"
	"github.com/decker502/fruitpop/pkg/utils"
)

// ErrNotPlaying 游戏已结束，需要 StartNewGame 重新开始
var ErrNotPlaying = errors.New("session is not playing")

// SessionState 会话状态
type SessionState int

const (
	// StateIdle 尚未开始
	StateIdle SessionState = iota
	// StatePlaying 进行中
	StatePlaying
	// StateGameOver 有泡泡停在最后一行
	StateGameOver
)

// String 返回状态名称
func (s SessionState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Idle"
	}
}

// TurnResult 一次放置的完整结果
type TurnResult struct {
	systems.PlacementResult

	Token        types.TokenType   // 放置的泡泡类型
	Cell         components.CellID // 放置的格子
	ScoreGained  int
	LevelCleared bool // 本次放置清空了棋盘，已进入下一关
	GameOver     bool
}

// Session 一局游戏
//
// 持有网格、消除计算、关卡生成和发放器，负责关卡推进、计分和失败判定。
// 前端（ebiten 窗口、终端界面）只通过 Session 与核心交互。
type Session struct {
	cfg     *config.GameConfig
	popCfg  systems.PopulateConfig
	layout  utils.HexLayout
	rng     *rand.Rand
	verbose bool

	entityManager *ecs.EntityManager
	grid          *systems.HexGridSystem
	resolver      *systems.ConnectivityResolver
	populator     *systems.LevelPopulator
	dealer        *systems.TokenDealer

	state SessionState
	level int
	score int
}

// NewSession 创建会话（不会自动开始，需要调用 StartNewGame）
//
// 参数:
//   - cfg: 已校验的游戏配置
//   - rng: 随机数源，生成和发放共用；传入固定种子可复现整局
//
// 返回:
//   - error: 配置中的类型池无法解析
func NewSession(cfg *config.GameConfig, rng *rand.Rand) (*Session, error) {
	popCfg, err := systems.NewPopulateConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	em := ecs.NewEntityManager()
	grid := systems.NewHexGridSystem(em)

	s := &Session{
		cfg:           cfg,
		popCfg:        popCfg,
		layout:        utils.DefaultHexLayout(),
		rng:           rng,
		entityManager: em,
		grid:          grid,
		resolver:      systems.NewConnectivityResolver(grid),
		populator:     systems.NewLevelPopulator(grid, rng),
	}
	s.dealer = systems.NewTokenDealer(grid, popCfg.TokenTypePool, rng)
	return s, nil
}

// SetVerbose 每次放置后检查是否有残留的临时标记
func (s *Session) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// SetLayout 设置瞄准计算使用的屏幕布局
func (s *Session) SetLayout(layout utils.HexLayout) {
	s.layout = layout
}

// Reconfigure 替换配置（例如切换网格宽度），从下一次 StartLevel 起生效
func (s *Session) Reconfigure(cfg *config.GameConfig) error {
	popCfg, err := systems.NewPopulateConfig(cfg)
	if err != nil {
		return fmt.Errorf("reconfigure session: %w", err)
	}
	s.cfg = cfg
	s.popCfg = popCfg
	s.dealer = systems.NewTokenDealer(s.grid, popCfg.TokenTypePool, s.rng)
	return nil
}

// StartNewGame 从第 1 关开始，分数清零
func (s *Session) StartNewGame() error {
	s.score = 0
	return s.StartLevel(1)
}

// StartLevel 重建网格并生成指定关卡
func (s *Session) StartLevel(level int) error {
	if err := s.grid.Build(s.cfg.Grid.MaxRows, s.cfg.Grid.Columns()); err != nil {
		return fmt.Errorf("start level %d: %w", level, err)
	}
	if _, err := s.PopulateLevel(level); err != nil {
		return fmt.Errorf("start level %d: %w", level, err)
	}
	s.level = level
	s.state = StatePlaying
	s.dealer.Reset()

	log.Printf("[Session] Level %d started: %d tokens, next %s then %s",
		level, s.grid.OccupiedCount(), s.dealer.Current(), s.dealer.OnDeck())
	return nil
}

// PopulateLevel 在当前网格上生成指定关卡的泡泡
// 返回实际放置的数量
func (s *Session) PopulateLevel(level int) (int, error) {
	return s.populator.Populate(level, s.popCfg)
}

// Place 在格子上放置发放器当前的泡泡
func (s *Session) Place(id components.CellID) (TurnResult, error) {
	result, err := s.PlaceToken(id, s.dealer.Current())
	if err != nil {
		return result, err
	}
	s.dealer.Take()
	s.dealer.Refresh()
	return result, nil
}

// PlaceToken 在格子上放置指定类型的泡泡并结算
//
// 结算顺序：消除和掉落 → 计分 → 失败判定 → 清盘判定。
// 清盘后自动进入下一关。
//
// 返回:
//   - error: 游戏未进行（ErrNotPlaying）或违反放置约定（systems.ErrInvariantViolation）
func (s *Session) PlaceToken(id components.CellID, tokenType types.TokenType) (TurnResult, error) {
	turn := TurnResult{Token: tokenType, Cell: id}
	if s.state != StatePlaying {
		return turn, ErrNotPlaying
	}

	placement, err := s.resolver.PlaceToken(id, tokenType)
	if err != nil {
		return turn, err
	}
	turn.PlacementResult = placement

	turn.ScoreGained = placement.Matched*s.cfg.Scoring.MatchPoints + placement.Dropped*s.cfg.Scoring.DropPoints
	s.score += turn.ScoreGained

	if s.verbose {
		if tagged := s.grid.VerifyTags(); len(tagged) > 0 {
			log.Printf("[Session] %d cells kept pass tags after resolving cell %d", len(tagged), id)
		}
		if err := s.grid.VerifyOwnership(); err != nil {
			log.Printf("[Session] Token ownership broken after resolving cell %d: %v", id, err)
		}
	}

	grid, err := s.grid.Grid()
	if err != nil {
		return turn, err
	}

	// 泡泡停在最后一行且没有被消除
	if _, stillThere := s.grid.TokenAt(id); stillThere && grid.Cells[id].Row == grid.MaxRows-1 {
		s.state = StateGameOver
		turn.GameOver = true
		log.Printf("[Session] Game over at level %d, score %d", s.level, s.score)
		return turn, nil
	}

	if s.RemainingFruit() == 0 {
		turn.LevelCleared = true
		log.Printf("[Session] Level %d cleared, score %d", s.level, s.score)
		if err := s.StartLevel(s.level + 1); err != nil {
			return turn, err
		}
	}

	return turn, nil
}

// RemainingFruit 棋盘上剩余的非障碍泡泡数量
func (s *Session) RemainingFruit() int {
	total := 0
	for t, n := range s.grid.TypeCounts() {
		if t != types.TokenBlocker {
			total += n
		}
	}
	return total
}

// CanHold 格子是否可以停靠新泡泡：为空，且在顶行或挨着已有泡泡
func (s *Session) CanHold(id components.CellID) bool {
	grid, err := s.grid.Grid()
	if err != nil || !grid.IsValidCell(id) || grid.IsOccupied(id) {
		return false
	}
	if grid.Cells[id].Row == 0 {
		return true
	}
	for _, n := range grid.Cells[id].Neighbors {
		if grid.IsOccupied(n) {
			return true
		}
	}
	return false
}

// AimTarget 返回离屏幕坐标最近的可停靠格子
func (s *Session) AimTarget(x, y float64) (components.CellID, bool) {
	grid, err := s.grid.Grid()
	if err != nil {
		return components.NoCell, false
	}

	best := components.NoCell
	bestDist := 0.0
	for i := range grid.Cells {
		id := components.CellID(i)
		if !s.CanHold(id) {
			continue
		}
		d := s.layout.DistanceSq(x, y, grid.Cells[i].Row, grid.Cells[i].Col)
		if best == components.NoCell || d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best, best != components.NoCell
}

// NeighborsOf 返回相邻格子
func (s *Session) NeighborsOf(id components.CellID) []components.CellID {
	return s.grid.NeighborsOf(id)
}

// TypeCounts 返回各类型泡泡数量
func (s *Session) TypeCounts() map[types.TokenType]int {
	return s.grid.TypeCounts()
}

// CellAt 返回行列对应的格子
func (s *Session) CellAt(row, col int) (components.CellID, bool) {
	return s.grid.CellAt(row, col)
}

// TokenAt 返回格子上的泡泡类型
func (s *Session) TokenAt(id components.CellID) (types.TokenType, bool) {
	return s.grid.TokenAt(id)
}

// Grid 返回网格组件（只读使用）
func (s *Session) Grid() (*components.HexGridComponent, error) {
	return s.grid.Grid()
}

// Dealer 返回发放器
func (s *Session) Dealer() *systems.TokenDealer {
	return s.dealer
}

// Layout 返回屏幕布局
func (s *Session) Layout() utils.HexLayout {
	return s.layout
}

// Config 返回游戏配置
func (s *Session) Config() *config.GameConfig {
	return s.cfg
}

// State 返回会话状态
func (s *Session) State() SessionState {
	return s.state
}

// Level 返回当前关卡
func (s *Session) Level() int {
	return s.level
}

// Score 返回当前分数
func (s *Session) Score() int {
	return s.score
}
