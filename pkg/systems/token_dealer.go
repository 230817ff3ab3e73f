package systems

import (
	"math/rand"

	"github.com/decker502/fruitpop/pkg/types"
)

// DealerEntry 发放池条目
type DealerEntry struct {
	Type   types.TokenType
	Weight int // 权重值（棋盘上该类型的数量，越多越容易发到）
}

// TokenDealer 决定玩家下一发泡泡的类型
//
// 只发放棋盘上仍然存在的水果类型，按数量加权；
// 棋盘上没有水果时退回到整个池子等概率抽取。Blocker 和 Debug 永远不会发放。
type TokenDealer struct {
	grid *HexGridSystem
	rng  *rand.Rand
	pool []types.TokenType

	current types.TokenType
	onDeck  types.TokenType
}

// NewTokenDealer 创建发放器并立即准备好当前和待发的两发
// 参数:
//   - grid: 网格系统（读取类型计数）
//   - pool: 可发放的类型，不可发放的类型会被过滤；过滤后为空时使用全部水果
//   - rng: 随机数源
func NewTokenDealer(grid *HexGridSystem, pool []types.TokenType, rng *rand.Rand) *TokenDealer {
	d := &TokenDealer{
		grid: grid,
		rng:  rng,
	}
	for _, t := range pool {
		if t.IsDealable() {
			d.pool = append(d.pool, t)
		}
	}
	if len(d.pool) == 0 {
		d.pool = types.FruitTokenTypes()
	}
	d.Reset()
	return d
}

// Reset 重新抽取当前和待发（新关卡开始时调用）
func (d *TokenDealer) Reset() {
	d.current = d.deal()
	d.onDeck = d.deal()
}

// Current 返回当前要发射的泡泡类型
func (d *TokenDealer) Current() types.TokenType {
	return d.current
}

// OnDeck 返回下一发泡泡类型
func (d *TokenDealer) OnDeck() types.TokenType {
	return d.onDeck
}

// Take 取走当前泡泡，待发的顶上来，再抽一个新的待发
func (d *TokenDealer) Take() types.TokenType {
	taken := d.current
	d.current = d.onDeck
	d.onDeck = d.deal()
	return taken
}

// Swap 交换当前和待发
func (d *TokenDealer) Swap() {
	d.current, d.onDeck = d.onDeck, d.current
}

// Refresh 棋盘变化后替换已经不在棋盘上的类型
// 棋盘上没有任何水果时保持不变
func (d *TokenDealer) Refresh() {
	counts := d.grid.TypeCounts()
	if d.boardWeight(counts) == 0 {
		return
	}
	if counts[d.current] == 0 {
		d.current = d.deal()
	}
	if counts[d.onDeck] == 0 {
		d.onDeck = d.deal()
	}
}

// Entries 返回当前的发放池及权重
func (d *TokenDealer) Entries() []DealerEntry {
	counts := d.grid.TypeCounts()
	entries := make([]DealerEntry, 0, len(d.pool))
	for _, t := range d.pool {
		entries = append(entries, DealerEntry{Type: t, Weight: counts[t]})
	}
	return entries
}

func (d *TokenDealer) boardWeight(counts map[types.TokenType]int) int {
	total := 0
	for _, t := range d.pool {
		total += counts[t]
	}
	return total
}

// deal 按权重抽取一个类型
func (d *TokenDealer) deal() types.TokenType {
	entries := d.Entries()

	// 计算总权重
	totalWeight := 0
	for _, entry := range entries {
		totalWeight += entry.Weight
	}

	if totalWeight <= 0 {
		return d.pool[d.rng.Intn(len(d.pool))] // 棋盘上没有水果
	}

	roll := d.rng.Intn(totalWeight)
	cumulative := 0
	for _, entry := range entries {
		cumulative += entry.Weight
		if roll < cumulative {
			return entry.Type
		}
	}

	return d.pool[0] // fallback
}
