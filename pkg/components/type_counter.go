package components

import "github.com/decker502/fruitpop/pkg/types"

// TypeCounter 记录棋盘上每种泡泡的存活数量
// 只允许 HexGridSystem 在放置/移除/生成时修改
type TypeCounter struct {
	counts map[types.TokenType]int
}

// NewTypeCounter 创建计数器，所有类型初始为 0
func NewTypeCounter() *TypeCounter {
	c := &TypeCounter{}
	c.Reset()
	return c
}

// Reset 将所有类型计数清零
func (c *TypeCounter) Reset() {
	c.counts = make(map[types.TokenType]int, len(types.AllTokenTypes()))
	for _, t := range types.AllTokenTypes() {
		c.counts[t] = 0
	}
}

// Increment 某类型数量 +1
func (c *TypeCounter) Increment(t types.TokenType) {
	c.counts[t]++
}

// Decrement 某类型数量 -1，不会低于 0
// 返回 false 表示计数已经为 0（调用方记账出错）
func (c *TypeCounter) Decrement(t types.TokenType) bool {
	if c.counts[t] <= 0 {
		c.counts[t] = 0
		return false
	}
	c.counts[t]--
	return true
}

// Count 返回某类型的当前数量
func (c *TypeCounter) Count(t types.TokenType) int {
	return c.counts[t]
}

// Total 返回所有类型的数量之和
func (c *TypeCounter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Snapshot 返回计数副本，调用方修改不会影响内部状态
func (c *TypeCounter) Snapshot() map[types.TokenType]int {
	out := make(map[types.TokenType]int, len(c.counts))
	for t, n := range c.counts {
		out[t] = n
	}
	return out
}
