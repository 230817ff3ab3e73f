package components

import "github.com/decker502/fruitpop/pkg/types"

// TokenComponent 泡泡组件
// 棋盘上每个泡泡实体都挂有此组件，实体由所在格子唯一持有
type TokenComponent struct {
	Type types.TokenType
}
