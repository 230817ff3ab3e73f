// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"
)

// TokenType 定义泡泡（水果）的类型
type TokenType int

const (
	// TokenApple 苹果
	TokenApple TokenType = iota
	// TokenCherry 樱桃
	TokenCherry
	// TokenOrange 橙子
	TokenOrange
	// TokenPear 梨
	TokenPear
	// TokenPeach 桃子
	TokenPeach
	// TokenBlocker 障碍泡泡，只能靠掉落清除，不会作为下一发发放
	TokenBlocker
	// TokenDebug 调试/预览用，不参与正常玩法
	TokenDebug
)

// AllTokenTypes 按枚举顺序返回全部类型
func AllTokenTypes() []TokenType {
	return []TokenType{
		TokenApple,
		TokenCherry,
		TokenOrange,
		TokenPear,
		TokenPeach,
		TokenBlocker,
		TokenDebug,
	}
}

// FruitTokenTypes 返回可发放的水果类型（不含 Blocker 和 Debug）
func FruitTokenTypes() []TokenType {
	return []TokenType{TokenApple, TokenCherry, TokenOrange, TokenPear, TokenPeach}
}

// String 返回类型的字符串表示
func (t TokenType) String() string {
	switch t {
	case TokenApple:
		return "Apple"
	case TokenCherry:
		return "Cherry"
	case TokenOrange:
		return "Orange"
	case TokenPear:
		return "Pear"
	case TokenPeach:
		return "Peach"
	case TokenBlocker:
		return "Blocker"
	case TokenDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// Symbol 返回单字符表示，用于文本快照和终端界面
func (t TokenType) Symbol() rune {
	switch t {
	case TokenApple:
		return 'A'
	case TokenCherry:
		return 'C'
	case TokenOrange:
		return 'O'
	case TokenPear:
		return 'P'
	case TokenPeach:
		return 'H'
	case TokenBlocker:
		return '#'
	case TokenDebug:
		return '?'
	default:
		return ' '
	}
}

// IsDealable 是否可以作为下一发泡泡发放给玩家
func (t TokenType) IsDealable() bool {
	return t >= TokenApple && t <= TokenPeach
}

// ParseTokenType 将配置文件中的名称转换为 TokenType（不区分大小写）
func ParseTokenType(name string) (TokenType, error) {
	for _, t := range AllTokenTypes() {
		if strings.EqualFold(t.String(), strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown token type %q", name)
}
