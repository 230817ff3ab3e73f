// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerPosition 获取当前指针位置（触摸或鼠标）
// 有触摸时优先返回第一个触摸点
func PointerPosition() (int, int) {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// AimPhase 瞄准手势阶段
type AimPhase int

const (
	// AimIdle 没有按下
	AimIdle AimPhase = iota
	// AimPressed 本帧刚按下
	AimPressed
	// AimHolding 按住移动中
	AimHolding
	// AimReleased 本帧松开，即发射
	AimReleased
)

// AimGesture 一次"按下-拖动-松开"瞄准手势
//
// 鼠标和触摸统一处理：按下开始瞄准，拖动时跟随，松开的位置就是发射目标。
// 触摸松开后拿不到坐标，所以松开时使用最后一次记录的位置。
type AimGesture struct {
	phase   AimPhase
	touchID ebiten.TouchID
	touch   bool
	x, y    int
}

// NewAimGesture 创建空闲状态的手势跟踪器
func NewAimGesture() *AimGesture {
	return &AimGesture{touchID: -1}
}

// Update 每帧调用一次
func (g *AimGesture) Update() {
	switch g.phase {
	case AimIdle:
		g.begin()
	case AimPressed, AimHolding:
		if g.stillHeld() {
			g.phase = AimHolding
			g.track()
		} else {
			g.phase = AimReleased
		}
	case AimReleased:
		g.Reset()
		g.begin()
	}
}

func (g *AimGesture) begin() {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		g.touchID = touchIDs[0]
		g.touch = true
		g.x, g.y = ebiten.TouchPosition(g.touchID)
		g.phase = AimPressed
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.touchID = -1
		g.touch = false
		g.x, g.y = ebiten.CursorPosition()
		g.phase = AimPressed
	}
}

func (g *AimGesture) stillHeld() bool {
	if !g.touch {
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		if id == g.touchID {
			return true
		}
	}
	return false
}

func (g *AimGesture) track() {
	if g.touch {
		g.x, g.y = ebiten.TouchPosition(g.touchID)
		return
	}
	g.x, g.y = ebiten.CursorPosition()
}

// Reset 回到空闲状态（切换场景时调用，避免残留的松开事件）
func (g *AimGesture) Reset() {
	g.phase = AimIdle
	g.touchID = -1
	g.touch = false
}

// Phase 当前阶段
func (g *AimGesture) Phase() AimPhase {
	return g.phase
}

// Position 手势当前（或松开时）的位置
func (g *AimGesture) Position() (int, int) {
	return g.x, g.y
}

// Active 是否正在按住
func (g *AimGesture) Active() bool {
	return g.phase == AimPressed || g.phase == AimHolding
}

// Released 本帧是否松开
func (g *AimGesture) Released() bool {
	return g.phase == AimReleased
}

// IsTouch 是否为触摸手势
func (g *AimGesture) IsTouch() bool {
	return g.touch
}
