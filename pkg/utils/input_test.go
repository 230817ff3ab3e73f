package utils

import "testing"

func TestAimGestureStartsIdle(t *testing.T) {
	g := NewAimGesture()
	if g.Phase() != AimIdle {
		t.Errorf("phase = %v, want AimIdle", g.Phase())
	}
	if g.Active() || g.Released() || g.IsTouch() {
		t.Error("new gesture should be idle")
	}
}

func TestAimGestureReset(t *testing.T) {
	g := NewAimGesture()
	g.phase = AimReleased
	g.touch = true
	g.touchID = 3
	g.x, g.y = 40, 50

	g.Reset()
	if g.Phase() != AimIdle || g.IsTouch() || g.touchID != -1 {
		t.Errorf("after Reset: phase %v touch %v id %d", g.Phase(), g.IsTouch(), g.touchID)
	}
	// 位置保留，供松开后的最后一帧使用
	if x, y := g.Position(); x != 40 || y != 50 {
		t.Errorf("Position() = (%d, %d), want (40, 50)", x, y)
	}
}

func TestAimGesturePhases(t *testing.T) {
	tests := []struct {
		phase        AimPhase
		wantActive   bool
		wantReleased bool
	}{
		{AimIdle, false, false},
		{AimPressed, true, false},
		{AimHolding, true, false},
		{AimReleased, false, true},
	}

	for _, tt := range tests {
		g := &AimGesture{phase: tt.phase}
		if g.Active() != tt.wantActive || g.Released() != tt.wantReleased {
			t.Errorf("phase %d: Active=%v Released=%v, want %v %v",
				tt.phase, g.Active(), g.Released(), tt.wantActive, tt.wantReleased)
		}
	}
}
