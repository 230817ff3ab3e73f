package types

import "testing"

func TestParseTokenType(t *testing.T) {
	tests := []struct {
		input   string
		want    TokenType
		wantErr bool
	}{
		{"apple", TokenApple, false},
		{"Cherry", TokenCherry, false},
		{" PEACH ", TokenPeach, false},
		{"blocker", TokenBlocker, false},
		{"banana", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTokenType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTokenType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTokenType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsDealable(t *testing.T) {
	for _, tt := range FruitTokenTypes() {
		if !tt.IsDealable() {
			t.Errorf("%v should be dealable", tt)
		}
	}
	if TokenBlocker.IsDealable() {
		t.Error("Blocker should not be dealable")
	}
	if TokenDebug.IsDealable() {
		t.Error("Debug should not be dealable")
	}
}

// TestSymbolsUnique 快照依赖每种类型有唯一字符
func TestSymbolsUnique(t *testing.T) {
	seen := make(map[rune]TokenType)
	for _, tt := range AllTokenTypes() {
		s := tt.Symbol()
		if prev, ok := seen[s]; ok {
			t.Errorf("symbol %q shared by %v and %v", s, prev, tt)
		}
		seen[s] = tt
	}
}
