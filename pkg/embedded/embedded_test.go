package embedded

import (
	"testing"
	"testing/fstest"
)

// resetEmbedded 测试结束后恢复未初始化状态
func resetEmbedded(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/game.yaml":      {Data: []byte("grid:\n  maxRows: 15\n")},
		"data/levels/a.yaml":  {Data: []byte("a")},
		"data/levels/b.yaml":  {Data: []byte("b")},
		"data/levels/readme":  {Data: []byte("c")},
		"other/not_data.yaml": {Data: []byte("x")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetEmbedded(t)
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 测试未初始化时调用各函数
func TestNotInitialized(t *testing.T) {
	resetEmbedded(t)
	initialized = false

	if _, err := Open(DefaultGameConfigPath); err != errNotInitialized {
		t.Errorf("Open: unexpected error %v", err)
	}
	if _, err := ReadFile(DefaultGameConfigPath); err != errNotInitialized {
		t.Errorf("ReadFile: unexpected error %v", err)
	}
	if _, err := Glob("data/*.yaml"); err != errNotInitialized {
		t.Errorf("Glob: unexpected error %v", err)
	}
	// Exists 在未初始化时应返回 false（因为内部调用 Open 会出错）
	if Exists(DefaultGameConfigPath) {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试读取和路径规范化
func TestReadFile(t *testing.T) {
	resetEmbedded(t)
	Init(testFS())

	for _, path := range []string{"data/game.yaml", "./data/game.yaml"} {
		data, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) failed: %v", path, err)
		}
		if string(data) != "grid:\n  maxRows: 15\n" {
			t.Errorf("ReadFile(%q) = %q", path, data)
		}
	}

	if _, err := ReadFile("data/missing.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestInvalidPrefix 测试无效路径前缀
func TestInvalidPrefix(t *testing.T) {
	resetEmbedded(t)
	Init(testFS())

	_, err := ReadFile("other/not_data.yaml")
	if err == nil {
		t.Fatal("Expected error for invalid path prefix")
	}
	if err.Error() != "unknown resource path prefix: other/not_data.yaml (must start with 'data/')" {
		t.Errorf("Unexpected error message: %v", err)
	}
	if Exists("other/not_data.yaml") {
		t.Error("Exists() must not see files outside data/")
	}
}

// TestGlob 测试通配符匹配
func TestGlob(t *testing.T) {
	resetEmbedded(t)
	Init(testFS())

	matches, err := Glob("data/levels/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob matched %v, want 2 yaml files", matches)
	}
	if !Exists("data/levels/readme") {
		t.Error("Exists(data/levels/readme) = false")
	}
}
