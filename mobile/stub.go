//go:build !mobile

// Package mobile 的桌面端占位
//
// 绑定入口 mobile.go 只在 -tags mobile 时编译；
// 普通构建 (go build ./...) 仍需要这个包里至少有一个文件。
package mobile

// Dummy 与 mobile.go 中的同名函数对应，保证两种构建导出相同的符号
func Dummy() {}
