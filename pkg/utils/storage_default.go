//go:build !android

package utils

// PrepareStorage 非 Android 平台无需处理，gdata 会自行创建存储目录
func PrepareStorage() error {
	return nil
}
