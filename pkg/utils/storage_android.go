//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 打开存储前创建 Android 存档目录
//
// gdata 在 Android 上把数据写到 /data/data/{package}/ 下，但不会创建子目录。
//
// 返回：
//   - error: 无法识别包名或目录不可写
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}

	saves := filepath.Join(dir, "saves")
	if err := os.MkdirAll(saves, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", saves, err)
	}

	check := filepath.Join(saves, ".write_check")
	if err := os.WriteFile(check, nil, 0644); err != nil {
		return fmt.Errorf("%s is not writable: %w", saves, err)
	}
	return os.Remove(check)
}

// GetStoragePath 返回 /data/data/{package}，识别失败时为空字符串
func GetStoragePath() string {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔参数，第一个参数就是包名
	pkg, _, _ := bytes.Cut(cmdline, []byte{0})
	pkg = bytes.TrimSpace(pkg)
	if len(pkg) == 0 {
		return ""
	}
	return filepath.Join("/data/data", string(pkg))
}
