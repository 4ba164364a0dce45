// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包持有该文件系统，让 app 和测试以 fs.FS 的形式访问资源。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	assetsFS    fs.FS
	initialized bool
)

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets fs.FS) {
	assetsFS = assets
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// FS 返回资源文件系统，未初始化时返回 nil
func FS() fs.FS {
	if !initialized {
		return nil
	}
	return assetsFS
}

// normalize 标准化路径分隔符并校验前缀
func normalize(path string) (string, error) {
	if !initialized {
		return "", fmt.Errorf("embedded package not initialized, call Init() first")
	}

	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "assets/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/')", path)
	}
	return path, nil
}

// Open 打开资源文件，路径必须以 "assets/" 开头
func Open(path string) (fs.File, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return assetsFS.Open(p)
}

// ReadFile 读取资源文件内容，路径必须以 "assets/" 开头
func ReadFile(path string) ([]byte, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(assetsFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}
