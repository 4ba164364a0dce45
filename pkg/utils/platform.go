//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 设置环境变量 OGMENU_MOBILE_EMULATE=1 可在桌面上模拟移动端（禁用 F11 等窗口操作）
func IsMobile() bool {
	return os.Getenv("OGMENU_MOBILE_EMULATE") == "1"
}
