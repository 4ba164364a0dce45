package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., loading screen, main menu, gameplay).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Lifecycle 是一个可选接口，场景实现它以接收生命周期回调
//
// SceneManager 切换场景时的调用顺序：
//
//	旧场景.Shutdown() → 新场景.Init() → 新场景.Create() → 新场景.Resize(w, h)
type Lifecycle interface {
	// Init 在场景激活前调用，用于清理上一场景残留和启动背景音乐
	Init()
	// Create 创建场景中的显示元素
	Create()
	// Shutdown 在场景被替换时调用，释放元素引用
	Shutdown()
}

// Resizable 是一个可选接口，场景实现它以响应视口尺寸变化
type Resizable interface {
	// Resize 在视口尺寸变化（窗口缩放、屏幕旋转）时调用
	Resize(width, height int)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
