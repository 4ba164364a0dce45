// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GetPointerState 获取指针的完整状态
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// ============================================================================
// 指针事件 - 把逐帧的按下/位置状态转换为 down / move / up 事件
// ============================================================================

// PointerEventType 指针事件类型
type PointerEventType int

const (
	// PointerDown 指针按下（本帧）
	PointerDown PointerEventType = iota
	// PointerMove 指针移动（按下或悬停）
	PointerMove
	// PointerUp 指针释放（本帧）
	PointerUp
)

// String 返回事件类型名（用于日志）
func (t PointerEventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent 一次指针事件，坐标为屏幕像素
type PointerEvent struct {
	Type PointerEventType
	X, Y float64
}

// PointerTracker 跟踪指针状态并生成事件
//
// 触摸释放时系统已不提供坐标，释放事件使用释放前最后一帧的位置。
type PointerTracker struct {
	down         bool
	lastX, lastY int
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{lastX: -1, lastY: -1}
}

// Poll 读取本帧的鼠标/触摸状态并返回事件
func (pt *PointerTracker) Poll() []PointerEvent {
	pressed, x, y := GetPointerState()
	touchReleased := len(ebiten.AppendTouchIDs(nil)) == 0 && len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0
	return pt.poll(pressed, x, y, touchReleased)
}

// poll 触摸刚释放时光标坐标无意义，改用按下期间记录的最后位置
func (pt *PointerTracker) poll(pressed bool, x, y int, touchReleased bool) []PointerEvent {
	if !pressed && pt.down && touchReleased {
		x, y = pt.lastX, pt.lastY
	}
	return pt.Step(pressed, x, y)
}

// Step 根据本帧状态生成事件
//
// 参数：
//   - pressed: 本帧指针是否按下
//   - x, y: 本帧指针位置
//
// 返回：
//   - []PointerEvent: 按发生顺序排列的事件（可能为空）
func (pt *PointerTracker) Step(pressed bool, x, y int) []PointerEvent {
	var events []PointerEvent

	if x != pt.lastX || y != pt.lastY {
		events = append(events, PointerEvent{Type: PointerMove, X: float64(x), Y: float64(y)})
	}

	switch {
	case pressed && !pt.down:
		events = append(events, PointerEvent{Type: PointerDown, X: float64(x), Y: float64(y)})
	case !pressed && pt.down:
		events = append(events, PointerEvent{Type: PointerUp, X: float64(x), Y: float64(y)})
	}

	pt.down = pressed
	pt.lastX, pt.lastY = x, y
	return events
}

// IsDown 返回指针当前是否按下
func (pt *PointerTracker) IsDown() bool {
	return pt.down
}

// Reset 清除按下状态（切换场景时调用，避免把上个场景的按下带到新场景）
func (pt *PointerTracker) Reset() {
	pt.down = false
	pt.lastX, pt.lastY = -1, -1
}
