package components

import (
	"testing"

	"github.com/decker502/ogmenu/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapFrames 测试用的帧来源
type mapFrames map[string]*ebiten.Image

func (m mapFrames) Frame(key string) *ebiten.Image {
	return m[key]
}

func TestSpriteSizeAndScale(t *testing.T) {
	s := NewSprite(0, 0, ebiten.NewImage(100, 50))

	assert.Equal(t, 100.0, s.Width())
	assert.Equal(t, 50.0, s.Height())

	s.SetScale(0.5)
	assert.Equal(t, 50.0, s.Width())
	assert.Equal(t, 25.0, s.Height())

	// 非等比拉伸到任意尺寸
	s.SetSize(1280, 720)
	assert.Equal(t, 1280.0, s.Width())
	assert.Equal(t, 720.0, s.Height())
	assert.Equal(t, 12.8, s.ScaleX)
	assert.Equal(t, 14.4, s.ScaleY)
}

func TestSpriteAnchorAndContains(t *testing.T) {
	s := NewSprite(100, 100, ebiten.NewImage(40, 20))
	s.SetAnchor(0.5, 0.5)

	assert.Equal(t, 80.0, s.Left())
	assert.Equal(t, 90.0, s.Top())
	cx, cy := s.Center()
	assert.Equal(t, 100.0, cx)
	assert.Equal(t, 100.0, cy)

	assert.True(t, s.Contains(100, 100))
	assert.True(t, s.Contains(80, 90))
	assert.False(t, s.Contains(120, 100), "right edge is exclusive")
	assert.False(t, s.Contains(79, 100))

	s.Visible = false
	assert.False(t, s.Contains(100, 100))
}

func TestSpriteLoadTexture(t *testing.T) {
	frames := mapFrames{
		"on":  ebiten.NewImage(32, 32),
		"off": ebiten.NewImage(32, 32),
	}

	s := NewSpriteFromFrame(0, 0, frames, "off")
	assert.Equal(t, "off", s.FrameKey)
	assert.Same(t, frames["off"], s.Image)

	require.True(t, s.LoadTexture(frames, "on"))
	assert.Same(t, frames["on"], s.Image)

	// 帧不存在时保留原有图像
	assert.False(t, s.LoadTexture(frames, "missing"))
	assert.Equal(t, "on", s.FrameKey)
	assert.Same(t, frames["on"], s.Image)

	assert.False(t, s.LoadTexture(nil, "on"))
}

func TestSpriteInputUp(t *testing.T) {
	s := NewSprite(0, 0, ebiten.NewImage(10, 10))
	calls := 0
	s.OnInputUp = func() { calls++ }

	// 未启用输入时不响应
	s.HandlePointer(utils.PointerEvent{Type: utils.PointerDown, X: 5, Y: 5})
	s.HandlePointer(utils.PointerEvent{Type: utils.PointerUp, X: 5, Y: 5})
	assert.Equal(t, 0, calls)

	s.InputEnabled = true
	assert.True(t, s.HandlePointer(utils.PointerEvent{Type: utils.PointerDown, X: 5, Y: 5}))
	assert.True(t, s.HandlePointer(utils.PointerEvent{Type: utils.PointerUp, X: 6, Y: 6}))
	assert.Equal(t, 1, calls)

	// 在外部释放不触发
	s.HandlePointer(utils.PointerEvent{Type: utils.PointerDown, X: 5, Y: 5})
	s.HandlePointer(utils.PointerEvent{Type: utils.PointerUp, X: 50, Y: 50})
	assert.Equal(t, 1, calls)

	// 在外部按下、内部释放不触发
	s.HandlePointer(utils.PointerEvent{Type: utils.PointerDown, X: 50, Y: 50})
	s.HandlePointer(utils.PointerEvent{Type: utils.PointerUp, X: 5, Y: 5})
	assert.Equal(t, 1, calls)
}

func TestSpriteDrawNilImage(t *testing.T) {
	screen := ebiten.NewImage(10, 10)
	s := NewSprite(0, 0, nil)
	assert.NotPanics(t, func() { s.Draw(screen) })
	assert.Zero(t, s.Width())
}
