package components

import (
	"log"
	"math"

	"github.com/decker502/ogmenu/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// FrameSource 按帧名提供图像（game.Atlas 实现了该接口）
type FrameSource interface {
	Frame(key string) *ebiten.Image
}

// Sprite 屏幕上的一张图片
//
// 位置 (X, Y) 是锚点所在的屏幕坐标：Anchor (0,0) 表示左上角，(0.5,0.5) 表示中心。
// Width / Height 返回缩放后的尺寸。
type Sprite struct {
	Image    *ebiten.Image
	FrameKey string // 当前帧名（来自图集时）

	X, Y             float64
	AnchorX, AnchorY float64
	ScaleX, ScaleY   float64

	Visible bool

	// InputEnabled 为 true 时才响应指针事件
	InputEnabled bool
	// OnInputUp 在精灵上按下并在精灵上释放时调用
	OnInputUp func()

	pressed bool
}

// NewSprite 创建精灵，缩放为 1，锚点在左上角
func NewSprite(x, y float64, img *ebiten.Image) *Sprite {
	return &Sprite{
		Image:   img,
		X:       x,
		Y:       y,
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
	}
}

// NewSpriteFromFrame 使用图集中的一帧创建精灵
func NewSpriteFromFrame(x, y float64, src FrameSource, key string) *Sprite {
	s := NewSprite(x, y, nil)
	s.LoadTexture(src, key)
	return s
}

// LoadTexture 切换为图集中的另一帧
//
// 帧不存在时保留原有图像并记录日志。
//
// 返回：
//   - bool: 是否切换成功
func (s *Sprite) LoadTexture(src FrameSource, key string) bool {
	if src == nil {
		log.Printf("[Sprite] Warning: no frame source for %s", key)
		return false
	}
	img := src.Frame(key)
	if img == nil {
		log.Printf("[Sprite] Warning: frame %s not found", key)
		return false
	}
	s.Image = img
	s.FrameKey = key
	return true
}

// FrameWidth 返回未缩放的图像宽度
func (s *Sprite) FrameWidth() float64 {
	if s.Image == nil {
		return 0
	}
	return float64(s.Image.Bounds().Dx())
}

// FrameHeight 返回未缩放的图像高度
func (s *Sprite) FrameHeight() float64 {
	if s.Image == nil {
		return 0
	}
	return float64(s.Image.Bounds().Dy())
}

// Width 返回缩放后的宽度
func (s *Sprite) Width() float64 {
	return s.FrameWidth() * math.Abs(s.ScaleX)
}

// Height 返回缩放后的高度
func (s *Sprite) Height() float64 {
	return s.FrameHeight() * math.Abs(s.ScaleY)
}

// SetScale 设置统一缩放
func (s *Sprite) SetScale(scale float64) {
	s.ScaleX = scale
	s.ScaleY = scale
}

// SetSize 通过非等比缩放让精灵正好为 w×h
func (s *Sprite) SetSize(w, h float64) {
	if fw := s.FrameWidth(); fw > 0 {
		s.ScaleX = w / fw
	}
	if fh := s.FrameHeight(); fh > 0 {
		s.ScaleY = h / fh
	}
}

// SetAnchor 设置锚点（0~1）
func (s *Sprite) SetAnchor(ax, ay float64) {
	s.AnchorX = ax
	s.AnchorY = ay
}

// Left 返回左边缘的屏幕坐标
func (s *Sprite) Left() float64 {
	return s.X - s.AnchorX*s.Width()
}

// Top 返回上边缘的屏幕坐标
func (s *Sprite) Top() float64 {
	return s.Y - s.AnchorY*s.Height()
}

// Center 返回中心点的屏幕坐标
func (s *Sprite) Center() (float64, float64) {
	return s.Left() + s.Width()/2, s.Top() + s.Height()/2
}

// Contains 检查屏幕坐标是否落在精灵内
func (s *Sprite) Contains(x, y float64) bool {
	if !s.Visible || s.Image == nil {
		return false
	}
	left, top := s.Left(), s.Top()
	return x >= left && x < left+s.Width() && y >= top && y < top+s.Height()
}

// HandlePointer 处理一次指针事件
//
// 返回：
//   - bool: 事件是否被该精灵消费
func (s *Sprite) HandlePointer(ev utils.PointerEvent) bool {
	if !s.InputEnabled {
		return false
	}

	inside := s.Contains(ev.X, ev.Y)
	switch ev.Type {
	case utils.PointerDown:
		s.pressed = inside
		return inside
	case utils.PointerUp:
		wasPressed := s.pressed
		s.pressed = false
		if wasPressed && inside {
			if s.OnInputUp != nil {
				s.OnInputUp()
			}
			return true
		}
	}
	return false
}

// Draw 绘制精灵
func (s *Sprite) Draw(screen *ebiten.Image) {
	if !s.Visible || s.Image == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.AnchorX*s.FrameWidth(), -s.AnchorY*s.FrameHeight())
	op.GeoM.Scale(s.ScaleX, s.ScaleY)
	op.GeoM.Translate(s.X, s.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.Image, op)
}
