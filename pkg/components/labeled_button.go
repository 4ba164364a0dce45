package components

import (
	"fmt"
	"image/color"

	"github.com/decker502/ogmenu/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// labelWidthRatio 文字最多占按钮宽度的比例
const labelWidthRatio = 0.9

// TextStyle 按钮文字样式
type TextStyle struct {
	Font  *text.GoTextFace
	Color color.Color
}

// LabeledButton 带文字的按钮
//
// 四张状态图对应 over / out / down / up：
//   - out: 指针不在按钮上
//   - over: 指针悬停在按钮上
//   - down: 在按钮上按下
//   - up: 在按钮上释放（之后保持，直到指针离开）
//
// 在按钮上按下并在按钮上释放时触发 OnClick。
type LabeledButton struct {
	*Sprite

	Label   string
	Style   TextStyle
	State   UIState
	OnClick func()

	overFrame, outFrame, downFrame, upFrame *ebiten.Image

	labelScale float64 // 文字缩放（已包含按钮缩放）
}

// NewLabeledButton 创建带文字的按钮，锚点在中心
//
// 参数：
//   - x, y: 按钮中心的屏幕坐标
//   - label: 按钮文字
//   - style: 文字样式
//   - onClick: 点击回调，可为 nil
func NewLabeledButton(x, y float64, label string, style TextStyle, onClick func()) *LabeledButton {
	s := NewSprite(x, y, nil)
	s.SetAnchor(0.5, 0.5)
	s.InputEnabled = true

	return &LabeledButton{
		Sprite:     s,
		Label:      label,
		Style:      style,
		State:      UINormal,
		OnClick:    onClick,
		labelScale: 1,
	}
}

// SetFrames 设置四种状态的图像
// 任何一个为 nil 时使用 out 图像代替
func (b *LabeledButton) SetFrames(over, out, down, up *ebiten.Image) {
	if out == nil {
		out = over
	}
	b.outFrame = out
	b.overFrame = orDefault(over, out)
	b.downFrame = orDefault(down, out)
	b.upFrame = orDefault(up, out)
	b.refreshFrame()
	b.UpdateScaling(b.ScaleX)
}

// SetFramesFromAtlas 从图集中按帧名设置四种状态的图像
//
// 返回：
//   - error: 任何一帧不存在
func (b *LabeledButton) SetFramesFromAtlas(src FrameSource, over, out, down, up string) error {
	if src == nil {
		return fmt.Errorf("no frame source for button %q", b.Label)
	}
	images := make([]*ebiten.Image, 0, 4)
	for _, key := range []string{over, out, down, up} {
		img := src.Frame(key)
		if img == nil {
			return fmt.Errorf("button %q: frame %s not found", b.Label, key)
		}
		images = append(images, img)
	}
	b.SetFrames(images[0], images[1], images[2], images[3])
	b.FrameKey = out
	return nil
}

// CreateTexture 生成纯色圆角纹理作为按钮外观
//
// 参数：
//   - w, h: 纹理尺寸（未缩放）
//   - c: 按钮颜色
func (b *LabeledButton) CreateTexture(w, h int, c color.Color) {
	normal := ebiten.NewImageFromImage(utils.GenerateButtonTexture(w, h, c, false))
	pressed := ebiten.NewImageFromImage(utils.GenerateButtonTexture(w, h, c, true))
	b.SetFrames(normal, normal, pressed, normal)
	b.FrameKey = ""
}

// UpdateScaling 设置按钮的统一缩放，并重新计算文字缩放
// 文字按同样比例缩放，且不超过按钮宽度的 90%
func (b *LabeledButton) UpdateScaling(scale float64) {
	b.SetScale(scale)

	fit := 1.0
	if b.Style.Font != nil && b.FrameWidth() > 0 {
		fit = utils.FitTextScale(b.Label, b.Style.Font, b.FrameWidth()*labelWidthRatio)
	}
	b.labelScale = scale * fit
}

// LabelScale 返回文字的实际缩放
func (b *LabeledButton) LabelScale() float64 {
	return b.labelScale
}

// LabelWidth 返回文字缩放后的宽度
func (b *LabeledButton) LabelWidth() float64 {
	w, _ := utils.MeasureText(b.Label, b.Style.Font)
	return w * b.labelScale
}

// SetDisabled 禁用或启用按钮
func (b *LabeledButton) SetDisabled(disabled bool) {
	if disabled {
		b.State = UIDisabled
	} else {
		b.State = UINormal
	}
	b.refreshFrame()
}

// HandlePointer 根据指针事件更新状态
//
// 返回：
//   - bool: 事件是否被按钮消费
func (b *LabeledButton) HandlePointer(ev utils.PointerEvent) bool {
	if !b.InputEnabled || b.State == UIDisabled {
		return false
	}

	inside := b.Contains(ev.X, ev.Y)
	consumed := false

	switch ev.Type {
	case utils.PointerMove:
		if b.State != UIClicked {
			b.setHover(inside)
		}

	case utils.PointerDown:
		if inside {
			b.State = UIClicked
			b.Image = b.downFrame
			consumed = true
		}

	case utils.PointerUp:
		if b.State != UIClicked {
			break
		}
		if inside {
			b.State = UIHovered
			b.Image = b.upFrame
			consumed = true
			if b.OnClick != nil {
				b.OnClick()
			}
		} else {
			b.State = UINormal
			b.Image = b.outFrame
		}
	}
	return consumed
}

// setHover 在 over / out 之间切换
func (b *LabeledButton) setHover(inside bool) {
	switch {
	case inside && b.State == UINormal:
		b.State = UIHovered
		b.Image = b.overFrame
	case !inside && b.State == UIHovered:
		b.State = UINormal
		b.Image = b.outFrame
	}
}

// refreshFrame 根据当前状态选择图像
func (b *LabeledButton) refreshFrame() {
	switch b.State {
	case UIHovered:
		b.Image = b.overFrame
	case UIClicked:
		b.Image = b.downFrame
	default:
		b.Image = b.outFrame
	}
}

// Draw 绘制按钮及居中的文字
func (b *LabeledButton) Draw(screen *ebiten.Image) {
	if !b.Visible {
		return
	}
	b.Sprite.Draw(screen)

	if b.Label == "" || b.Style.Font == nil {
		return
	}

	cx, cy := b.Center()
	op := &text.DrawOptions{}
	op.GeoM.Scale(b.labelScale, b.labelScale)
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	if b.Style.Color != nil {
		op.ColorScale.ScaleWithColor(b.Style.Color)
	}
	if b.State == UIDisabled {
		op.ColorScale.ScaleAlpha(0.5)
	}
	text.Draw(screen, b.Label, b.Style.Font, op)
}

func orDefault(img, fallback *ebiten.Image) *ebiten.Image {
	if img == nil {
		return fallback
	}
	return img
}
