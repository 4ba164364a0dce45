package utils

import (
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"github.com/decker502/ogmenu/pkg/config"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// 界面配色
var (
	colorOrange     = color.RGBA{R: 0xf9, G: 0x8f, B: 0x25, A: 0xff}
	colorOrangeDark = color.RGBA{R: 0xc4, G: 0x5f, B: 0x0a, A: 0xff}
	colorLightTop   = color.RGBA{R: 0xff, G: 0xb3, B: 0x47, A: 0xff}
	colorLightBot   = color.RGBA{R: 0xf7, G: 0x78, B: 0x1e, A: 0xff}
	colorWhite      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorIconOff    = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
)

// FramePainter 在 w×h 的画布上绘制一帧
type FramePainter func(dc *gg.Context, w, h float64)

// framePainters 界面图集中每一帧的程序化绘制函数
// 当图集 sheet 图片缺失时用于生成等尺寸的替代纹理
var framePainters = map[string]FramePainter{
	config.FrameBackground:          paintBackground,
	config.FrameLogo:                paintLogo,
	config.FrameButtonOrange:        func(dc *gg.Context, w, h float64) { paintButton(dc, w, h, colorOrange, false) },
	config.FrameButtonOrangePressed: func(dc *gg.Context, w, h float64) { paintButton(dc, w, h, colorOrange, true) },
	config.FrameSFXOn:               func(dc *gg.Context, w, h float64) { paintSpeakerIcon(dc, w, h, true) },
	config.FrameSFXOff:              func(dc *gg.Context, w, h float64) { paintSpeakerIcon(dc, w, h, false) },
	config.FrameMusicOn:             func(dc *gg.Context, w, h float64) { paintMusicIcon(dc, w, h, true) },
	config.FrameMusicOff:            func(dc *gg.Context, w, h float64) { paintMusicIcon(dc, w, h, false) },
}

// HasFramePainter 检查帧是否有程序化绘制函数
func HasFramePainter(key string) bool {
	_, ok := framePainters[key]
	return ok
}

// PaintFrame 程序化绘制一帧
//
// 参数：
//   - key: 帧名称（如 "bg_orange"）
//   - w, h: 帧尺寸（像素）
//
// 返回：
//   - image.Image: 绘制结果
//   - bool: 是否存在该帧的绘制函数
func PaintFrame(key string, w, h int) (image.Image, bool) {
	painter, ok := framePainters[key]
	if !ok || w <= 0 || h <= 0 {
		return nil, false
	}

	dc := gg.NewContext(w, h)
	painter(dc, float64(w), float64(h))
	return dc.Image(), true
}

// GenerateButtonTexture 生成纯色圆角按钮纹理
//
// 未按下时底部有一条深色"厚度"，按下时按钮面下沉覆盖该区域。
//
// 参数：
//   - w, h: 纹理尺寸
//   - c: 按钮面颜色
//   - pressed: 是否为按下状态
func GenerateButtonTexture(w, h int, c color.Color, pressed bool) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	dc := gg.NewContext(w, h)
	paintButton(dc, float64(w), float64(h), c, pressed)
	return dc.Image()
}

// Darken 按比例压暗颜色，factor 取值 0~1
func Darken(c color.Color, factor float64) color.RGBA {
	r, g, b, a := c.RGBA()
	f := 1 - math.Max(0, math.Min(1, factor))
	return color.RGBA{
		R: uint8(float64(r>>8) * f),
		G: uint8(float64(g>>8) * f),
		B: uint8(float64(b>>8) * f),
		A: uint8(a >> 8),
	}
}

func paintBackground(dc *gg.Context, w, h float64) {
	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, colorLightTop)
	grad.AddColorStop(1, colorLightBot)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

func paintLogo(dc *gg.Context, w, h float64) {
	border := math.Max(2, h*0.03)
	radius := h * 0.18

	dc.SetColor(colorWhite)
	dc.DrawRoundedRectangle(border, border, w-border*2, h-border*2, radius)
	dc.Fill()

	dc.SetColor(colorOrange)
	dc.SetLineWidth(border)
	dc.DrawRoundedRectangle(border, border, w-border*2, h-border*2, radius)
	dc.Stroke()

	if face := boldFace(h * 0.42); face != nil {
		dc.SetFontFace(face)
		dc.DrawStringAnchored("OG", w/2, h*0.42, 0.5, 0.5)
	}

	dc.SetColor(colorOrangeDark)
	if face := boldFace(h * 0.13); face != nil {
		dc.SetFontFace(face)
		dc.DrawStringAnchored("ORANGE GAMES", w/2, h*0.78, 0.5, 0.5)
	}
}

func paintButton(dc *gg.Context, w, h float64, c color.Color, pressed bool) {
	radius := h * 0.2
	depth := h * 0.1

	if pressed {
		dc.SetColor(Darken(c, 0.12))
		dc.DrawRoundedRectangle(0, depth, w, h-depth, radius)
		dc.Fill()
		return
	}

	dc.SetColor(Darken(c, 0.3))
	dc.DrawRoundedRectangle(0, depth, w, h-depth, radius)
	dc.Fill()

	dc.SetColor(c)
	dc.DrawRoundedRectangle(0, 0, w, h-depth, radius)
	dc.Fill()
}

// paintIconBase 绘制圆形图标底板，返回前景色
func paintIconBase(dc *gg.Context, w, h float64, on bool) color.Color {
	r := math.Min(w, h)/2 - 2

	dc.SetColor(colorWhite)
	dc.DrawCircle(w/2, h/2, r)
	dc.Fill()

	fg := color.Color(colorOrange)
	if !on {
		fg = colorIconOff
	}
	dc.SetColor(fg)
	dc.SetLineWidth(math.Max(2, r*0.1))
	dc.DrawCircle(w/2, h/2, r)
	dc.Stroke()
	return fg
}

func paintSpeakerIcon(dc *gg.Context, w, h float64, on bool) {
	fg := paintIconBase(dc, w, h, on)
	s := math.Min(w, h)
	cx, cy := w/2, h/2

	// 喇叭
	dc.SetColor(fg)
	dc.MoveTo(cx-s*0.26, cy-s*0.09)
	dc.LineTo(cx-s*0.14, cy-s*0.09)
	dc.LineTo(cx+s*0.02, cy-s*0.22)
	dc.LineTo(cx+s*0.02, cy+s*0.22)
	dc.LineTo(cx-s*0.14, cy+s*0.09)
	dc.LineTo(cx-s*0.26, cy+s*0.09)
	dc.ClosePath()
	dc.Fill()

	dc.SetLineWidth(s * 0.05)
	dc.SetLineCap(gg.LineCapRound)
	if on {
		// 声波
		dc.DrawArc(cx+s*0.04, cy, s*0.12, -math.Pi/4, math.Pi/4)
		dc.Stroke()
		dc.DrawArc(cx+s*0.04, cy, s*0.22, -math.Pi/4, math.Pi/4)
		dc.Stroke()
		return
	}

	// 静音叉号
	dc.DrawLine(cx+s*0.09, cy-s*0.09, cx+s*0.25, cy+s*0.09)
	dc.Stroke()
	dc.DrawLine(cx+s*0.25, cy-s*0.09, cx+s*0.09, cy+s*0.09)
	dc.Stroke()
}

func paintMusicIcon(dc *gg.Context, w, h float64, on bool) {
	fg := paintIconBase(dc, w, h, on)
	s := math.Min(w, h)
	cx, cy := w/2, h/2

	// 两个八分音符
	dc.SetColor(fg)
	dc.DrawEllipse(cx-s*0.13, cy+s*0.14, s*0.08, s*0.06)
	dc.Fill()
	dc.DrawEllipse(cx+s*0.13, cy+s*0.09, s*0.08, s*0.06)
	dc.Fill()

	dc.SetLineWidth(s * 0.045)
	dc.DrawLine(cx-s*0.06, cy+s*0.14, cx-s*0.06, cy-s*0.18)
	dc.Stroke()
	dc.DrawLine(cx+s*0.20, cy+s*0.09, cx+s*0.20, cy-s*0.23)
	dc.Stroke()

	// 符杠
	dc.SetLineWidth(s * 0.07)
	dc.DrawLine(cx-s*0.06, cy-s*0.16, cx+s*0.20, cy-s*0.21)
	dc.Stroke()

	if !on {
		dc.SetLineWidth(s * 0.06)
		dc.SetLineCap(gg.LineCapRound)
		dc.DrawLine(cx-s*0.28, cy-s*0.28, cx+s*0.28, cy+s*0.28)
		dc.Stroke()
	}
}

var (
	boldFontOnce sync.Once
	boldFont     *truetype.Font
)

// boldFace 返回指定像素大小的 Go Bold 字体
func boldFace(size float64) font.Face {
	boldFontOnce.Do(func() {
		f, err := truetype.Parse(gobold.TTF)
		if err != nil {
			log.Printf("[TexturePainter] Warning: Failed to parse gobold: %v", err)
			return
		}
		boldFont = f
	})
	if boldFont == nil || size <= 0 {
		return nil
	}
	return truetype.NewFace(boldFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
