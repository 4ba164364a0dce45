package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MenuLayoutConfig 菜单场景的响应式布局参数
//
// 所有比例都是相对量：
//   - 按钮位置相对于 Logo 的中心点和缩放后的高度
//   - 声音图标位置相对于视口右下角和图标自身缩放后的尺寸
//
// 数值来自 assets/config/menu_layout.yaml，文件中省略的字段保留默认值。
type MenuLayoutConfig struct {
	// LogoOffsetY Logo 中心相对视口中心的垂直偏移（设计像素，会乘以 GameScale）
	LogoOffsetY float64 `yaml:"logoOffsetY"`
	// LandscapeLogoDivisor 横屏时 Logo 宽度的放大系数：factor = W / (logoW * divisor)
	LandscapeLogoDivisor float64 `yaml:"landscapeLogoDivisor"`
	// MaxAssetScale 资源缩放上限，避免放大超过原始分辨率
	MaxAssetScale float64 `yaml:"maxAssetScale"`

	// ImageButtonXRatio 图片按钮 X = logo.X * ratio
	ImageButtonXRatio float64 `yaml:"imageButtonXRatio"`
	// GraphicsButtonXRatio 图形按钮 X = logo.X * ratio
	GraphicsButtonXRatio float64 `yaml:"graphicsButtonXRatio"`
	// ButtonYRatio 按钮 Y = logo.Y + logo.Height * ratio
	ButtonYRatio float64 `yaml:"buttonYRatio"`

	// IconMarginX 音乐图标 X = W - musicW * margin
	IconMarginX float64 `yaml:"iconMarginX"`
	// IconMarginY 音乐图标 Y = H - musicH * margin
	IconMarginY float64 `yaml:"iconMarginY"`
	// IconSpacing 音效图标 X = music.X - sfxW * spacing
	IconSpacing float64 `yaml:"iconSpacing"`

	// 按钮文字样式
	LabelFontSize float64 `yaml:"labelFontSize"`
	LabelColor    string  `yaml:"labelColor"`

	// 按钮文案
	ImageButtonText    string `yaml:"imageButtonText"`
	GraphicsButtonText string `yaml:"graphicsButtonText"`

	// 图形按钮（程序生成纹理）
	GraphicsButtonColor  string  `yaml:"graphicsButtonColor"`
	GraphicsButtonWidth  float64 `yaml:"graphicsButtonWidth"`
	GraphicsButtonHeight float64 `yaml:"graphicsButtonHeight"`
}

// DefaultMenuLayoutConfig 返回默认布局参数
func DefaultMenuLayoutConfig() *MenuLayoutConfig {
	return &MenuLayoutConfig{
		LogoOffsetY:          -80,
		LandscapeLogoDivisor: 1.5,
		MaxAssetScale:        1,
		ImageButtonXRatio:    0.5,
		GraphicsButtonXRatio: 1.5,
		ButtonYRatio:         0.65,
		IconMarginX:          1.5,
		IconMarginY:          1.1,
		IconSpacing:          1.5,
		LabelFontSize:        30,
		LabelColor:           "#FFFFFF",
		ImageButtonText:      "LONG TEXT FITS IN BUTTON",
		GraphicsButtonText:   "PLAY",
		GraphicsButtonColor:  "#f98f25",
		GraphicsButtonWidth:  300,
		GraphicsButtonHeight: 100,
	}
}

// LoadMenuLayoutConfig 解析 YAML 布局配置
//
// 参数：
//   - data: YAML 文件内容，为空时返回默认配置
//
// 返回：
//   - *MenuLayoutConfig: 合并默认值后的配置
//   - error: 解析失败或数值非法
func LoadMenuLayoutConfig(data []byte) (*MenuLayoutConfig, error) {
	cfg := DefaultMenuLayoutConfig()
	if len(data) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse menu layout config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查会导致除零或负缩放的配置
func (c *MenuLayoutConfig) Validate() error {
	if c.LandscapeLogoDivisor <= 0 {
		return fmt.Errorf("landscapeLogoDivisor must be positive, got %v", c.LandscapeLogoDivisor)
	}
	if c.MaxAssetScale <= 0 {
		return fmt.Errorf("maxAssetScale must be positive, got %v", c.MaxAssetScale)
	}
	if c.GraphicsButtonWidth <= 0 || c.GraphicsButtonHeight <= 0 {
		return fmt.Errorf("graphics button size must be positive, got %vx%v",
			c.GraphicsButtonWidth, c.GraphicsButtonHeight)
	}
	if _, err := ParseHexColor(c.LabelColor); err != nil {
		return fmt.Errorf("labelColor: %w", err)
	}
	if _, err := ParseHexColor(c.GraphicsButtonColor); err != nil {
		return fmt.Errorf("graphicsButtonColor: %w", err)
	}
	return nil
}

// ComputeAssetScale 计算菜单资源的统一缩放系数
//
// 横屏（宽 >= 高）时 Logo 只占视口宽度的 1/divisor，竖屏时占满宽度。
// 结果不超过 MaxAssetScale。
//
// 参数：
//   - viewW, viewH: 视口尺寸
//   - logoW: Logo 在缩放为 1 时的宽度
func (c *MenuLayoutConfig) ComputeAssetScale(viewW, viewH, logoW float64) float64 {
	if logoW <= 0 {
		return c.MaxAssetScale
	}

	var scale float64
	if viewW >= viewH {
		scale = viewW / (logoW * c.LandscapeLogoDivisor)
	} else {
		scale = viewW / logoW
	}

	if scale > c.MaxAssetScale {
		scale = c.MaxAssetScale
	}
	return scale
}

// LabelRGBA 返回按钮文字颜色，解析失败时为白色
func (c *MenuLayoutConfig) LabelRGBA() color.RGBA {
	rgba, err := ParseHexColor(c.LabelColor)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return rgba
}

// GraphicsButtonRGBA 返回图形按钮的填充颜色，解析失败时为橙色
func (c *MenuLayoutConfig) GraphicsButtonRGBA() color.RGBA {
	rgba, err := ParseHexColor(c.GraphicsButtonColor)
	if err != nil {
		return color.RGBA{R: 0xf9, G: 0x8f, B: 0x25, A: 0xff}
	}
	return rgba
}

// ParseHexColor 解析 "#RRGGBB" / "#RRGGBBAA" / "0xRRGGBB" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.ToLower(hex), "0x")

	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
