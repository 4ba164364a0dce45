package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/ogmenu/pkg/game"
	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var debugFace = text.NewGoXFace(bitmapfont.Face)

const debugLineHeight = 16

// assetScaler 由按视口缩放资源的场景实现
type assetScaler interface {
	AssetScale() float64
}

// DebugOverlay 左上角的调试信息（-debug 启用）
type DebugOverlay struct {
	sceneManager *game.SceneManager
}

// NewDebugOverlay 创建调试信息层
func NewDebugOverlay(sm *game.SceneManager) *DebugOverlay {
	return &DebugOverlay{sceneManager: sm}
}

// Lines 返回要显示的文字行
func (d *DebugOverlay) Lines() []string {
	w, h := d.sceneManager.Size()
	name := d.sceneManager.CurrentName()
	if name == "" {
		name = "-"
	}

	lines := []string{
		fmt.Sprintf("TPS %.1f  FPS %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("VIEW %dx%d", w, h),
		fmt.Sprintf("SCENE %s", name),
	}
	if s, ok := d.sceneManager.GetCurrentScene().(assetScaler); ok {
		lines = append(lines, fmt.Sprintf("SCALE %.3f", s.AssetScale()))
	}

	sg := game.GetSaveGame()
	lines = append(lines, fmt.Sprintf("SFX %v  MUSIC %v", sg.SFX, sg.Music))
	return lines
}

// Draw 绘制调试信息
func (d *DebugOverlay) Draw(screen *ebiten.Image) {
	lines := d.Lines()

	maxW := 0.0
	for _, l := range lines {
		if w, _ := text.Measure(l, debugFace, debugLineHeight); w > maxW {
			maxW = w
		}
	}
	vector.DrawFilledRect(screen, 0, 0, float32(maxW+8), float32(len(lines)*debugLineHeight+8), color.RGBA{A: 0xa0}, false)

	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(4, float64(4+i*debugLineHeight))
		text.Draw(screen, l, debugFace, op)
	}
}
