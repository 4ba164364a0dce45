package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/ogmenu/pkg/components"
	"github.com/decker502/ogmenu/pkg/config"
	"github.com/decker502/ogmenu/pkg/game"
	"github.com/decker502/ogmenu/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 游戏场景文案
const (
	gameplayTitle = "GAMEPLAY"
	gameplayHint  = "TAP ANYWHERE TO RETURN TO THE MENU"
)

var gameplayBackground = color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}

// 标题入场动画
const (
	titleIntroDuration = 0.4 // 秒
	titleIntroOffset   = 24  // 标题从下方多少像素滑入
)

// GameplayScene 从菜单进入的游戏场景
// 目前只显示标题和返回提示，点击任意位置回到菜单
type GameplayScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	pointer         *utils.PointerTracker

	titleStyle components.TextStyle
	hintStyle  components.TextStyle
	hintLines  []string

	width, height int
	armed         bool // 本场景内是否发生过按下（进入场景时未释放的点击不算）
	leaving       bool
	elapsed       float64
}

// NewGameplayScene 创建游戏场景
func NewGameplayScene(rm *game.ResourceManager, sm *game.SceneManager) *GameplayScene {
	return &GameplayScene{
		resourceManager: rm,
		sceneManager:    sm,
		pointer:         utils.NewPointerTracker(),
	}
}

// Init 重置输入状态
func (gs *GameplayScene) Init() {
	gs.pointer.Reset()
	gs.armed = false
	gs.leaving = false
	gs.elapsed = 0
}

// Create 准备字体
func (gs *GameplayScene) Create() {
	gs.titleStyle = gs.style(48)
	gs.hintStyle = gs.style(20)
	log.Printf("[GameplayScene] Created")
}

// Shutdown 释放字体引用
func (gs *GameplayScene) Shutdown() {
	gs.titleStyle = components.TextStyle{}
	gs.hintStyle = components.TextStyle{}
	gs.hintLines = nil
}

// Resize 按新宽度重新折行提示文字
func (gs *GameplayScene) Resize(width, height int) {
	gs.width, gs.height = width, height
	gs.hintLines = utils.WrapText(gameplayHint, gs.hintStyle.Font, float64(width)*0.9)
}

// Update 释放指针时回到菜单
func (gs *GameplayScene) Update(deltaTime float64) {
	gs.elapsed += deltaTime
	for _, ev := range gs.pointer.Poll() {
		gs.HandlePointer(ev)
	}
}

// HandlePointer 处理一次指针事件
// 在本场景内按下并释放后回到菜单
func (gs *GameplayScene) HandlePointer(ev utils.PointerEvent) {
	if gs.leaving {
		return
	}
	switch ev.Type {
	case utils.PointerDown:
		gs.armed = true
		return
	case utils.PointerUp:
		if !gs.armed {
			return
		}
	default:
		return
	}
	gs.leaving = true
	game.GetSoundManager().Play(config.SoundClick)
	gs.sceneManager.Start(config.SceneMenu)
}

// Draw 绘制标题和提示
func (gs *GameplayScene) Draw(screen *ebiten.Image) {
	screen.Fill(gameplayBackground)

	cx := float64(gs.width) / 2
	cy := float64(gs.height) / 2

	intro := gs.IntroProgress()
	title := gs.titleStyle
	if title.Color != nil {
		title.Color = fadeColor(title.Color, intro)
	}
	drawCentered(screen, gameplayTitle, title, cx, cy-40+titleIntroOffset*(1-intro))

	lineHeight := 0.0
	if gs.hintStyle.Font != nil {
		lineHeight = gs.hintStyle.Font.Size * 1.3
	}
	for i, line := range gs.hintLines {
		drawCentered(screen, line, gs.hintStyle, cx, cy+20+float64(i)*lineHeight)
	}
}

// IntroProgress 返回标题入场动画进度（0.0 - 1.0，已缓动）
func (gs *GameplayScene) IntroProgress() float64 {
	return utils.EaseOutCubic(gs.elapsed / titleIntroDuration)
}

// fadeColor 按 alpha 缩放颜色（预乘 alpha）
func fadeColor(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}

func (gs *GameplayScene) style(size float64) components.TextStyle {
	style := components.TextStyle{Color: color.White}
	if gs.resourceManager == nil {
		return style
	}
	face, err := gs.resourceManager.DefaultFont(size * config.GameScale)
	if err != nil {
		log.Printf("[GameplayScene] Warning: Failed to load font: %v", err)
		return style
	}
	style.Font = face
	return style
}

// drawCentered 以 (x, y) 为中心绘制一行文字
func drawCentered(screen *ebiten.Image, s string, style components.TextStyle, x, y float64) {
	if s == "" || style.Font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	if style.Color != nil {
		op.ColorScale.ScaleWithColor(style.Color)
	}
	text.Draw(screen, s, style.Font, op)
}
