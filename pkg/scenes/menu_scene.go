package scenes

import (
	"log"

	"github.com/decker502/ogmenu/pkg/components"
	"github.com/decker502/ogmenu/pkg/config"
	"github.com/decker502/ogmenu/pkg/game"
	"github.com/decker502/ogmenu/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// MenuScene 主菜单
//
// 显示背景、Logo、两个示例按钮和声音/音乐开关图标。
// 每次视口尺寸变化时按 Logo 的尺寸重新计算资源缩放并重新排布所有元素。
//
// 生命周期（由 SceneManager 调用）：
//
//	Init() → Create() → Resize(w, h) → ... → Shutdown()
type MenuScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	layout          *config.MenuLayoutConfig
	gameplayFactory game.SceneFactory

	soundManager *game.SoundManager
	atlas        components.FrameSource
	pointer      *utils.PointerTracker

	// 显示元素，Create 中创建，Shutdown 中释放
	background *components.Sprite
	logo       *components.Sprite
	testImgBtn *components.LabeledButton // 图集纹理按钮
	testGrBtn  *components.LabeledButton // 程序生成纹理按钮
	sfxBtn     *components.Sprite
	musicBtn   *components.Sprite

	assetScale    float64
	width, height int
	starting      bool // 已请求进入游戏场景
}

// NewMenuScene 创建主菜单场景
//
// 参数：
//   - rm: 资源管理器（提供界面图集和字体）
//   - sm: 场景管理器（用于切换到游戏场景）
//   - layout: 布局参数，为 nil 时使用默认值
//   - gameplay: 游戏场景工厂，点击按钮时以 "gameplay" 注册并启动
func NewMenuScene(rm *game.ResourceManager, sm *game.SceneManager, layout *config.MenuLayoutConfig, gameplay game.SceneFactory) *MenuScene {
	if layout == nil {
		layout = config.DefaultMenuLayoutConfig()
	}
	return &MenuScene{
		resourceManager: rm,
		sceneManager:    sm,
		layout:          layout,
		gameplayFactory: gameplay,
		pointer:         utils.NewPointerTracker(),
		assetScale:      1,
	}
}

// Init 清理上一次的元素并开始播放菜单音乐
func (ms *MenuScene) Init() {
	ms.clear()
	ms.pointer.Reset()
	ms.starting = false

	ms.soundManager = game.GetSoundManager()
	ms.soundManager.PlayMusic(config.SoundMenuMusic)
}

// Create 创建显示元素
func (ms *MenuScene) Create() {
	ms.atlas = ms.loadAtlas()

	ms.background = components.NewSpriteFromFrame(0, 0, ms.atlas, config.FrameBackground)

	ms.logo = components.NewSpriteFromFrame(0, 0, ms.atlas, config.FrameLogo)
	ms.logo.SetAnchor(0.5, 0.5)

	style := ms.textStyle()

	// 使用图集帧作为纹理的按钮
	ms.testImgBtn = components.NewLabeledButton(0, 0, ms.layout.ImageButtonText, style, ms.startGame)
	if err := ms.testImgBtn.SetFramesFromAtlas(ms.atlas,
		config.FrameButtonOrange, config.FrameButtonOrange,
		config.FrameButtonOrangePressed, config.FrameButtonOrange); err != nil {
		log.Printf("[MenuScene] Warning: %v", err)
	}

	// 程序生成纹理的按钮
	ms.testGrBtn = components.NewLabeledButton(0, 0, ms.layout.GraphicsButtonText, style, ms.startGame)
	ms.testGrBtn.CreateTexture(
		int(ms.layout.GraphicsButtonWidth*config.GameScale),
		int(ms.layout.GraphicsButtonHeight*config.GameScale),
		ms.layout.GraphicsButtonRGBA())

	ms.sfxBtn = components.NewSpriteFromFrame(0, 0, ms.atlas, config.FrameSFXOff)
	ms.sfxBtn.InputEnabled = true
	ms.sfxBtn.OnInputUp = ms.toggleSfx

	ms.musicBtn = components.NewSpriteFromFrame(0, 0, ms.atlas, config.FrameMusicOff)
	ms.musicBtn.InputEnabled = true
	ms.musicBtn.OnInputUp = ms.toggleMusic

	if w, h := ms.sceneManager.Size(); w > 0 && h > 0 {
		ms.Resize(w, h)
	}
	ms.updateSoundButtons()

	log.Printf("[MenuScene] Created")
}

// Resize 按视口尺寸重新缩放和排布元素
//
// 资源缩放由 Logo 的原始宽度决定（见 MenuLayoutConfig.ComputeAssetScale），
// 并统一应用到 Logo、两个按钮和两个声音图标。背景拉伸铺满视口。
func (ms *MenuScene) Resize(width, height int) {
	ms.width, ms.height = width, height
	if ms.background == nil {
		return
	}

	w, h := float64(width), float64(height)

	ms.background.X, ms.background.Y = 0, 0
	ms.background.SetSize(w, h)

	// 先恢复 Logo 原始尺寸，再用它计算缩放
	ms.logo.SetScale(1)
	scale := ms.layout.ComputeAssetScale(w, h, ms.logo.Width())
	ms.assetScale = scale

	ms.logo.SetScale(scale)
	ms.logo.X = w / 2
	ms.logo.Y = h/2 + ms.layout.LogoOffsetY*config.GameScale

	ms.testImgBtn.UpdateScaling(scale)
	ms.testImgBtn.X = ms.logo.X * ms.layout.ImageButtonXRatio
	ms.testImgBtn.Y = ms.logo.Y + ms.logo.Height()*ms.layout.ButtonYRatio

	ms.testGrBtn.UpdateScaling(scale)
	ms.testGrBtn.X = ms.logo.X * ms.layout.GraphicsButtonXRatio
	ms.testGrBtn.Y = ms.testImgBtn.Y

	ms.musicBtn.SetScale(scale)
	ms.musicBtn.X = w - ms.musicBtn.Width()*ms.layout.IconMarginX
	ms.musicBtn.Y = h - ms.musicBtn.Height()*ms.layout.IconMarginY

	ms.sfxBtn.SetScale(scale)
	ms.sfxBtn.X = ms.musicBtn.X - ms.sfxBtn.Width()*ms.layout.IconSpacing
	ms.sfxBtn.Y = ms.musicBtn.Y
}

// Shutdown 释放所有元素引用
func (ms *MenuScene) Shutdown() {
	ms.clear()
	log.Printf("[MenuScene] Shutdown")
}

func (ms *MenuScene) clear() {
	ms.background = nil
	ms.logo = nil
	ms.testImgBtn = nil
	ms.testGrBtn = nil
	ms.sfxBtn = nil
	ms.musicBtn = nil
}

// Update 处理指针输入
func (ms *MenuScene) Update(deltaTime float64) {
	for _, ev := range ms.pointer.Poll() {
		ms.HandlePointer(ev)
	}
}

// HandlePointer 把一次指针事件分发给按钮和图标
func (ms *MenuScene) HandlePointer(ev utils.PointerEvent) {
	if ms.background == nil || ms.starting {
		return
	}

	ms.testImgBtn.HandlePointer(ev)
	if ms.starting {
		return
	}
	ms.testGrBtn.HandlePointer(ev)
	if ms.starting {
		return
	}
	ms.sfxBtn.HandlePointer(ev)
	ms.musicBtn.HandlePointer(ev)
}

// Draw 绘制菜单
func (ms *MenuScene) Draw(screen *ebiten.Image) {
	if ms.background == nil {
		return
	}
	ms.background.Draw(screen)
	ms.logo.Draw(screen)
	ms.testImgBtn.Draw(screen)
	ms.testGrBtn.Draw(screen)
	ms.sfxBtn.Draw(screen)
	ms.musicBtn.Draw(screen)
}

// AssetScale 返回最近一次 Resize 计算出的资源缩放
func (ms *MenuScene) AssetScale() float64 {
	return ms.assetScale
}

// SaveOnExit 退出时保存声音设置
func (ms *MenuScene) SaveOnExit() bool {
	if err := game.GetSaveGame().Save(); err != nil {
		log.Printf("[MenuScene] Warning: Failed to save on exit: %v", err)
		return false
	}
	return true
}

// startGame 注册并启动游戏场景
// 切换在下一次 Update 执行，之后的点击被忽略，保证一次点击只切换一次
func (ms *MenuScene) startGame() {
	if ms.starting {
		return
	}
	if ms.gameplayFactory == nil {
		log.Printf("[MenuScene] Warning: no gameplay scene factory")
		return
	}
	ms.starting = true
	ms.sceneManager.Add(config.SceneGameplay, ms.gameplayFactory, true)
	log.Printf("[MenuScene] Starting %s", config.SceneGameplay)
}

func (ms *MenuScene) toggleSfx() {
	ms.soundManager.ToggleSfx()
	ms.updateSoundButtons()

	ms.soundManager.Play(config.SoundClick)
}

func (ms *MenuScene) toggleMusic() {
	ms.soundManager.ToggleMusic()
	ms.updateSoundButtons()

	ms.soundManager.Play(config.SoundClick)
}

// updateSoundButtons 根据存档中的开关选择图标
func (ms *MenuScene) updateSoundButtons() {
	sg := game.GetSaveGame()
	ms.sfxBtn.LoadTexture(ms.atlas, config.SFXFrame(sg.SFX))
	ms.musicBtn.LoadTexture(ms.atlas, config.MusicFrame(sg.Music))
}

// loadAtlas 取得界面图集，未预加载时现场加载
func (ms *MenuScene) loadAtlas() components.FrameSource {
	if ms.resourceManager == nil {
		log.Printf("[MenuScene] Warning: no resource manager")
		return nil
	}
	if atlas := ms.resourceManager.GetAtlas(config.AtlasInterface); atlas != nil {
		return atlas
	}
	atlas, err := ms.resourceManager.LoadAtlas(config.AtlasInterface)
	if err != nil {
		log.Printf("[MenuScene] Warning: Failed to load atlas %s: %v", config.AtlasInterface, err)
		return nil
	}
	return atlas
}

// textStyle 按钮文字：粗体，30 * GameScale 像素
func (ms *MenuScene) textStyle() components.TextStyle {
	style := components.TextStyle{Color: ms.layout.LabelRGBA()}
	if ms.resourceManager == nil {
		return style
	}
	face, err := ms.resourceManager.DefaultFont(ms.layout.LabelFontSize * config.GameScale)
	if err != nil {
		log.Printf("[MenuScene] Warning: Failed to load label font: %v", err)
		return style
	}
	style.Font = face
	return style
}
