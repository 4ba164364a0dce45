// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/decker502/ogmenu/pkg/config"
	"github.com/decker502/ogmenu/pkg/embedded"
	"github.com/decker502/ogmenu/pkg/game"
	"github.com/decker502/ogmenu/pkg/scenes"
	"github.com/decker502/ogmenu/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// audioSampleRate 音频上下文采样率
const audioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 显示调试信息层（视口尺寸、资源缩放、声音开关）
	Debug bool
	// Scene 指定启动后进入的场景（"menu" 或 "gameplay"），为空时为 "menu"
	Scene string
	// SkipLoadingScene 跳过加载场景，直接同步加载资源
	SkipLoadingScene bool
	// DisableAudio 不创建音频上下文（无声卡的环境）
	DisableAudio bool
	// Ephemeral 不打开 gdata 存储，声音设置只保存在内存中
	Ephemeral bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	resourceManager *game.ResourceManager
	saveGame        *game.SaveGame
	debugOverlay    *scenes.DebugOverlay
	verbose         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
//
// 启动顺序：音频上下文 → 资源管理器和资源配置 → 存档（gdata）→ 音效管理器 →
// 注册 loading / menu / gameplay 场景 → 启动 loading（或直接进入目标场景）。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if !embedded.IsInitialized() {
		return nil, fmt.Errorf("嵌入资源未初始化: 先调用 embedded.Init()")
	}

	// 初始化音频上下文
	var audioContext *audio.Context
	if !cfg.DisableAudio {
		audioContext = audio.NewContext(audioSampleRate)
	}

	// 创建资源管理器并加载资源配置
	resourceManager := game.NewResourceManager(embedded.FS(), audioContext)
	if err := resourceManager.LoadResourceConfig(config.ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}

	// 菜单布局配置（文件缺失时使用默认值）
	layout, err := loadMenuLayout()
	if err != nil {
		return nil, fmt.Errorf("菜单布局配置加载失败: %w", err)
	}

	// 存档和音效管理器
	var storage *gdata.Manager
	if !cfg.Ephemeral {
		storage = openSaveStorage()
	}
	saveGame := game.NewSaveGame(storage)
	game.SetSaveGame(saveGame)
	game.InitSoundManager(resourceManager, saveGame)
	log.Printf("[App] SoundManager initialized (persistent save: %v)", saveGame.IsPersistent())

	// 创建场景管理器并注册场景
	sceneManager := game.NewSceneManager()
	gameplay := func() game.Scene {
		return scenes.NewGameplayScene(resourceManager, sceneManager)
	}
	sceneManager.Add(config.SceneMenu, func() game.Scene {
		return scenes.NewMenuScene(resourceManager, sceneManager, layout, gameplay)
	}, false)
	sceneManager.Add(config.SceneGameplay, gameplay, false)

	startScene := cfg.Scene
	if startScene == "" {
		startScene = config.SceneMenu
	}
	if !sceneManager.Has(startScene) {
		return nil, fmt.Errorf("未知的场景: %s", startScene)
	}

	// 根据配置决定启动场景
	if cfg.SkipLoadingScene {
		log.Printf("[App] SkipLoadingScene enabled, loading group %s synchronously", config.ResourceGroupMenu)
		if err := resourceManager.LoadResourceGroup(config.ResourceGroupMenu); err != nil {
			return nil, fmt.Errorf("资源组加载失败: %w", err)
		}
		sceneManager.Start(startScene)
	} else {
		sceneManager.Add(config.SceneLoading, func() game.Scene {
			return scenes.NewLoadingScene(resourceManager, sceneManager, config.ResourceGroupMenu, startScene)
		}, true)
	}

	a := &App{
		sceneManager:    sceneManager,
		resourceManager: resourceManager,
		saveGame:        saveGame,
		verbose:         cfg.Verbose,
	}
	if cfg.Debug {
		a.debugOverlay = scenes.NewDebugOverlay(sceneManager)
	}
	return a, nil
}

// loadMenuLayout 读取嵌入的菜单布局配置
func loadMenuLayout() (*config.MenuLayoutConfig, error) {
	if !embedded.Exists(config.MenuLayoutConfigPath) {
		log.Printf("[App] %s not found, using default menu layout", config.MenuLayoutConfigPath)
		return config.DefaultMenuLayoutConfig(), nil
	}
	data, err := embedded.ReadFile(config.MenuLayoutConfigPath)
	if err != nil {
		return nil, err
	}
	return config.LoadMenuLayoutConfig(data)
}

// openSaveStorage 打开 gdata 存储
// 失败时返回 nil，存档降级为仅内存
func openSaveStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: Failed to prepare storage dir: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{AppName: config.SaveAppName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open save storage: %v (settings will not persist)", err)
		return nil
	}
	return manager
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端没有窗口）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// F3 切换调试信息
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		if a.debugOverlay == nil {
			a.debugOverlay = scenes.NewDebugOverlay(a.sceneManager)
		} else {
			a.debugOverlay = nil
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	if a.debugOverlay != nil {
		a.debugOverlay.Draw(screen)
	}
}

// Layout 返回游戏的逻辑屏幕尺寸
//
// 逻辑尺寸始终等于窗口尺寸，窗口缩放或屏幕旋转时由场景自行重新排布。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// SaveOnExit 在窗口关闭时保存存档
//
// 返回：
//   - bool: 是否保存成功
func (a *App) SaveOnExit() bool {
	ok := true
	if s, isSaveable := a.sceneManager.GetCurrentScene().(game.Saveable); isSaveable {
		ok = s.SaveOnExit()
	}
	if err := a.saveGame.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save on exit: %v", err)
		ok = false
	}
	return ok
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// GetResourceManager 返回资源管理器
func (a *App) GetResourceManager() *game.ResourceManager {
	return a.resourceManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
