package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 每次启动场景都会调用工厂创建新实例，避免场景之间循环依赖
type SceneFactory func() Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// 场景通过名称注册（Add），通过名称启动（Start）。
// Start 发生在场景自身的回调里（例如按钮点击），因此切换被推迟到下一次 Update 开头执行，
// 保证旧场景的 Update 完整结束后才调用它的 Shutdown。
type SceneManager struct {
	currentScene Scene
	currentName  string
	factories    map[string]SceneFactory // 场景名 -> 工厂
	pendingName  string                  // 等待在下一次 Update 切换的场景
	width        int                     // 当前视口宽度
	height       int                     // 当前视口高度
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use Add/Start or SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
	}
}

// Add 注册一个场景工厂
//
// 参数：
//   - name: 场景名称（如 "menu", "gameplay"）
//   - factory: 场景工厂函数
//   - autoStart: 为 true 时立即请求启动该场景
//
// 同名场景重复注册时覆盖旧工厂。
func (sm *SceneManager) Add(name string, factory SceneFactory, autoStart bool) {
	if factory == nil {
		log.Printf("[SceneManager] 错误: 场景 %s 的工厂为 nil", name)
		return
	}
	sm.factories[name] = factory
	if autoStart {
		sm.Start(name)
	}
}

// Has 检查场景是否已注册
func (sm *SceneManager) Has(name string) bool {
	_, ok := sm.factories[name]
	return ok
}

// Start 请求切换到指定名称的场景
// 切换在下一次 Update 开始时执行；同一帧内多次请求只保留最后一次
func (sm *SceneManager) Start(name string) {
	if !sm.Has(name) {
		log.Printf("[SceneManager] 错误: 未注册的场景: %s", name)
		return
	}
	sm.pendingName = name
}

// PendingScene 返回等待切换的场景名，没有则为空字符串
func (sm *SceneManager) PendingScene() string {
	return sm.pendingName
}

// SwitchTo changes the active scene to the provided scene immediately.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.switchTo("", scene)
}

func (sm *SceneManager) switchTo(name string, scene Scene) {
	if lc, ok := sm.currentScene.(Lifecycle); ok {
		lc.Shutdown()
	}

	sm.currentScene = scene
	sm.currentName = name

	if scene == nil {
		return
	}

	if lc, ok := scene.(Lifecycle); ok {
		lc.Init()
		lc.Create()
	}
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}

	if name != "" {
		log.Printf("[SceneManager] 切换到场景: %s", name)
	}
}

// applyPending 执行被推迟的场景切换
func (sm *SceneManager) applyPending() {
	if sm.pendingName == "" {
		return
	}
	name := sm.pendingName
	sm.pendingName = ""

	newScene := sm.factories[name]()
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", name)
		return
	}
	sm.switchTo(name, newScene)
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景的注册名；通过 SwitchTo 直接切换的场景名为空
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Layout 记录视口尺寸，尺寸变化时通知当前场景
func (sm *SceneManager) Layout(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width = width
	sm.height = height

	if r, ok := sm.currentScene.(Resizable); ok && width > 0 && height > 0 {
		r.Resize(width, height)
	}
}

// Size 返回当前视口尺寸
func (sm *SceneManager) Size() (int, int) {
	return sm.width, sm.height
}

// Update updates the currently active scene.
// Pending scene switches are applied first.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	sm.applyPending()
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
