package scenes

import (
	"github.com/decker502/ogmenu/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 编译期检查各场景实现的接口
var (
	_ game.Lifecycle = (*MenuScene)(nil)
	_ game.Resizable = (*MenuScene)(nil)
	_ game.Saveable  = (*MenuScene)(nil)
	_ game.Lifecycle = (*GameplayScene)(nil)
	_ game.Resizable = (*GameplayScene)(nil)
	_ game.Lifecycle = (*LoadingScene)(nil)
	_ game.Resizable = (*LoadingScene)(nil)
)
