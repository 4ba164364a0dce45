package main

import (
	"flag"
	"log"

	"github.com/decker502/ogmenu/pkg/app"
	"github.com/decker502/ogmenu/pkg/config"
	"github.com/decker502/ogmenu/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	debug := flag.Bool("debug", false, "显示调试信息层（F3 切换）")
	scene := flag.String("scene", config.SceneMenu, "启动场景 (menu, gameplay)")
	width := flag.Int("width", config.GameWindowWidth, "窗口宽度")
	height := flag.Int("height", config.GameWindowHeight, "窗口高度")
	fullscreen := flag.Bool("fullscreen", false, "全屏启动")
	skipLoading := flag.Bool("skip-loading", false, "跳过加载场景，同步加载资源")
	noSave := flag.Bool("no-save", false, "不读写存档")
	mute := flag.Bool("mute", false, "不创建音频上下文")
	flag.Parse()

	// 初始化嵌入资源（assetsFS 在 embed.go 中声明）
	embedded.Init(assetsFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:          *verbose,
		Debug:            *debug,
		Scene:            *scene,
		SkipLoadingScene: *skipLoading,
		Ephemeral:        *noSave,
		DisableAudio:     *mute,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Orange Games")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}

	// 窗口关闭后保存声音设置
	gameApp.SaveOnExit()
}
