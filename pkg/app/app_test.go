package app

import (
	"testing"
	"testing/fstest"

	"github.com/decker502/ogmenu/pkg/config"
	"github.com/decker502/ogmenu/pkg/embedded"
	"github.com/decker502/ogmenu/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResourcesYAML = `
version: "1.0"
base_path: assets
groups:
  menu:
    atlases:
      - id: interface
        image: atlases/interface.png
        frames: atlases/interface.yaml
    sounds:
      - id: SOUND_MENU_MUSIC
        synth: menu_loop
        loop: true
      - id: SOUND_CLICK
        synth: click
`

const testFramesYAML = `
frames:
  bg_orange: {x: 0, y: 0, w: 16, h: 16}
  OG_logo_fullcolor: {x: 0, y: 0, w: 200, h: 100}
  btn_orange: {x: 0, y: 0, w: 120, h: 40}
  btn_orange_onpress: {x: 0, y: 0, w: 120, h: 40}
  btn_sfx_on: {x: 0, y: 0, w: 32, h: 32}
  btn_sfx_off: {x: 0, y: 0, w: 32, h: 32}
  btn_music_on: {x: 0, y: 0, w: 32, h: 32}
  btn_music_off: {x: 0, y: 0, w: 32, h: 32}
`

// initTestAssets 用内存文件系统初始化嵌入资源
func initTestAssets(t *testing.T, layoutYAML string) {
	t.Helper()
	fsys := fstest.MapFS{
		"assets/config/resources.yaml":  &fstest.MapFile{Data: []byte(testResourcesYAML)},
		"assets/atlases/interface.yaml": &fstest.MapFile{Data: []byte(testFramesYAML)},
	}
	if layoutYAML != "" {
		fsys["assets/config/menu_layout.yaml"] = &fstest.MapFile{Data: []byte(layoutYAML)}
	}
	embedded.Init(fsys)
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	cfg.Verbose = true
	cfg.DisableAudio = true
	cfg.Ephemeral = true
	a, err := NewApp(cfg)
	require.NoError(t, err)
	return a
}

// runFrames 推进场景管理器若干帧
func runFrames(a *App, n int) {
	for i := 0; i < n; i++ {
		a.GetSceneManager().Update(1.0 / 60)
	}
}

func TestNewAppStartsWithLoadingScene(t *testing.T) {
	initTestAssets(t, "")
	a := newTestApp(t, Config{})

	sm := a.GetSceneManager()
	assert.Equal(t, config.SceneLoading, sm.PendingScene())

	w, h := a.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	// atlas + 2 sounds, one frame each, then one frame to start the menu and one to switch
	runFrames(a, 6)
	assert.Equal(t, config.SceneMenu, sm.CurrentName())
	assert.NotNil(t, a.GetResourceManager().GetAtlas(config.AtlasInterface))
}

func TestNewAppSkipLoadingScene(t *testing.T) {
	initTestAssets(t, "")
	a := newTestApp(t, Config{SkipLoadingScene: true})

	assert.NotNil(t, a.GetResourceManager().GetAtlas(config.AtlasInterface))
	assert.Equal(t, config.SceneMenu, a.GetSceneManager().PendingScene())

	runFrames(a, 1)
	assert.Equal(t, config.SceneMenu, a.GetSceneManager().CurrentName())
}

func TestNewAppStartScene(t *testing.T) {
	initTestAssets(t, "")
	a := newTestApp(t, Config{SkipLoadingScene: true, Scene: config.SceneGameplay})

	runFrames(a, 1)
	assert.Equal(t, config.SceneGameplay, a.GetSceneManager().CurrentName())
}

func TestNewAppUnknownScene(t *testing.T) {
	initTestAssets(t, "")
	_, err := NewApp(Config{DisableAudio: true, Ephemeral: true, Scene: "credits"})
	assert.Error(t, err)
}

func TestNewAppInvalidLayout(t *testing.T) {
	initTestAssets(t, "landscapeLogoDivisor: 0\n")
	_, err := NewApp(Config{DisableAudio: true, Ephemeral: true})
	assert.Error(t, err)
}

func TestNewAppMissingResourceConfig(t *testing.T) {
	embedded.Init(fstest.MapFS{})
	_, err := NewApp(Config{DisableAudio: true, Ephemeral: true})
	assert.Error(t, err)
}

func TestNewAppInstallsSingletons(t *testing.T) {
	initTestAssets(t, "")
	a := newTestApp(t, Config{Debug: true})

	assert.Same(t, a.saveGame, game.GetSaveGame())
	assert.Same(t, a.saveGame, game.GetSoundManager().SaveGame())
	assert.False(t, a.saveGame.IsPersistent())
	assert.NotNil(t, a.debugOverlay)
	assert.True(t, a.IsVerbose())
}

func TestSaveOnExit(t *testing.T) {
	initTestAssets(t, "")
	a := newTestApp(t, Config{SkipLoadingScene: true})
	runFrames(a, 1)

	assert.True(t, a.SaveOnExit())
}
