package scenes

import (
	"testing"
	"testing/fstest"

	"github.com/decker502/ogmenu/pkg/config"
	"github.com/decker502/ogmenu/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadingSceneLoadsGroupThenStartsMenu 每帧加载一个资源，全部完成后启动菜单
func TestLoadingSceneLoadsGroupThenStartsMenu(t *testing.T) {
	resetSoundSingletons(t)
	rm := newTestResourceManager(t)
	sm := game.NewSceneManager()
	sm.Add(config.SceneMenu, func() game.Scene { return NewMenuScene(rm, sm, nil, nil) }, false)

	ls := NewLoadingScene(rm, sm, config.ResourceGroupMenu, config.SceneMenu)
	sm.Layout(960, 640)
	sm.SwitchTo(ls)

	// 1 个图集 + 2 个音效（无音频上下文，音效被跳过）
	require.Len(t, ls.queue, 3)
	assert.Equal(t, 0.0, ls.Progress())

	ls.Update(1.0 / 60)
	assert.InDelta(t, 1.0/3, ls.Progress(), 1e-9)
	assert.NotNil(t, rm.GetAtlas(config.AtlasInterface))

	ls.Update(1.0 / 60)
	ls.Update(1.0 / 60)
	assert.Equal(t, 1.0, ls.Progress())
	assert.False(t, ls.IsComplete())
	assert.Empty(t, sm.PendingScene())

	ls.Update(1.0 / 60)
	assert.True(t, ls.IsComplete())
	assert.NoError(t, ls.Err())
	assert.Equal(t, config.SceneMenu, sm.PendingScene())

	sm.Update(1.0 / 60)
	assert.Equal(t, config.SceneMenu, sm.CurrentName())
}

// TestLoadingSceneStopsOnAtlasError 图集加载失败时停留在加载界面
func TestLoadingSceneStopsOnAtlasError(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/resources.yaml": &fstest.MapFile{Data: []byte(testResourcesYAML)},
	}
	rm := game.NewResourceManager(fsys, nil)
	require.NoError(t, rm.LoadResourceConfig(config.ResourceConfigPath))
	sm := game.NewSceneManager()

	ls := NewLoadingScene(rm, sm, config.ResourceGroupMenu, config.SceneMenu)
	sm.SwitchTo(ls)

	for i := 0; i < 5; i++ {
		ls.Update(1.0 / 60)
	}
	assert.Error(t, ls.Err())
	assert.False(t, ls.IsComplete())
	assert.Empty(t, sm.PendingScene())
}

func TestLoadingSceneUnknownGroup(t *testing.T) {
	rm := newTestResourceManager(t)
	sm := game.NewSceneManager()

	ls := NewLoadingScene(rm, sm, "missing", config.SceneMenu)
	sm.SwitchTo(ls)

	assert.Error(t, ls.Err())
	ls.Update(1.0 / 60)
	assert.Empty(t, sm.PendingScene())
}

// TestLoadingSceneBarEasesTowardProgress 进度条显示值逐帧趋近实际进度
func TestLoadingSceneBarEasesTowardProgress(t *testing.T) {
	resetSoundSingletons(t)
	rm := newTestResourceManager(t)
	sm := game.NewSceneManager()
	sm.Add(config.SceneMenu, func() game.Scene { return NewMenuScene(rm, sm, nil, nil) }, false)

	ls := NewLoadingScene(rm, sm, config.ResourceGroupMenu, config.SceneMenu)
	sm.SwitchTo(ls)

	for i := 0; i < 3; i++ {
		ls.Update(1.0 / 60)
	}
	assert.Equal(t, 1.0, ls.Progress())
	assert.Less(t, ls.shownProgress, 1.0)
	assert.Greater(t, ls.shownProgress, 0.0)

	ls.Init()
	assert.Equal(t, 0.0, ls.shownProgress)
}
