package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"testing/fstest"

	"github.com/decker502/ogmenu/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

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
        path: sounds/menu.ogg
        synth: menu_loop
        loop: true
      - id: SOUND_CLICK
        synth: click
      - id: SOUND_BROKEN
        path: sounds/missing.ogg
`

const testInterfaceFramesYAML = `
frames:
  bg_orange: {x: 0, y: 0, w: 16, h: 16}
  OG_logo_fullcolor: {x: 0, y: 0, w: 120, h: 60}
  btn_orange: {x: 0, y: 0, w: 72, h: 20}
  btn_orange_onpress: {x: 0, y: 0, w: 72, h: 20}
  btn_sfx_on: {x: 0, y: 0, w: 24, h: 24}
  btn_sfx_off: {x: 0, y: 0, w: 24, h: 24}
  btn_music_on: {x: 0, y: 0, w: 24, h: 24}
  btn_music_off: {x: 0, y: 0, w: 24, h: 24}
`

// newTestResourceFS 构造只含配置文件的资源文件系统（无 sheet 图片、无音频文件）
func newTestResourceFS() fstest.MapFS {
	return fstest.MapFS{
		"assets/config/resources.yaml":  &fstest.MapFile{Data: []byte(testResourcesYAML)},
		"assets/atlases/interface.yaml": &fstest.MapFile{Data: []byte(testInterfaceFramesYAML)},
	}
}

// encodeTestPNG creates a w×h PNG filled with a single color.
func encodeTestPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newTestResourceManager 加载测试配置的 ResourceManager
func newTestResourceManager(t *testing.T, fsys fstest.MapFS, ctx *audio.Context) *ResourceManager {
	t.Helper()
	rm := NewResourceManager(fsys, ctx)
	require.NoError(t, rm.LoadResourceConfig(config.ResourceConfigPath))
	return rm
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(newTestResourceFS(), testAudioContext)

	require.NotNil(t, rm)
	assert.NotNil(t, rm.imageCache)
	assert.NotNil(t, rm.audioCache)
	assert.NotNil(t, rm.atlasCache)
	assert.Same(t, testAudioContext, rm.audioContext)
}

func TestLoadResourceConfig(t *testing.T) {
	rm := newTestResourceManager(t, newTestResourceFS(), nil)

	require.Contains(t, rm.atlasDefs, "interface")
	assert.Equal(t, "assets/atlases/interface.png", rm.atlasDefs["interface"].Image)
	assert.Equal(t, "assets/atlases/interface.yaml", rm.atlasDefs["interface"].Frames)

	require.Contains(t, rm.soundDefs, config.SoundMenuMusic)
	assert.Equal(t, "assets/sounds/menu.ogg", rm.soundDefs[config.SoundMenuMusic].Path)
	assert.True(t, rm.soundDefs[config.SoundMenuMusic].Loop)
	assert.Empty(t, rm.soundDefs[config.SoundClick].Path)
}

func TestLoadResourceConfig_Errors(t *testing.T) {
	t.Run("文件不存在", func(t *testing.T) {
		rm := NewResourceManager(fstest.MapFS{}, nil)
		assert.Error(t, rm.LoadResourceConfig(config.ResourceConfigPath))
	})

	t.Run("YAML 错误", func(t *testing.T) {
		fsys := fstest.MapFS{
			"assets/config/resources.yaml": &fstest.MapFile{Data: []byte("groups: [")},
		}
		rm := NewResourceManager(fsys, nil)
		assert.Error(t, rm.LoadResourceConfig(config.ResourceConfigPath))
	})

	t.Run("未设置文件系统", func(t *testing.T) {
		rm := NewResourceManager(nil, nil)
		assert.Error(t, rm.LoadResourceConfig(config.ResourceConfigPath))
	})
}

// TestLoadAtlas_Painted 验证 sheet 缺失时按声明尺寸程序化绘制所有帧
func TestLoadAtlas_Painted(t *testing.T) {
	rm := newTestResourceManager(t, newTestResourceFS(), nil)

	atlas, err := rm.LoadAtlas(config.AtlasInterface)
	require.NoError(t, err)
	assert.Equal(t, 8, atlas.Len())
	assert.Equal(t, config.AtlasInterface, atlas.Name())

	logo := atlas.Frame(config.FrameLogo)
	require.NotNil(t, logo)
	assert.Equal(t, 120, logo.Bounds().Dx())
	assert.Equal(t, 60, logo.Bounds().Dy())

	again, err := rm.LoadAtlas(config.AtlasInterface)
	require.NoError(t, err)
	assert.Same(t, atlas, again, "atlas should be cached")
	assert.Same(t, atlas, rm.GetAtlas(config.AtlasInterface))
}

// TestLoadAtlas_Sheet 验证 sheet 存在时按矩形切图
func TestLoadAtlas_Sheet(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/resources.yaml":  &fstest.MapFile{Data: []byte(testResourcesYAML)},
		"assets/atlases/interface.png":  &fstest.MapFile{Data: encodeTestPNG(t, 64, 32, color.RGBA{R: 255, A: 255})},
		"assets/atlases/interface.yaml": &fstest.MapFile{Data: []byte("frames:\n  a: {x: 0, y: 0, w: 32, h: 32}\n  b: {x: 32, y: 8, w: 16, h: 24}\n")},
	}
	rm := newTestResourceManager(t, fsys, nil)

	atlas, err := rm.LoadAtlas(config.AtlasInterface)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, atlas.Keys())

	b := atlas.Frame("b")
	require.NotNil(t, b)
	assert.Equal(t, 16, b.Bounds().Dx())
	assert.Equal(t, 24, b.Bounds().Dy())
}

func TestLoadAtlas_Errors(t *testing.T) {
	t.Run("配置未加载", func(t *testing.T) {
		rm := NewResourceManager(newTestResourceFS(), nil)
		_, err := rm.LoadAtlas(config.AtlasInterface)
		assert.Error(t, err)
	})

	t.Run("未知图集", func(t *testing.T) {
		rm := newTestResourceManager(t, newTestResourceFS(), nil)
		_, err := rm.LoadAtlas("hud")
		assert.Error(t, err)
	})

	t.Run("帧超出 sheet", func(t *testing.T) {
		fsys := fstest.MapFS{
			"assets/config/resources.yaml":  &fstest.MapFile{Data: []byte(testResourcesYAML)},
			"assets/atlases/interface.png":  &fstest.MapFile{Data: encodeTestPNG(t, 16, 16, color.White)},
			"assets/atlases/interface.yaml": &fstest.MapFile{Data: []byte("frames:\n  a: {x: 8, y: 8, w: 16, h: 16}\n")},
		}
		rm := newTestResourceManager(t, fsys, nil)
		_, err := rm.LoadAtlas(config.AtlasInterface)
		assert.Error(t, err)
	})

	t.Run("sheet 缺失且无绘制函数", func(t *testing.T) {
		fsys := fstest.MapFS{
			"assets/config/resources.yaml":  &fstest.MapFile{Data: []byte(testResourcesYAML)},
			"assets/atlases/interface.yaml": &fstest.MapFile{Data: []byte("frames:\n  custom: {x: 0, y: 0, w: 8, h: 8}\n")},
		}
		rm := newTestResourceManager(t, fsys, nil)
		_, err := rm.LoadAtlas(config.AtlasInterface)
		assert.Error(t, err)
	})
}

func TestParseAtlasFrames(t *testing.T) {
	_, err := ParseAtlasFrames([]byte("frames: {}\n"))
	assert.Error(t, err, "empty frames")

	_, err = ParseAtlasFrames([]byte("frames:\n  a: {x: 0, y: 0, w: 0, h: 4}\n"))
	assert.Error(t, err, "zero width")

	_, err = ParseAtlasFrames([]byte("frames:\n  a: {x: -1, y: 0, w: 4, h: 4}\n"))
	assert.Error(t, err, "negative origin")

	frames, err := ParseAtlasFrames([]byte(testInterfaceFramesYAML))
	require.NoError(t, err)
	assert.Len(t, frames.Frames, 8)
}

// TestLoadSoundByID_Synth 验证音频文件缺失时使用合成音效
func TestLoadSoundByID_Synth(t *testing.T) {
	rm := newTestResourceManager(t, newTestResourceFS(), testAudioContext)

	click, err := rm.LoadSoundByID(config.SoundClick)
	require.NoError(t, err)
	require.NotNil(t, click)
	assert.Same(t, click, rm.GetSoundPlayer(config.SoundClick))

	music, err := rm.LoadSoundByID(config.SoundMenuMusic)
	require.NoError(t, err)
	require.NotNil(t, music)
}

func TestLoadSoundByID_Errors(t *testing.T) {
	t.Run("无音频上下文", func(t *testing.T) {
		rm := newTestResourceManager(t, newTestResourceFS(), nil)
		_, err := rm.LoadSoundByID(config.SoundClick)
		assert.Error(t, err)
	})

	t.Run("未知ID", func(t *testing.T) {
		rm := newTestResourceManager(t, newTestResourceFS(), testAudioContext)
		_, err := rm.LoadSoundByID("SOUND_NOPE")
		assert.Error(t, err)
	})

	t.Run("文件缺失且无合成", func(t *testing.T) {
		rm := newTestResourceManager(t, newTestResourceFS(), testAudioContext)
		_, err := rm.LoadSoundByID("SOUND_BROKEN")
		assert.Error(t, err)
	})

	t.Run("不支持的格式", func(t *testing.T) {
		rm := NewResourceManager(fstest.MapFS{
			"assets/sounds/x.flac": &fstest.MapFile{Data: []byte("fLaC")},
		}, testAudioContext)
		_, err := rm.LoadSoundEffect("assets/sounds/x.flac")
		assert.Error(t, err)
	})
}

// TestLoadResourceGroup 验证音效失败被跳过，图集必须成功
func TestLoadResourceGroup(t *testing.T) {
	rm := newTestResourceManager(t, newTestResourceFS(), testAudioContext)

	refs, err := rm.GroupResources(config.ResourceGroupMenu)
	require.NoError(t, err)
	require.Len(t, refs, 4)
	assert.Equal(t, ResourceRef{Kind: ResourceKindAtlas, ID: config.AtlasInterface}, refs[0])
	assert.Equal(t, "sound:SOUND_CLICK", refs[2].String())

	require.NoError(t, rm.LoadResourceGroup(config.ResourceGroupMenu))
	assert.NotNil(t, rm.GetAtlas(config.AtlasInterface))
	assert.NotNil(t, rm.GetSoundPlayer(config.SoundClick))
	assert.Nil(t, rm.GetSoundPlayer("SOUND_BROKEN"))

	assert.Error(t, rm.LoadResourceGroup("missing"))
}

func TestLoadImage(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/images/blue.png": &fstest.MapFile{Data: encodeTestPNG(t, 10, 10, color.RGBA{B: 255, A: 255})},
		"assets/images/bad.png":  &fstest.MapFile{Data: []byte("not a png")},
	}
	rm := NewResourceManager(fsys, nil)

	img, err := rm.LoadImage("assets/images/blue.png")
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Same(t, img, rm.GetImage("assets/images/blue.png"))

	_, err = rm.LoadImage("assets/images/bad.png")
	assert.Error(t, err)

	_, err = rm.LoadImage("assets/images/missing.png")
	assert.Error(t, err)
}

func TestDefaultFont(t *testing.T) {
	rm := NewResourceManager(fstest.MapFS{}, nil)

	face, err := rm.DefaultFont(30)
	require.NoError(t, err)
	assert.Equal(t, 30.0, face.Size)

	again, err := rm.DefaultFont(30)
	require.NoError(t, err)
	assert.Same(t, face, again)

	other, err := rm.DefaultFont(12)
	require.NoError(t, err)
	assert.Same(t, face.Source, other.Source, "sizes share one face source")
}

func TestBuildFullPath(t *testing.T) {
	assert.Equal(t, "assets/sounds/click.ogg", buildFullPath("assets", "sounds/click.ogg"))
	assert.Equal(t, "assets/sounds/click.ogg", buildFullPath("assets", "/sounds/click.ogg"))
	assert.Equal(t, "sounds/click.ogg", buildFullPath("", "sounds/click.ogg"))
	assert.Equal(t, "", buildFullPath("assets", ""))
}

func TestSynthesizeSound(t *testing.T) {
	click, err := synthesizeSound(SynthClick, 48000)
	require.NoError(t, err)
	assert.Equal(t, int(0.05*48000)*4, len(click))

	loop, err := synthesizeSound(SynthMenuLoop, 48000)
	require.NoError(t, err)
	assert.Equal(t, 8*int(0.25*48000)*4, len(loop))

	_, err = synthesizeSound("siren", 48000)
	assert.Error(t, err)

	_, err = synthesizeSound(SynthClick, 0)
	assert.Error(t, err)
}
