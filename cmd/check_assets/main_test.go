package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"testing"
	"testing/fstest"

	"github.com/decker502/ogmenu/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resourcesYAML = `
base_path: assets
groups:
  menu:
    atlases:
      - id: interface
        image: atlases/interface.png
        frames: atlases/interface.yaml
    sounds:
      - id: SOUND_CLICK
        path: sounds/click.ogg
        synth: click
`

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestCheckPaintedAtlas(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/resources.yaml":  {Data: []byte(resourcesYAML)},
		"assets/atlases/interface.yaml": {Data: []byte("frames:\n  bg_orange: {x: 0, y: 0, w: 8, h: 8}\n")},
	}
	assert.Empty(t, check(fsys, false))
}

func TestCheckUnpaintableFrame(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/resources.yaml":  {Data: []byte(resourcesYAML)},
		"assets/atlases/interface.yaml": {Data: []byte("frames:\n  mystery: {x: 0, y: 0, w: 8, h: 8}\n")},
	}
	problems := check(fsys, false)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "mystery")
}

func TestCheckFrameOutsideSheet(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/resources.yaml":  {Data: []byte(resourcesYAML)},
		"assets/atlases/interface.png":  {Data: pngBytes(t, 16, 16)},
		"assets/atlases/interface.yaml": {Data: []byte("frames:\n  a: {x: 0, y: 0, w: 8, h: 8}\n  b: {x: 8, y: 8, w: 16, h: 16}\n")},
	}
	problems := check(fsys, false)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "frame b")
}

func TestCheckSoundWithoutFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte(`
base_path: assets
groups:
  menu:
    atlases:
      - id: interface
        frames: atlases/interface.yaml
    sounds:
      - id: SOUND_MENU_MUSIC
        path: sounds/menu.ogg
`)},
		"assets/atlases/interface.yaml": {Data: []byte("frames:\n  bg_orange: {x: 0, y: 0, w: 8, h: 8}\n")},
	}
	problems := check(fsys, false)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "SOUND_MENU_MUSIC")
}

func TestCheckInvalidLayout(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/resources.yaml":   {Data: []byte(resourcesYAML)},
		"assets/atlases/interface.yaml":  {Data: []byte("frames:\n  bg_orange: {x: 0, y: 0, w: 8, h: 8}\n")},
		"assets/config/menu_layout.yaml": {Data: []byte("maxAssetScale: -1\n")},
	}
	problems := check(fsys, false)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "menu_layout.yaml")
}

func TestCheckMissingConfig(t *testing.T) {
	assert.Len(t, check(fstest.MapFS{}, false), 1)
}

func TestCheckOverlappingFrames(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte(resourcesYAML)},
		"assets/atlases/interface.yaml": {Data: []byte(
			"frames:\n  bg_orange: {x: 0, y: 0, w: 32, h: 32}\n  btn_sfx_on: {x: 16, y: 16, w: 32, h: 32}\n  btn_sfx_off: {x: 32, y: 0, w: 32, h: 16}\n")},
	}
	problems := check(fsys, false)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "bg_orange")
	assert.Contains(t, problems[0], "btn_sfx_on")
	assert.Contains(t, problems[0], "overlap")
}

// TestShippedInterfaceFramesDoNotOverlap 随包发布的图集帧可以排进同一张 sheet
func TestShippedInterfaceFramesDoNotOverlap(t *testing.T) {
	data, err := os.ReadFile("../../assets/atlases/interface.yaml")
	require.NoError(t, err)
	frames, err := game.ParseAtlasFrames(data)
	require.NoError(t, err)
	assert.Empty(t, overlappingFrames(frames))
}

func TestCheckShippedAssets(t *testing.T) {
	assert.Empty(t, check(os.DirFS("../.."), false))
}
