package game

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/decker502/ogmenu/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

// ResourceManager is responsible for centralized management of game resources.
// It provides loading and caching mechanisms for images, atlases, fonts and audio assets,
// ensuring that resources are loaded only once and reused throughout the game.
//
// All files are read from an fs.FS (the embedded assets in production, fstest.MapFS in tests).
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// For the single-threaded game loop, no synchronization is needed.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(embedded.FS(), audioContext)
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    return err
//	}
//	atlas, err := rm.LoadAtlas("interface")
type ResourceManager struct {
	fsys          fs.FS
	audioContext  *audio.Context              // Global audio context, nil disables audio loading
	imageCache    map[string]*ebiten.Image    // path -> Image
	audioCache    map[string]*audio.Player    // path -> Player
	soundCache    map[string]*audio.Player    // resource ID -> Player
	fontFaceCache map[string]*text.GoTextFace // "path:size" -> face
	defaultFont   *text.GoTextFaceSource      // Go Bold, created lazily
	atlasCache    map[string]*Atlas           // atlas ID -> Atlas

	// YAML resource configuration
	config    *ResourceConfig
	soundDefs map[string]SoundResource // sound ID -> definition
	atlasDefs map[string]AtlasResource // atlas ID -> definition
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - fsys: The file system all resource paths are resolved against.
//   - audioContext: The global audio context; nil disables audio (used by tests and headless tools).
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
func NewResourceManager(fsys fs.FS, audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		fsys:          fsys,
		audioContext:  audioContext,
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		soundCache:    make(map[string]*audio.Player),
		fontFaceCache: make(map[string]*text.GoTextFace),
		atlasCache:    make(map[string]*Atlas),
		soundDefs:     make(map[string]SoundResource),
		atlasDefs:     make(map[string]AtlasResource),
	}
}

// readFile reads a file from the resource file system.
func (rm *ResourceManager) readFile(filePath string) ([]byte, error) {
	if rm.fsys == nil {
		return nil, fmt.Errorf("resource file system not set")
	}
	return fs.ReadFile(rm.fsys, strings.TrimPrefix(path.Clean(filePath), "/"))
}

// exists reports whether a file exists in the resource file system.
func (rm *ResourceManager) exists(filePath string) bool {
	if rm.fsys == nil || filePath == "" {
		return false
	}
	_, err := fs.Stat(rm.fsys, strings.TrimPrefix(path.Clean(filePath), "/"))
	return err == nil
}

// LoadResourceConfig loads and parses the YAML resource configuration file.
// After loading, resources can be accessed by their IDs.
//
// Parameters:
//   - configPath: Path to resources.yaml inside the resource file system
//
// Returns:
//   - An error if the file cannot be read or parsed
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := rm.readFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	config, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}

	rm.config = config
	rm.buildResourceMap()
	return nil
}

// buildResourceMap indexes the sound and atlas definitions by ID.
// Paths are resolved against base_path once here.
func (rm *ResourceManager) buildResourceMap() {
	rm.soundDefs = make(map[string]SoundResource)
	rm.atlasDefs = make(map[string]AtlasResource)
	if rm.config == nil {
		return
	}

	for _, group := range rm.config.Groups {
		for _, s := range group.Sounds {
			s.Path = buildFullPath(rm.config.BasePath, s.Path)
			rm.soundDefs[s.ID] = s
		}
		for _, a := range group.Atlases {
			a.Image = buildFullPath(rm.config.BasePath, a.Image)
			a.Frames = buildFullPath(rm.config.BasePath, a.Frames)
			rm.atlasDefs[a.ID] = a
		}
	}
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Parameters:
//   - filePath: The path to the image resource (e.g., "assets/atlases/interface.png").
//
// Returns:
//   - A pointer to the loaded ebiten.Image.
//   - An error if the file cannot be read or decoded.
func (rm *ResourceManager) LoadImage(filePath string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[filePath]; exists {
		return cachedImage, nil
	}

	data, err := rm.readFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", filePath, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filePath, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[filePath] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(filePath string) *ebiten.Image {
	return rm.imageCache[filePath]
}

// LoadAtlas loads a sprite atlas by its resource ID and caches it.
//
// The frames file is always required. When the sheet image exists, each frame is a
// SubImage of the sheet. When it does not, frames with a known painter are drawn
// procedurally at the declared size (see utils.PaintFrame).
//
// Parameters:
//   - atlasID: The atlas resource ID (e.g., "interface")
//
// Returns:
//   - The loaded Atlas
//   - An error if the ID is unknown, the frames file is invalid, or a frame cannot be produced
func (rm *ResourceManager) LoadAtlas(atlasID string) (*Atlas, error) {
	if cached, ok := rm.atlasCache[atlasID]; ok {
		return cached, nil
	}
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	def, ok := rm.atlasDefs[atlasID]
	if !ok {
		return nil, fmt.Errorf("atlas ID not found: %s", atlasID)
	}

	data, err := rm.readFile(def.Frames)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas frames %s: %w", def.Frames, err)
	}
	frames, err := ParseAtlasFrames(data)
	if err != nil {
		return nil, fmt.Errorf("atlas %s: %w", atlasID, err)
	}

	var atlas *Atlas
	if rm.exists(def.Image) {
		sheet, err := rm.LoadImage(def.Image)
		if err != nil {
			return nil, fmt.Errorf("atlas %s: %w", atlasID, err)
		}
		atlas, err = sliceAtlas(atlasID, sheet, frames)
		if err != nil {
			return nil, err
		}
	} else {
		log.Printf("[ResourceManager] Atlas %s: sheet %s not found, painting %d frames", atlasID, def.Image, len(frames.Frames))
		atlas, err = paintAtlas(atlasID, frames)
		if err != nil {
			return nil, err
		}
	}

	rm.atlasCache[atlasID] = atlas
	log.Printf("[ResourceManager] Atlas %s loaded (%d frames)", atlasID, atlas.Len())
	return atlas, nil
}

// GetAtlas returns a previously loaded atlas, or nil.
func (rm *ResourceManager) GetAtlas(atlasID string) *Atlas {
	return rm.atlasCache[atlasID]
}

// sliceAtlas cuts every frame rectangle out of the sheet.
func sliceAtlas(atlasID string, sheet *ebiten.Image, frames *AtlasFrames) (*Atlas, error) {
	atlas := NewAtlas(atlasID)
	bounds := sheet.Bounds()
	for key, r := range frames.Frames {
		rect := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
		if !rect.In(bounds) {
			return nil, fmt.Errorf("atlas %s: frame %s %v outside sheet %v", atlasID, key, rect, bounds)
		}
		atlas.AddFrame(key, sheet.SubImage(rect).(*ebiten.Image))
	}
	return atlas, nil
}

// paintAtlas draws every frame procedurally.
func paintAtlas(atlasID string, frames *AtlasFrames) (*Atlas, error) {
	atlas := NewAtlas(atlasID)
	for key, r := range frames.Frames {
		img, ok := utils.PaintFrame(key, r.W, r.H)
		if !ok {
			return nil, fmt.Errorf("atlas %s: sheet missing and no painter for frame %s", atlasID, key)
		}
		atlas.AddFrame(key, ebiten.NewImageFromImage(toRGBA(img)))
	}
	return atlas, nil
}

// toRGBA copies an image into an *image.RGBA so ebiten can upload it directly.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

// decodeAudio decodes an mp3, ogg or wav file into a seekable stream.
func (rm *ResourceManager) decodeAudio(filePath string) (io.ReadSeeker, int64, error) {
	data, err := rm.readFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open audio file %s: %w", filePath, err)
	}
	reader := bytes.NewReader(data)

	switch ext := strings.ToLower(path.Ext(filePath)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode MP3 audio %s: %w", filePath, err)
		}
		return s, s.Length(), nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode OGG audio %s: %w", filePath, err)
		}
		return s, s.Length(), nil
	case ".wav":
		s, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode WAV audio %s: %w", filePath, err)
		}
		return s, s.Length(), nil
	default:
		return nil, 0, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
}

// LoadAudio loads an audio file and wraps it in an infinite loop, suitable for background music.
// If the audio has already been loaded, it returns the cached player.
func (rm *ResourceManager) LoadAudio(filePath string) (*audio.Player, error) {
	return rm.loadPlayer(filePath, true)
}

// LoadSoundEffect loads a one-shot sound effect (no loop).
// If the audio has already been loaded, it returns the cached player.
func (rm *ResourceManager) LoadSoundEffect(filePath string) (*audio.Player, error) {
	return rm.loadPlayer(filePath, false)
}

func (rm *ResourceManager) loadPlayer(filePath string, loop bool) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[filePath]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not initialized")
	}

	stream, length, err := rm.decodeAudio(filePath)
	if err != nil {
		return nil, err
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, length)
	}

	player, err := rm.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", filePath, err)
	}

	rm.audioCache[filePath] = player
	return player, nil
}

// LoadSoundByID loads the sound with the given resource ID.
//
// The configured file is tried first; if it is absent or cannot be decoded and the
// definition names a synth fallback, the synthesized tone is used instead.
//
// Returns:
//   - The audio player (cached by ID)
//   - An error if the ID is unknown or neither the file nor a synth fallback works
func (rm *ResourceManager) LoadSoundByID(soundID string) (*audio.Player, error) {
	if player, ok := rm.soundCache[soundID]; ok {
		return player, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not initialized")
	}

	def, ok := rm.soundDefs[soundID]
	if !ok {
		return nil, fmt.Errorf("sound resource ID not found: %s", soundID)
	}

	var fileErr error
	if rm.exists(def.Path) {
		player, err := rm.loadPlayer(def.Path, def.Loop)
		if err == nil {
			rm.soundCache[soundID] = player
			return player, nil
		}
		fileErr = err
		log.Printf("[ResourceManager] Warning: %v", err)
	}

	if def.Synth == "" {
		if fileErr != nil {
			return nil, fmt.Errorf("sound %s: %w", soundID, fileErr)
		}
		return nil, fmt.Errorf("sound %s: file %q not found and no synth fallback", soundID, def.Path)
	}

	player, err := rm.synthPlayer(def.Synth, def.Loop)
	if err != nil {
		return nil, fmt.Errorf("sound %s: %w", soundID, err)
	}
	rm.soundCache[soundID] = player
	return player, nil
}

// GetSoundPlayer returns a previously loaded sound by resource ID, or nil.
func (rm *ResourceManager) GetSoundPlayer(soundID string) *audio.Player {
	return rm.soundCache[soundID]
}

// synthPlayer builds a player from synthesized PCM.
func (rm *ResourceManager) synthPlayer(name string, loop bool) (*audio.Player, error) {
	pcm, err := synthesizeSound(name, rm.audioContext.SampleRate())
	if err != nil {
		return nil, err
	}
	if !loop {
		return rm.audioContext.NewPlayerFromBytes(pcm), nil
	}
	return rm.audioContext.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm))))
}

// DefaultFont returns the bundled Go Bold face at the given size.
// Used for button labels and captions; no font file has to be shipped.
func (rm *ResourceManager) DefaultFont(size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("gobold:%.1f", size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	if rm.defaultFont == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create default font source: %w", err)
		}
		rm.defaultFont = source
	}

	face := &text.GoTextFace{Source: rm.defaultFont, Size: size, Direction: text.DirectionLeftToRight}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// GroupResources lists the resources of a group in load order (atlases, then sounds).
func (rm *ResourceManager) GroupResources(groupName string) ([]ResourceRef, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return nil, fmt.Errorf("resource group not found: %s", groupName)
	}

	refs := make([]ResourceRef, 0, len(group.Atlases)+len(group.Sounds))
	for _, a := range group.Atlases {
		refs = append(refs, ResourceRef{Kind: ResourceKindAtlas, ID: a.ID})
	}
	for _, s := range group.Sounds {
		refs = append(refs, ResourceRef{Kind: ResourceKindSound, ID: s.ID})
	}
	return refs, nil
}

// LoadResource loads a single resource of a group.
func (rm *ResourceManager) LoadResource(ref ResourceRef) error {
	switch ref.Kind {
	case ResourceKindAtlas:
		_, err := rm.LoadAtlas(ref.ID)
		return err
	case ResourceKindSound:
		_, err := rm.LoadSoundByID(ref.ID)
		return err
	default:
		return fmt.Errorf("unknown resource kind for %s", ref.ID)
	}
}

// LoadResourceGroup loads all resources in a specified group.
//
// Atlases are required: a failure aborts the load. Sounds are optional: failures are
// logged and skipped, the game runs silent rather than not at all.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	refs, err := rm.GroupResources(groupName)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		if err := rm.LoadResource(ref); err != nil {
			if ref.Kind == ResourceKindSound {
				log.Printf("[ResourceManager] Warning: skipping %s in group %s: %v", ref, groupName, err)
				continue
			}
			return fmt.Errorf("failed to load %s in group %s: %w", ref, groupName, err)
		}
	}
	return nil
}
