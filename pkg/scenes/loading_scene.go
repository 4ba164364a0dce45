package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/ogmenu/pkg/components"
	"github.com/decker502/ogmenu/pkg/config"
	"github.com/decker502/ogmenu/pkg/game"
	"github.com/decker502/ogmenu/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 进度条外观
var (
	loadingBackground = color.RGBA{R: 0xf7, G: 0x8f, B: 0x25, A: 0xff}
	loadingBarTrack   = color.RGBA{R: 0xc4, G: 0x5f, B: 0x0a, A: 0xff}
	loadingBarFill    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

const (
	loadingBarWidthRatio = 0.6 // 进度条宽度占视口宽度的比例
	loadingBarHeight     = 16.0
	loadingBarRate       = 12.0 // 进度条显示值趋近实际进度的速度
)

// LoadingScene represents the loading screen shown when the game starts.
// It loads one resource of the menu group per frame, displays a progress bar,
// and starts the next scene once everything is loaded.
//
// Sound resources that fail to load are skipped (the game runs silent).
// An atlas that fails to load stops loading and the error is shown on screen.
type LoadingScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	group           string
	nextScene       string

	// Progress tracking
	queue           []game.ResourceRef
	loaded          int
	loadingComplete bool
	loadErr         error
	shownProgress   float64 // 进度条显示值，平滑趋近 Progress()

	captionStyle  components.TextStyle
	width, height int
}

// NewLoadingScene creates a new loading scene.
//
// Parameters:
//   - rm: resource manager with the resource config already loaded
//   - sm: scene manager used to start the next scene
//   - group: resource group to load (e.g., "menu")
//   - next: name of the scene started after loading (e.g., "menu")
func NewLoadingScene(rm *game.ResourceManager, sm *game.SceneManager, group, next string) *LoadingScene {
	return &LoadingScene{
		resourceManager: rm,
		sceneManager:    sm,
		group:           group,
		nextScene:       next,
	}
}

// Init builds the load queue from the resource group.
func (ls *LoadingScene) Init() {
	ls.loaded = 0
	ls.shownProgress = 0
	ls.loadingComplete = false
	ls.loadErr = nil

	refs, err := ls.resourceManager.GroupResources(ls.group)
	if err != nil {
		ls.loadErr = err
		log.Printf("[LoadingScene] Failed to list group %s: %v", ls.group, err)
		return
	}
	ls.queue = refs
	log.Printf("[LoadingScene] Loading group %s (%d resources)", ls.group, len(refs))
}

// Create prepares the caption font.
func (ls *LoadingScene) Create() {
	ls.captionStyle = components.TextStyle{Color: color.White}
	face, err := ls.resourceManager.DefaultFont(20 * config.GameScale)
	if err != nil {
		log.Printf("[LoadingScene] Warning: Failed to load font: %v", err)
		return
	}
	ls.captionStyle.Font = face
}

// Shutdown drops the load queue.
func (ls *LoadingScene) Shutdown() {
	ls.queue = nil
}

// Resize records the viewport size for centering the progress bar.
func (ls *LoadingScene) Resize(width, height int) {
	ls.width, ls.height = width, height
}

// Progress returns the loading progress (0.0 - 1.0).
func (ls *LoadingScene) Progress() float64 {
	if len(ls.queue) == 0 {
		if ls.loadingComplete {
			return 1
		}
		return 0
	}
	return float64(ls.loaded) / float64(len(ls.queue))
}

// IsComplete reports whether every resource has been processed.
func (ls *LoadingScene) IsComplete() bool {
	return ls.loadingComplete
}

// Err returns the error that stopped loading, if any.
func (ls *LoadingScene) Err() error {
	return ls.loadErr
}

// Update loads the next resource; when the queue is empty the next scene is started.
func (ls *LoadingScene) Update(deltaTime float64) {
	ls.shownProgress = utils.Approach(ls.shownProgress, ls.Progress(), loadingBarRate, deltaTime)

	if ls.loadErr != nil || ls.loadingComplete {
		return
	}

	if ls.loaded < len(ls.queue) {
		ref := ls.queue[ls.loaded]
		if err := ls.resourceManager.LoadResource(ref); err != nil {
			if ref.Kind != game.ResourceKindSound {
				ls.loadErr = fmt.Errorf("failed to load %s: %w", ref, err)
				log.Printf("[LoadingScene] %v", ls.loadErr)
				return
			}
			log.Printf("[LoadingScene] Warning: skipping %s: %v", ref, err)
		}
		ls.loaded++
		return
	}

	ls.loadingComplete = true
	log.Printf("[LoadingScene] Group %s loaded, starting %s", ls.group, ls.nextScene)
	ls.sceneManager.Start(ls.nextScene)
}

// Draw renders the progress bar and a caption.
// The bar eases toward the real progress, the caption shows the real value.
func (ls *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(loadingBackground)

	w, h := float64(ls.width), float64(ls.height)
	barW := w * loadingBarWidthRatio
	barX := (w - barW) / 2
	barY := h/2 - loadingBarHeight/2

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barW), float32(loadingBarHeight), loadingBarTrack, false)
	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barW*ls.shownProgress), float32(loadingBarHeight), loadingBarFill, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barW), float32(loadingBarHeight), 2, loadingBarFill, false)

	caption := fmt.Sprintf("LOADING %d%%", int(ls.Progress()*100))
	if ls.loadErr != nil {
		caption = "FAILED TO LOAD RESOURCES"
	}
	drawCentered(screen, caption, ls.captionStyle, w/2, barY-30)
}
