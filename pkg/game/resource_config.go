package game

import (
	"fmt"
	"path"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    sounds: [...]
//	    atlases: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that can be loaded together.
// Resources are loaded in declaration order: atlases first, then sounds.
type ResourceGroup struct {
	Atlases []AtlasResource `yaml:"atlases"` // Sprite atlases in this group
	Sounds  []SoundResource `yaml:"sounds"`  // Sound and music resources in this group
}

// SoundResource represents a single sound/audio resource definition.
//
// Fields:
//   - ID: Unique identifier for the sound (e.g., "SOUND_CLICK")
//   - Path: Relative path from base_path to the audio file (.ogg, .mp3 or .wav)
//   - Synth: Name of a synthesized fallback used when Path is empty or cannot be decoded
//   - Loop: Whether the sound is background music that loops forever
//
// Example:
//   - id: SOUND_CLICK
//     path: sounds/click.ogg
//     synth: click
type SoundResource struct {
	ID    string `yaml:"id"`
	Path  string `yaml:"path,omitempty"`
	Synth string `yaml:"synth,omitempty"`
	Loop  bool   `yaml:"loop,omitempty"`
}

// AtlasResource represents a sprite atlas: one sheet image plus a YAML file of frame rectangles.
//
// Example:
//   - id: interface
//     image: atlases/interface.png
//     frames: atlases/interface.yaml
//
// When the sheet image is not shipped, every frame is painted procedurally
// at the size declared in the frames file.
type AtlasResource struct {
	ID     string `yaml:"id"`
	Image  string `yaml:"image"`
	Frames string `yaml:"frames"`
}

// AtlasFrameRect is one frame's rectangle inside the atlas sheet.
type AtlasFrameRect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// AtlasFrames is the parsed content of an atlas frames file.
//
//	frames:
//	  bg_orange: {x: 0, y: 0, w: 32, h: 32}
type AtlasFrames struct {
	Frames map[string]AtlasFrameRect `yaml:"frames"`
}

// ResourceKind identifies the type of a resource inside a group.
type ResourceKind int

const (
	// ResourceKindAtlas is a sprite atlas
	ResourceKindAtlas ResourceKind = iota
	// ResourceKindSound is a sound effect or music track
	ResourceKindSound
)

// ResourceRef points at one resource of a group, used for incremental loading.
type ResourceRef struct {
	Kind ResourceKind
	ID   string
}

// String returns a readable form for logs.
func (r ResourceRef) String() string {
	switch r.Kind {
	case ResourceKindAtlas:
		return "atlas:" + r.ID
	case ResourceKindSound:
		return "sound:" + r.ID
	default:
		return "unknown:" + r.ID
	}
}

// ParseResourceConfig parses resources.yaml content.
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	return &config, nil
}

// ParseAtlasFrames parses an atlas frames file and validates every rectangle.
func ParseAtlasFrames(data []byte) (*AtlasFrames, error) {
	var frames AtlasFrames
	if err := yaml.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("failed to parse atlas frames: %w", err)
	}
	if len(frames.Frames) == 0 {
		return nil, fmt.Errorf("atlas frames file declares no frames")
	}
	for key, rect := range frames.Frames {
		if rect.W <= 0 || rect.H <= 0 {
			return nil, fmt.Errorf("atlas frame %s has invalid size %dx%d", key, rect.W, rect.H)
		}
		if rect.X < 0 || rect.Y < 0 {
			return nil, fmt.Errorf("atlas frame %s has negative origin (%d,%d)", key, rect.X, rect.Y)
		}
	}
	return &frames, nil
}

// buildFullPath constructs the full file path for a resource.
// It combines the base path with the resource's relative path.
//
// Parameters:
//   - basePath: The base path from ResourceConfig (e.g., "assets")
//   - relativePath: The resource's relative path (e.g., "sounds/click.ogg")
//
// Returns:
//   - The full file path (e.g., "assets/sounds/click.ogg"), always slash-separated for fs.FS
func buildFullPath(basePath, relativePath string) string {
	if relativePath == "" {
		return ""
	}
	if basePath == "" {
		return path.Clean(relativePath)
	}
	return path.Join(basePath, relativePath)
}

// ResolvePath resolves a path from the config against base_path.
func (c *ResourceConfig) ResolvePath(relativePath string) string {
	return buildFullPath(c.BasePath, relativePath)
}

// Validate reports definition errors that would only surface at load time:
// missing IDs, atlases without a frames file, and sounds that can never produce a player.
//
// The runtime loader does not call it: a broken sound only mutes the game.
// cmd/check_assets runs it before shipping.
func (c *ResourceConfig) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("resource config declares no groups")
	}
	for name, group := range c.Groups {
		for i, a := range group.Atlases {
			if a.ID == "" {
				return fmt.Errorf("group %s: atlas #%d has no id", name, i)
			}
			if a.Frames == "" {
				return fmt.Errorf("group %s: atlas %s has no frames file", name, a.ID)
			}
		}
		for i, s := range group.Sounds {
			if s.ID == "" {
				return fmt.Errorf("group %s: sound #%d has no id", name, i)
			}
			if s.Path == "" && s.Synth == "" {
				return fmt.Errorf("group %s: sound %s needs a path or a synth", name, s.ID)
			}
			if s.Synth != "" && !IsSynthName(s.Synth) {
				return fmt.Errorf("group %s: sound %s uses unknown synth %q", name, s.ID, s.Synth)
			}
		}
	}
	return nil
}
