package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SaveGame 持久化的玩家存档
// 目前只保存声音相关的开关和音量，菜单的声音图标直接读取 SFX / Music 字段
type SaveGame struct {
	// 声音开关
	SFX   bool `yaml:"sfx"`   // 音效开关
	Music bool `yaml:"music"` // 音乐开关

	// 音量 0.0 ~ 1.0
	SoundVolume float64 `yaml:"soundVolume"`
	MusicVolume float64 `yaml:"musicVolume"`

	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
}

// saveData 是写入磁盘的部分，与运行时字段分开以免序列化 gdataManager
type saveData struct {
	SFX         bool    `yaml:"sfx"`
	Music       bool    `yaml:"music"`
	SoundVolume float64 `yaml:"soundVolume"`
	MusicVolume float64 `yaml:"musicVolume"`
}

// 存储路径常量
const (
	saveObject   = "savegame"
	saveProperty = "sound"
)

// 全局单例实例
var globalSaveGame *SaveGame

// GetSaveGame 返回全局 SaveGame 单例
// 未通过 SetSaveGame 注入时，延迟创建一个仅内存的默认存档
func GetSaveGame() *SaveGame {
	if globalSaveGame == nil {
		globalSaveGame = NewSaveGame(nil)
	}
	return globalSaveGame
}

// SetSaveGame 替换全局 SaveGame 单例（应用启动时注入带 gdata 的实例）
func SetSaveGame(sg *SaveGame) {
	globalSaveGame = sg
}

// NewSaveGame 创建存档并尝试从 gdata 加载
//
// 参数：
//   - gdataManager: gdata 存储管理器，为 nil 时只在内存中保存
//
// 加载失败不是致命错误，会保留默认值并记录日志。
func NewSaveGame(gdataManager *gdata.Manager) *SaveGame {
	sg := &SaveGame{gdataManager: gdataManager}
	sg.reset()

	if err := sg.Load(); err != nil {
		log.Printf("[SaveGame] Warning: Failed to load save: %v (using defaults)", err)
	}
	return sg
}

// reset 恢复默认值
func (sg *SaveGame) reset() {
	sg.apply(defaultSaveData())
}

// defaultSaveData 返回默认设置
func defaultSaveData() saveData {
	return saveData{
		SFX:         true,
		Music:       true,
		SoundVolume: 0.8,
		MusicVolume: 0.7,
	}
}

// apply 把存档数据写入运行时字段
func (sg *SaveGame) apply(d saveData) {
	sg.SFX = d.SFX
	sg.Music = d.Music
	sg.SoundVolume = clampVolume(d.SoundVolume)
	sg.MusicVolume = clampVolume(d.MusicVolume)
}

// IsPersistent 返回存档是否会写入磁盘
func (sg *SaveGame) IsPersistent() bool {
	return sg.gdataManager != nil
}

// Load 从 gdata 加载存档
//
// 如果 gdataManager 为 nil 或存档不存在，保持默认值
//
// 返回：
//   - error: 读取或反序列化失败
func (sg *SaveGame) Load() error {
	if sg.gdataManager == nil {
		return nil
	}

	if !sg.gdataManager.ObjectPropExists(saveObject, saveProperty) {
		return nil
	}

	data, err := sg.gdataManager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		sg.reset()
		return fmt.Errorf("failed to load save: %w", err)
	}

	// 存档中缺失的键保留默认值
	loaded := defaultSaveData()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sg.reset()
		return fmt.Errorf("failed to unmarshal save: %w", err)
	}
	sg.apply(loaded)

	log.Printf("[SaveGame] Save loaded (sfx=%v, music=%v)", sg.SFX, sg.Music)
	return nil
}

// Save 保存存档到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sg *SaveGame) Save() error {
	if sg.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(saveData{
		SFX:         sg.SFX,
		Music:       sg.Music,
		SoundVolume: sg.SoundVolume,
		MusicVolume: sg.MusicVolume,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal save: %w", err)
	}

	if err := sg.gdataManager.SaveObjectProp(saveObject, saveProperty, data); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	log.Printf("[SaveGame] Save written")
	return nil
}

// SetSoundVolume 设置音效音量（限制在 0.0 ~ 1.0）
func (sg *SaveGame) SetSoundVolume(volume float64) {
	sg.SoundVolume = clampVolume(volume)
}

// SetMusicVolume 设置音乐音量（限制在 0.0 ~ 1.0）
func (sg *SaveGame) SetMusicVolume(volume float64) {
	sg.MusicVolume = clampVolume(volume)
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
