package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundManager 音效与背景音乐管理器
// 职责：
//   - 播放菜单音乐和点击音效
//   - 根据 SaveGame 的 SFX / Music 开关决定是否发声
//   - 切换开关并立即持久化
//
// 资源管理器可以为 nil（测试或无音频环境），此时开关照常切换，只是不发声。
type SoundManager struct {
	resourceManager *ResourceManager
	saveGame        *SaveGame

	currentTrack string        // 最近一次请求的背景音乐ID（即使音乐关闭也会记住）
	currentMusic *audio.Player // 当前背景音乐播放器
	musicPlaying bool          // 背景音乐是否处于播放状态
}

// 全局单例实例
var globalSoundManager *SoundManager

// InitSoundManager 创建全局 SoundManager 单例
//
// 参数：
//   - rm: ResourceManager 实例，可为 nil
//   - sg: SaveGame 实例，为 nil 时使用 GetSaveGame()
func InitSoundManager(rm *ResourceManager, sg *SaveGame) *SoundManager {
	globalSoundManager = NewSoundManager(rm, sg)
	return globalSoundManager
}

// GetSoundManager 返回全局 SoundManager 单例
// 未初始化时延迟创建一个不发声的实例
func GetSoundManager() *SoundManager {
	if globalSoundManager == nil {
		globalSoundManager = NewSoundManager(nil, nil)
	}
	return globalSoundManager
}

// NewSoundManager 创建新的音效管理器
func NewSoundManager(rm *ResourceManager, sg *SaveGame) *SoundManager {
	if sg == nil {
		sg = GetSaveGame()
	}
	return &SoundManager{
		resourceManager: rm,
		saveGame:        sg,
	}
}

// SaveGame 返回绑定的存档
func (sm *SoundManager) SaveGame() *SaveGame {
	return sm.saveGame
}

// CurrentTrack 返回最近请求的背景音乐ID
func (sm *SoundManager) CurrentTrack() string {
	return sm.currentTrack
}

// IsMusicPlaying 返回背景音乐是否处于播放状态
func (sm *SoundManager) IsMusicPlaying() bool {
	return sm.musicPlaying
}

// PlayMusic 播放背景音乐
//
// 曲目总会被记住，以便之后打开音乐开关时继续播放。
// 音乐关闭时不发声；同一首已在播放时不重新开始。
//
// 参数：
//   - track: 音乐资源ID（如 "SOUND_MENU_MUSIC"）
func (sm *SoundManager) PlayMusic(track string) {
	if track == sm.currentTrack && sm.musicPlaying {
		return
	}

	if track != sm.currentTrack {
		sm.stopMusic()
		sm.currentTrack = track
	}

	if !sm.saveGame.Music {
		log.Printf("[SoundManager] Music disabled, %s queued", track)
		return
	}
	sm.startMusic()
}

// StopMusic 停止并忘记当前背景音乐
func (sm *SoundManager) StopMusic() {
	sm.stopMusic()
	sm.currentTrack = ""
}

// Play 播放一次音效
//
// 返回：
//   - bool: 是否实际播放（音效关闭或资源缺失时为 false）
func (sm *SoundManager) Play(sfxID string) bool {
	if !sm.saveGame.SFX {
		return false
	}

	player := sm.player(sfxID)
	if player == nil {
		return false
	}

	player.SetVolume(sm.saveGame.SoundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[SoundManager] Warning: Failed to rewind sound %s: %v", sfxID, err)
	}
	player.Play()
	return true
}

// ToggleSfx 切换音效开关并保存
//
// 返回：
//   - bool: 切换后的状态
func (sm *SoundManager) ToggleSfx() bool {
	sm.saveGame.SFX = !sm.saveGame.SFX
	sm.persist()
	log.Printf("[SoundManager] SFX toggled: %v", sm.saveGame.SFX)
	return sm.saveGame.SFX
}

// ToggleMusic 切换音乐开关并保存
// 关闭时暂停当前音乐，打开时继续播放记住的曲目
//
// 返回：
//   - bool: 切换后的状态
func (sm *SoundManager) ToggleMusic() bool {
	sm.saveGame.Music = !sm.saveGame.Music
	sm.persist()

	if sm.saveGame.Music {
		sm.startMusic()
	} else {
		sm.pauseMusic()
	}

	log.Printf("[SoundManager] Music toggled: %v", sm.saveGame.Music)
	return sm.saveGame.Music
}

// SetMusicVolume 设置音乐音量并立即应用到当前音乐
func (sm *SoundManager) SetMusicVolume(volume float64) {
	sm.saveGame.SetMusicVolume(volume)
	if sm.currentMusic != nil {
		sm.currentMusic.SetVolume(sm.saveGame.MusicVolume)
	}
}

// SetSoundVolume 设置音效音量，影响后续播放的音效
func (sm *SoundManager) SetSoundVolume(volume float64) {
	sm.saveGame.SetSoundVolume(volume)
}

func (sm *SoundManager) persist() {
	if err := sm.saveGame.Save(); err != nil {
		log.Printf("[SoundManager] Warning: Failed to save: %v", err)
	}
}

// startMusic 开始（或继续）播放记住的曲目
func (sm *SoundManager) startMusic() {
	if sm.currentTrack == "" {
		return
	}
	sm.musicPlaying = true

	if sm.currentMusic == nil {
		sm.currentMusic = sm.player(sm.currentTrack)
		if sm.currentMusic == nil {
			return
		}
	}
	sm.currentMusic.SetVolume(sm.saveGame.MusicVolume)
	sm.currentMusic.Play()
	log.Printf("[SoundManager] Playing music: %s (volume: %.2f)", sm.currentTrack, sm.saveGame.MusicVolume)
}

func (sm *SoundManager) pauseMusic() {
	sm.musicPlaying = false
	if sm.currentMusic != nil {
		sm.currentMusic.Pause()
	}
}

func (sm *SoundManager) stopMusic() {
	sm.pauseMusic()
	if sm.currentMusic != nil {
		if err := sm.currentMusic.Rewind(); err != nil {
			log.Printf("[SoundManager] Warning: Failed to rewind music %s: %v", sm.currentTrack, err)
		}
	}
	sm.currentMusic = nil
}

// player 获取或加载资源ID对应的播放器
func (sm *SoundManager) player(id string) *audio.Player {
	if sm.resourceManager == nil {
		return nil
	}
	if p := sm.resourceManager.GetSoundPlayer(id); p != nil {
		return p
	}
	p, err := sm.resourceManager.LoadSoundByID(id)
	if err != nil {
		log.Printf("[SoundManager] Warning: Sound not available: %s: %v", id, err)
		return nil
	}
	return p
}
