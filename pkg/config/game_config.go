package config

// 全局游戏常量
// 包括窗口尺寸、资源缩放、图集名称、帧名称和音效资源ID

const (
	// GameWindowWidth 是默认窗口宽度（像素）
	GameWindowWidth = 960
	// GameWindowHeight 是默认窗口高度（像素）
	GameWindowHeight = 640

	// GameScale 是资源分辨率缩放系数
	// 所有"设计像素"常量（如字号、Logo 偏移）都要乘以该系数
	GameScale = 1.0

	// SaveAppName 是 gdata 存档使用的应用名
	SaveAppName = "ogmenu"
)

// 图集名称
const (
	// AtlasInterface 是界面图集（背景、Logo、按钮、声音图标）
	AtlasInterface = "interface"
)

// 界面图集帧名称
const (
	FrameBackground          = "bg_orange"
	FrameLogo                = "OG_logo_fullcolor"
	FrameButtonOrange        = "btn_orange"
	FrameButtonOrangePressed = "btn_orange_onpress"
	FrameSFXOn               = "btn_sfx_on"
	FrameSFXOff              = "btn_sfx_off"
	FrameMusicOn             = "btn_music_on"
	FrameMusicOff            = "btn_music_off"
)

// 音频资源ID
const (
	// SoundMenuMusic 菜单背景音乐（循环）
	SoundMenuMusic = "SOUND_MENU_MUSIC"
	// SoundClick 按钮点击音效
	SoundClick = "SOUND_CLICK"
)

// 场景名称
const (
	SceneLoading  = "loading"
	SceneMenu     = "menu"
	SceneGameplay = "gameplay"
)

// 资源配置路径
const (
	ResourceConfigPath   = "assets/config/resources.yaml"
	MenuLayoutConfigPath = "assets/config/menu_layout.yaml"

	// ResourceGroupMenu 是菜单场景需要的资源组
	ResourceGroupMenu = "menu"
)

// SFXFrame 根据音效开关返回对应的图标帧名称
func SFXFrame(enabled bool) string {
	if enabled {
		return FrameSFXOn
	}
	return FrameSFXOff
}

// MusicFrame 根据音乐开关返回对应的图标帧名称
func MusicFrame(enabled bool) string {
	if enabled {
		return FrameMusicOn
	}
	return FrameMusicOff
}
