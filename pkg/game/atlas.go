package game

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Atlas 精灵图集：一个名称加上按字符串键索引的子图
//
// 子图可以来自同一张 sheet 的 SubImage，也可以是程序绘制的独立图片，
// 使用方只通过帧名称访问，不关心来源。
type Atlas struct {
	name   string
	frames map[string]*ebiten.Image
}

// NewAtlas 创建空图集
func NewAtlas(name string) *Atlas {
	return &Atlas{
		name:   name,
		frames: make(map[string]*ebiten.Image),
	}
}

// Name 返回图集名称
func (a *Atlas) Name() string {
	return a.name
}

// AddFrame 添加或替换一帧
func (a *Atlas) AddFrame(key string, img *ebiten.Image) {
	a.frames[key] = img
}

// Frame 返回指定帧，不存在时返回 nil
func (a *Atlas) Frame(key string) *ebiten.Image {
	if a == nil {
		return nil
	}
	return a.frames[key]
}

// Has 检查帧是否存在
func (a *Atlas) Has(key string) bool {
	if a == nil {
		return false
	}
	_, ok := a.frames[key]
	return ok
}

// Keys 返回按字母排序的帧名称
func (a *Atlas) Keys() []string {
	keys := make([]string, 0, len(a.frames))
	for k := range a.frames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len 返回帧数量
func (a *Atlas) Len() int {
	return len(a.frames)
}
