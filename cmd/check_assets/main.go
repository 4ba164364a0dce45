// check_assets 在发布前检查 assets/ 目录
//
// 检查项：
//   - resources.yaml 可解析且定义完整
//   - 每个图集的帧文件可解析，帧矩形互不重叠且不超出 sheet；没有 sheet 时每帧都能程序绘制
//   - 每个音效的文件存在，或者声明了合成音
//   - menu_layout.yaml 数值合法
//
// 用法：
//
//	go run ./cmd/check_assets -dir . -v
package main

import (
	"crypto/md5"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"sort"

	"github.com/decker502/ogmenu/pkg/config"
	"github.com/decker502/ogmenu/pkg/game"
	"github.com/decker502/ogmenu/pkg/utils"
)

func main() {
	dir := flag.String("dir", ".", "项目根目录（包含 assets/）")
	verbose := flag.Bool("v", false, "列出每个文件的大小和 MD5")
	flag.Parse()

	problems := check(os.DirFS(*dir), *verbose)
	for _, p := range problems {
		fmt.Printf("✗ %s\n", p)
	}
	if len(problems) > 0 {
		fmt.Printf("\n%d problem(s) found\n", len(problems))
		os.Exit(1)
	}
	fmt.Println("✓ assets OK")
}

// check 返回发现的所有问题
func check(fsys fs.FS, verbose bool) []string {
	var problems []string
	report := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	data, err := fs.ReadFile(fsys, config.ResourceConfigPath)
	if err != nil {
		report("%s: %v", config.ResourceConfigPath, err)
		return problems
	}
	cfg, err := game.ParseResourceConfig(data)
	if err != nil {
		report("%v", err)
		return problems
	}
	if err := cfg.Validate(); err != nil {
		report("%s: %v", config.ResourceConfigPath, err)
	}

	for groupName, group := range cfg.Groups {
		for _, a := range group.Atlases {
			for _, p := range checkAtlas(fsys, cfg, a, verbose) {
				report("group %s: %s", groupName, p)
			}
		}
		for _, s := range group.Sounds {
			if s.Path == "" {
				continue
			}
			full := cfg.ResolvePath(s.Path)
			if !exists(fsys, full) {
				if s.Synth == "" {
					report("group %s: sound %s: %s missing and no synth fallback", groupName, s.ID, full)
				} else if verbose {
					fmt.Printf("  %s: %s missing, synth %s will be used\n", s.ID, full, s.Synth)
				}
				continue
			}
			describe(fsys, full, verbose)
		}
	}

	if layoutData, err := fs.ReadFile(fsys, config.MenuLayoutConfigPath); err == nil {
		if _, err := config.LoadMenuLayoutConfig(layoutData); err != nil {
			report("%s: %v", config.MenuLayoutConfigPath, err)
		}
	} else if verbose {
		fmt.Printf("  %s missing, defaults will be used\n", config.MenuLayoutConfigPath)
	}

	return problems
}

// checkAtlas 检查一个图集的帧文件和 sheet
func checkAtlas(fsys fs.FS, cfg *game.ResourceConfig, a game.AtlasResource, verbose bool) []string {
	var problems []string

	framesPath := cfg.ResolvePath(a.Frames)
	data, err := fs.ReadFile(fsys, framesPath)
	if err != nil {
		return append(problems, fmt.Sprintf("atlas %s: %v", a.ID, err))
	}
	frames, err := game.ParseAtlasFrames(data)
	if err != nil {
		return append(problems, fmt.Sprintf("atlas %s: %v", a.ID, err))
	}
	describe(fsys, framesPath, verbose)

	for _, p := range overlappingFrames(frames) {
		problems = append(problems, fmt.Sprintf("atlas %s: %s", a.ID, p))
	}

	sheetPath := cfg.ResolvePath(a.Image)
	if sheetPath == "" || !exists(fsys, sheetPath) {
		// 没有 sheet 时所有帧都要能程序绘制
		for key := range frames.Frames {
			if !utils.HasFramePainter(key) {
				problems = append(problems, fmt.Sprintf("atlas %s: no sheet and frame %s cannot be painted", a.ID, key))
			}
		}
		return problems
	}

	f, err := fsys.Open(sheetPath)
	if err != nil {
		return append(problems, fmt.Sprintf("atlas %s: %v", a.ID, err))
	}
	defer f.Close()

	sheet, _, err := image.DecodeConfig(f)
	if err != nil {
		return append(problems, fmt.Sprintf("atlas %s: %s: %v", a.ID, sheetPath, err))
	}
	bounds := image.Rect(0, 0, sheet.Width, sheet.Height)
	for key, r := range frames.Frames {
		if rect := frameRect(r); !rect.In(bounds) {
			problems = append(problems, fmt.Sprintf("atlas %s: frame %s %v outside sheet %v", a.ID, key, rect, bounds))
		}
	}
	describe(fsys, sheetPath, verbose)
	return problems
}

// overlappingFrames 列出矩形相交的帧对，按帧名排序
func overlappingFrames(frames *game.AtlasFrames) []string {
	keys := make([]string, 0, len(frames.Frames))
	for key := range frames.Frames {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var problems []string
	for i, a := range keys {
		ra := frameRect(frames.Frames[a])
		for _, b := range keys[i+1:] {
			if rb := frameRect(frames.Frames[b]); ra.Overlaps(rb) {
				problems = append(problems, fmt.Sprintf("frames %s %v and %s %v overlap", a, ra, b, rb))
			}
		}
	}
	return problems
}

func frameRect(r game.AtlasFrameRect) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}

// describe 打印文件大小和 MD5
func describe(fsys fs.FS, name string, verbose bool) {
	if !verbose {
		return
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return
	}
	fmt.Printf("  %s: %d bytes, MD5 %x\n", name, len(data), md5.Sum(data))
}
