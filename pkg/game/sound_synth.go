package game

import (
	"encoding/binary"
	"fmt"
	"math"
)

// 合成音效名称（resources.yaml 中 synth 字段的取值）
const (
	SynthClick    = "click"
	SynthMenuLoop = "menu_loop"
)

// IsSynthName 检查合成音效名称是否有效
func IsSynthName(name string) bool {
	return name == SynthClick || name == SynthMenuLoop
}

// synthesizeSound 生成 16 位小端双声道 PCM 数据
//
// 用于没有随包发布音频文件时的替代音效，格式与 audio.Context 的默认输入一致。
//
// 参数：
//   - name: 合成音效名称（SynthClick / SynthMenuLoop）
//   - sampleRate: 采样率（与 audio.Context 相同）
func synthesizeSound(name string, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	switch name {
	case SynthClick:
		return renderTones(sampleRate, []tone{{freq: 1320, dur: 0.05, gain: 0.5}}), nil
	case SynthMenuLoop:
		// C 大调琶音，两小节循环
		notes := []float64{523.25, 659.25, 783.99, 1046.50, 783.99, 659.25, 587.33, 493.88}
		tones := make([]tone, 0, len(notes))
		for _, f := range notes {
			tones = append(tones, tone{freq: f, dur: 0.25, gain: 0.18})
		}
		return renderTones(sampleRate, tones), nil
	default:
		return nil, fmt.Errorf("unknown synth sound: %s", name)
	}
}

type tone struct {
	freq float64 // Hz
	dur  float64 // 秒
	gain float64 // 0~1
}

// renderTones 依次渲染正弦音，每个音带指数衰减包络
func renderTones(sampleRate int, tones []tone) []byte {
	total := 0
	for _, t := range tones {
		total += int(t.dur * float64(sampleRate))
	}

	buf := make([]byte, total*4)
	offset := 0
	for _, t := range tones {
		n := int(t.dur * float64(sampleRate))
		for i := 0; i < n; i++ {
			ts := float64(i) / float64(sampleRate)
			env := math.Exp(-5 * ts / t.dur)
			v := int16(math.Sin(2*math.Pi*t.freq*ts) * env * t.gain * math.MaxInt16)

			binary.LittleEndian.PutUint16(buf[offset:], uint16(v))
			binary.LittleEndian.PutUint16(buf[offset+2:], uint16(v))
			offset += 4
		}
	}
	return buf
}
