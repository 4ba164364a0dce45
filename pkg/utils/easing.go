package utils

import "math"

// 缓动函数
//
// 输入进度 t ∈ [0, 1]，返回缓动后的值。超出范围的 t 会先被截断。

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// EaseOutCubic 三次方缓出：开始快，结束慢
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Approach 按指数衰减让 current 趋近 target
//
// 参数：
//   - rate: 每秒的收敛速度，越大越快
//   - dt: 帧间隔（秒）
//
// 与帧率无关；差值小于 0.001 时直接返回 target。
func Approach(current, target, rate, dt float64) float64 {
	next := Lerp(current, target, 1-math.Exp(-rate*dt))
	if math.Abs(target-next) < 0.001 {
		return target
	}
	return next
}
