package components

// AnimationComponent 基于事件名的动画播放状态
//
// 行为任务通过 Play 切换动画，AnimationSystem 每帧推进 Elapsed，
// 非循环动画播放到 Duration 后置 IsFinished。
type AnimationComponent struct {
	Current    string             // 当前动画事件名（如 "deployStart"、"appear"）
	Elapsed    float64            // 当前动画已播放时间（秒）
	Durations  map[string]float64 // 各动画时长（秒），缺失时使用 DefaultDuration
	IsLooping  bool               // 是否循环播放
	IsFinished bool               // 动画是否已完成（仅对非循环动画有效）
	PlayCount  int                // 累计切换次数，调试用
}

// DefaultDuration 未配置时长的动画默认播放时间（秒）
const DefaultDuration = 0.5

// Duration 返回当前动画时长
func (a *AnimationComponent) Duration() float64 {
	if d, ok := a.Durations[a.Current]; ok && d > 0 {
		return d
	}
	return DefaultDuration
}
