package game

import (
	"sync/atomic"
	"time"
)

// GameClock 游戏时钟
//
// 只随帧推进，暂停时不走。任务通过 Now() 读取毫秒时间戳，
// 这样冷却计时和帧率、真实时间都无关。
type GameClock struct {
	elapsed atomic.Int64 // 纳秒
	paused  atomic.Bool
}

// NewGameClock 创建从 0 开始的时钟
func NewGameClock() *GameClock {
	return &GameClock{}
}

// Advance 推进时钟
// 参数:
//   - dt: 本帧经过的时间
func (c *GameClock) Advance(dt time.Duration) {
	if c.paused.Load() || dt <= 0 {
		return
	}
	c.elapsed.Add(int64(dt))
}

// AdvanceSeconds 以秒推进时钟（ebiten 帧间隔通常是 1/TPS 秒）
func (c *GameClock) AdvanceSeconds(dt float64) {
	c.Advance(time.Duration(dt * float64(time.Second)))
}

// Now 当前游戏时间（毫秒）
func (c *GameClock) Now() int64 {
	return time.Duration(c.elapsed.Load()).Milliseconds()
}

// SetPaused 暂停或恢复
func (c *GameClock) SetPaused(paused bool) {
	c.paused.Store(paused)
}

// IsPaused 是否暂停
func (c *GameClock) IsPaused() bool {
	return c.paused.Load()
}
