package game

import (
	"errors"
	"log"
	"sync/atomic"
)

// ErrCounterUnderflow 计数已经为 0 时再次递减
var ErrCounterUnderflow = errors.New("enemy counter underflow")

// EnemyCounter 关卡中存活敌人计数
//
// 波次开始时由 WaveTask 设置为本波单位数，敌人死亡时递减。
// 计数永远不小于 0：递减到 0 以下会被钳制并返回 ErrCounterUnderflow。
// 可被死亡回调与主循环并发访问。
type EnemyCounter struct {
	count atomic.Int64
}

// NewEnemyCounter 创建计数器，初始为 0
func NewEnemyCounter() *EnemyCounter {
	return &EnemyCounter{}
}

// Set 设置计数，负数会被钳制为 0
func (c *EnemyCounter) Set(n int) {
	if n < 0 {
		log.Printf("[EnemyCounter] Warning: negative count %d clamped to 0", n)
		n = 0
	}
	c.count.Store(int64(n))
}

// Get 返回当前计数
func (c *EnemyCounter) Get() int {
	return int(c.count.Load())
}

// Decrement 计数减一
// 返回:
//   - error: 计数已为 0 时返回 ErrCounterUnderflow，计数保持 0
func (c *EnemyCounter) Decrement() error {
	for {
		cur := c.count.Load()
		if cur <= 0 {
			log.Printf("[EnemyCounter] Warning: decrement below zero ignored")
			return ErrCounterUnderflow
		}
		if c.count.CompareAndSwap(cur, cur-1) {
			return nil
		}
	}
}
