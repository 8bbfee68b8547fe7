// Package ai 实体行为调度
//
// 每个受控实体（怪物、Boss、关卡）拥有一个 TaskScheduler，
// 调度器持有若干候选 Task，每帧根据优先级仲裁出唯一的活动 Task 并驱动它。
package ai

import "math"

// NoPriority 哨兵优先级：Task 当前无事可做
// 任何非哨兵值（包括 0 和负数）都胜过它
const NoPriority = math.MinInt

// Status Task 生命周期状态
type Status int

const (
	// StatusInactive 未激活（从未启动或已被停止）
	StatusInactive Status = iota
	// StatusActive 活动中，调度器每帧调用 Update
	StatusActive
	// StatusFinished 本轮执行完毕，等待调度器重启
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Task 可被调度器仲裁的行为单元
type Task interface {
	// Priority 返回当前仲裁分数，无事可做时返回 NoPriority
	Priority() int
	// Status 返回生命周期状态
	Status() Status
	// Start 成为活动 Task 时调用
	Start()
	// Update 每帧调用一次，仅在 Status() == StatusActive 时调用
	Update()
	// Stop 被替换或实体销毁时调用
	Stop()
}

// BaseTask 提供 Status 管理的默认实现，供具体 Task 嵌入
type BaseTask struct {
	status Status
}

// Status 返回当前状态
func (t *BaseTask) Status() Status {
	return t.status
}

// Start 标记为活动
func (t *BaseTask) Start() {
	t.status = StatusActive
}

// Stop 标记为未激活
func (t *BaseTask) Stop() {
	t.status = StatusInactive
}

// Update 默认无操作
func (t *BaseTask) Update() {}

// Finish 标记本轮执行完毕
func (t *BaseTask) Finish() {
	t.status = StatusFinished
}

// IsActive 是否处于活动状态
func (t *BaseTask) IsActive() bool {
	return t.status == StatusActive
}
