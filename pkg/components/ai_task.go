package components

import "github.com/decker502/towerdefense/pkg/ai"

// AITaskComponent 实体的行为调度器
// AITaskSystem 每帧对所有挂载此组件的实体调用一次 Tick
type AITaskComponent struct {
	Scheduler *ai.TaskScheduler
}
