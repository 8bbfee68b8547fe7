package systems

import (
	"log"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

// LogOutputFrameInterval 日志输出间隔（每N帧输出一次）
const LogOutputFrameInterval = 100

// AITaskSystem 每帧驱动所有实体上的行为调度器
//
// 实体销毁时停止其活动 Task，保证 Stop 总会在实体消失前被调用。
type AITaskSystem struct {
	entityManager   *ecs.EntityManager
	logFrameCounter int
	verbose         bool
}

// NewAITaskSystem 创建行为调度系统，并注册实体销毁回调
func NewAITaskSystem(em *ecs.EntityManager) *AITaskSystem {
	s := &AITaskSystem{
		entityManager: em,
	}
	em.OnDestroy(s.dispose)
	return s
}

// SetVerbose 开启后周期性输出每个调度器的活动 Task
func (s *AITaskSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 对每个调度器执行一次仲裁
// 调度器按实体ID升序驱动，同一帧内顺序稳定
func (s *AITaskSystem) Update(deltaTime float64) {
	s.logFrameCounter++

	entities := ecs.GetEntitiesWith1[*components.AITaskComponent](s.entityManager)
	for _, id := range entities {
		comp, ok := ecs.GetComponent[*components.AITaskComponent](s.entityManager, id)
		if !ok || comp.Scheduler == nil {
			continue
		}

		comp.Scheduler.Tick()

		if s.verbose && s.logFrameCounter%LogOutputFrameInterval == 1 {
			if current := comp.Scheduler.Current(); current != nil {
				log.Printf("[AITaskSystem] %s: active=%T status=%s", comp.Scheduler.Name(), current, current.Status())
			} else {
				log.Printf("[AITaskSystem] %s: idle", comp.Scheduler.Name())
			}
		}
	}
}

func (s *AITaskSystem) dispose(id ecs.EntityID) {
	comp, ok := ecs.GetComponent[*components.AITaskComponent](s.entityManager, id)
	if !ok || comp.Scheduler == nil {
		return
	}
	comp.Scheduler.Dispose()
}
