package ai

import (
	"log"
)

// TaskScheduler 单个实体的行为调度器
//
// 仲裁规则：
//   - 每帧查询所有非活动 Task 的优先级，取严格最高者为挑战者（注册顺序靠前者优先）
//   - 挑战者优先级严格高于活动 Task 时切换；相等时保留活动 Task，避免来回抖动
//   - 活动 Task 返回 NoPriority 且无人胜出时挂起（本帧不调用 Update），用于冷却
//   - 活动 Task 已 Finished 且仍是最高优先级时重启它
//
// 切换顺序固定为 Stop(旧) → Start(新) → Update(新)，每帧最多一次仲裁。
type TaskScheduler struct {
	name    string
	tasks   []Task
	current Task
	ticks   int
}

// NewTaskScheduler 创建调度器
// 参数:
//   - name: 日志中使用的实体名称
func NewTaskScheduler(name string) *TaskScheduler {
	return &TaskScheduler{
		name:  name,
		tasks: make([]Task, 0, 2),
	}
}

// AddTask 注册候选 Task，返回调度器本身以便链式调用
func (s *TaskScheduler) AddTask(task Task) *TaskScheduler {
	if task == nil {
		return s
	}
	if s.ticks > 0 {
		log.Printf("[TaskScheduler:%s] Task %T added after first tick", s.name, task)
	}
	s.tasks = append(s.tasks, task)
	return s
}

// Tasks 返回已注册的 Task（副本）
func (s *TaskScheduler) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Current 返回当前活动 Task，没有时返回 nil
func (s *TaskScheduler) Current() Task {
	return s.current
}

// Name 返回调度器名称
func (s *TaskScheduler) Name() string {
	return s.name
}

// Tick 执行一次仲裁并驱动活动 Task
func (s *TaskScheduler) Tick() {
	s.ticks++

	challenger, challengerPriority := s.highestChallenger()

	if s.current == nil {
		if challenger != nil {
			s.switchTo(challenger)
		}
		return
	}

	currentPriority := s.current.Priority()
	if challenger != nil && challengerPriority > currentPriority {
		s.switchTo(challenger)
		return
	}

	// 冷却中：保留但不驱动
	if currentPriority == NoPriority {
		return
	}

	if s.current.Status() == StatusFinished {
		s.switchTo(s.current)
		return
	}

	s.runUpdate()
}

// Dispose 停止当前活动 Task（实体销毁时调用）
func (s *TaskScheduler) Dispose() {
	if s.current == nil {
		return
	}
	s.current.Stop()
	s.current = nil
}

// highestChallenger 返回优先级严格最高的非活动 Task
// 全部为 NoPriority 时返回 nil
func (s *TaskScheduler) highestChallenger() (Task, int) {
	var best Task
	bestPriority := NoPriority
	for _, task := range s.tasks {
		if task == s.current {
			continue
		}
		priority := task.Priority()
		if priority > bestPriority {
			best = task
			bestPriority = priority
		}
	}
	return best, bestPriority
}

// switchTo 切换活动 Task（target 为当前 Task 时即重启）
func (s *TaskScheduler) switchTo(target Task) {
	if s.current != nil {
		s.current.Stop()
	}
	s.current = target
	target.Start()
	s.runUpdate()
}

// runUpdate 驱动活动 Task
// Update 异常退出时保证调用 Stop，并把 panic 继续抛出
func (s *TaskScheduler) runUpdate() {
	task := s.current
	if task == nil || task.Status() != StatusActive {
		return
	}

	completed := false
	defer func() {
		if completed {
			return
		}
		log.Printf("[TaskScheduler:%s] ⚠️ Task %T aborted during Update, stopping it", s.name, task)
		task.Stop()
		if s.current == task {
			s.current = nil
		}
	}()

	task.Update()
	completed = true
}
