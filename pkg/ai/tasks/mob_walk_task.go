package tasks

import (
	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/config"
)

// EventWalk 前进动画事件
const EventWalk = "walkStart"

// MobWalkTask 怪物沿行向左前进
//
// 配置了 raycaster 时，行内出现目标后让出（NoPriority），
// 由攻击任务在冷却期内保持活动；未配置时永远可用（近战怪物）。
type MobWalkTask struct {
	ai.BaseTask

	cfg       config.MobWalkConfig
	body      ai.Body
	mover     ai.Mover
	animator  ai.Animator
	raycaster ai.Raycaster
}

// NewMobWalkTask 创建前进任务
// raycaster 可为 nil
func NewMobWalkTask(cfg config.MobWalkConfig, body ai.Body, mover ai.Mover,
	animator ai.Animator, raycaster ai.Raycaster) *MobWalkTask {
	return &MobWalkTask{
		cfg:       cfg,
		body:      body,
		mover:     mover,
		animator:  animator,
		raycaster: raycaster,
	}
}

// Priority 行内有目标时让出
func (t *MobWalkTask) Priority() int {
	if t.raycaster != nil {
		from := t.body.CenterPosition()
		if t.raycaster.Raycast(from, ai.Point{X: 0, Y: from.Y}, scanMask) {
			return ai.NoPriority
		}
	}
	return t.cfg.Priority
}

func (t *MobWalkTask) Start() {
	t.BaseTask.Start()
	t.animator.Play(EventWalk)
	t.mover.SetVelocity(t.velocity())
}

func (t *MobWalkTask) Update() {
	t.mover.SetVelocity(t.velocity())
}

func (t *MobWalkTask) Stop() {
	t.BaseTask.Stop()
	t.mover.SetVelocity(ai.Point{})
}

func (t *MobWalkTask) velocity() ai.Point {
	return ai.Point{X: -t.cfg.Speed, Y: 0}
}
