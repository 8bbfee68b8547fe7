// Package tasks 怪物、Boss 和关卡实体的具体行为
package tasks

import (
	"log"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/types"
)

// 攻击循环动画事件
const (
	EventIdle   = "idleStart"
	EventDeploy = "deployStart"
	EventFiring = "firingStart"
	EventStow   = "stowStart"
)

// AttackState 远程攻击循环状态
type AttackState int

const (
	AttackIdle AttackState = iota
	AttackDeploy
	AttackFiring
	AttackStow
)

func (s AttackState) String() string {
	switch s {
	case AttackIdle:
		return "Idle"
	case AttackDeploy:
		return "Deploy"
	case AttackFiring:
		return "Firing"
	case AttackStow:
		return "Stow"
	default:
		return "Unknown"
	}
}

// event 进入该状态时发出的动画事件
func (s AttackState) event() string {
	switch s {
	case AttackDeploy:
		return EventDeploy
	case AttackFiring:
		return EventFiring
	case AttackStow:
		return EventStow
	default:
		return EventIdle
	}
}

// scanMask 远程怪物扫描的目标层（防御塔）
const scanMask = types.LayerObstacle

// MobAttackTask 远程怪物的攻击循环
//
// 状态机（每帧评估一次）：
//
//	Idle   → Deploy  目标可见
//	Deploy → Firing  目标仍可见；不可见则 → Stow
//	Firing → Stow    发射一枚子弹（目标可见时）后无条件收起
//	Stow   → Deploy  目标可见；不可见则 → Idle
//
// 视线检测从实体中心指向同一行的左端（x = 0），扫描整行而不是追踪某个目标。
// 开火后到达 Stow 即本轮结束（Finished），由调度器在冷却结束后重启。
type MobAttackTask struct {
	ai.BaseTask

	cfg       config.MobAttackConfig
	body      ai.Body
	animator  ai.Animator
	raycaster ai.Raycaster
	spawner   ai.ProjectileSpawner
	clock     ai.Clock

	state     AttackState
	startTime int64
	started   bool
	fired     bool
	shots     int
}

// NewMobAttackTask 创建远程攻击任务
// 参数:
//   - cfg: 优先级、射击间隔、子弹参数
//   - body, animator: 受控实体
//   - raycaster: 视线检测
//   - spawner: 子弹生成
//   - clock: 游戏时钟（毫秒）
func NewMobAttackTask(cfg config.MobAttackConfig, body ai.Body, animator ai.Animator,
	raycaster ai.Raycaster, spawner ai.ProjectileSpawner, clock ai.Clock) *MobAttackTask {
	return &MobAttackTask{
		cfg:       cfg,
		body:      body,
		animator:  animator,
		raycaster: raycaster,
		spawner:   spawner,
		clock:     clock,
	}
}

// Priority 冷却期内（自上次 Start 起不超过 DelayMs）返回 NoPriority
// 活动与非活动状态使用同一判定；从未启动过时直接可用
func (t *MobAttackTask) Priority() int {
	if t.started && t.clock.Now() <= t.startTime+t.cfg.DelayMs {
		return ai.NoPriority
	}
	return t.cfg.Priority
}

// Start 重置状态机并记录冷却起点
func (t *MobAttackTask) Start() {
	t.BaseTask.Start()
	t.startTime = t.clock.Now()
	t.started = true
	t.fired = false
	t.state = AttackIdle
	t.animator.Play(EventIdle)
}

// Update 推进一次状态机
func (t *MobAttackTask) Update() {
	visible := t.targetVisible()

	switch t.state {
	case AttackIdle:
		if visible {
			t.enter(AttackDeploy)
		}
	case AttackDeploy:
		if visible {
			t.enter(AttackFiring)
		} else {
			t.enter(AttackStow)
		}
	case AttackFiring:
		if visible {
			t.fire()
		}
		t.enter(AttackStow)
	case AttackStow:
		if visible {
			t.enter(AttackDeploy)
		} else {
			t.enter(AttackIdle)
		}
	}

	if t.state == AttackStow && t.fired {
		t.Finish()
	}
}

// Stop 无论当前处于哪个状态都发出收起事件，避免动画停在半途
func (t *MobAttackTask) Stop() {
	t.BaseTask.Stop()
	t.animator.Play(EventStow)
}

// State 当前状态
func (t *MobAttackTask) State() AttackState {
	return t.state
}

// ShotsFired 累计发射的子弹数
func (t *MobAttackTask) ShotsFired() int {
	return t.shots
}

func (t *MobAttackTask) enter(state AttackState) {
	t.state = state
	t.animator.Play(state.event())
}

func (t *MobAttackTask) targetVisible() bool {
	from := t.body.CenterPosition()
	to := ai.Point{X: 0, Y: from.Y}
	return t.raycaster.Raycast(from, to, scanMask)
}

func (t *MobAttackTask) fire() {
	pos := t.body.Position()
	t.spawner.SpawnProjectile(ai.ProjectileRequest{
		Origin:      ai.Point{X: pos.X - t.cfg.FireOffsetX, Y: pos.Y},
		Target:      ai.Point{X: 0, Y: pos.Y},
		Speed:       ai.Point{X: t.cfg.ProjectileSpeed.X, Y: t.cfg.ProjectileSpeed.Y},
		TargetLayer: scanMask,
		Effect:      types.EffectFireball,
	})
	t.fired = true
	t.shots++
	if t.shots == 1 {
		log.Printf("[MobAttackTask] First shot at t=%dms from (%.2f, %.2f)", t.clock.Now(), pos.X, pos.Y)
	}
}
