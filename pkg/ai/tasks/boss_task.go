package tasks

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/types"
)

// ErrUnhandledPhase Boss 进入了没有定义出口的阶段
var ErrUnhandledPhase = errors.New("unhandled boss phase")

// BossPhase Boss 阶段
type BossPhase int

const (
	phaseNone BossPhase = iota
	PhaseAppear
	PhaseIdle
	PhaseAttack
	PhaseHurt
	PhaseDeath
	PhaseCast
	PhaseSpell
)

func (p BossPhase) String() string {
	switch p {
	case PhaseAppear:
		return "appear"
	case PhaseIdle:
		return "idle"
	case PhaseAttack:
		return "attack"
	case PhaseHurt:
		return "hurt"
	case PhaseDeath:
		return "death"
	case PhaseCast:
		return "cast"
	case PhaseSpell:
		return "spell"
	default:
		return "none"
	}
}

// BossTask Boss 阶段机
//
// 阶段流转（除 Hurt/Death 外均在当前动画播放完毕时发生）：
//
//	Appear → Idle（远程模式）或 Attack（近战模式）
//	Idle   → Attack  发射一枚随机元素子弹
//	Attack → Cast    已连续发射 ShotsBeforeCast 次，计数清零；否则 → Idle
//	Cast   → Idle
//	Hurt   → Idle    由 Hurt() 进入
//	Death  → 结束    由 Die() 进入，动画结束后不再参与仲裁
//
// 动画只在阶段变化时播放一次。Spell 没有出口，进入后记录 ErrUnhandledPhase 并结束。
type BossTask struct {
	ai.BaseTask

	cfg      config.BossConfig
	body     ai.Body
	mover    ai.Mover
	animator ai.Animator
	spawner  ai.ProjectileSpawner
	rng      *rand.Rand

	phase     BossPhase
	prevPhase BossPhase // 上次播放动画时的阶段
	shots     int
	totalShot int
	halted    bool
	err       error
}

// NewBossTask 创建 Boss 阶段机
// 参数:
//   - cfg: 优先级、速度、出场模式、施法节奏
//   - rng: 子弹效果的随机源，nil 时使用固定种子
func NewBossTask(cfg config.BossConfig, body ai.Body, mover ai.Mover, animator ai.Animator,
	spawner ai.ProjectileSpawner, rng *rand.Rand) *BossTask {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &BossTask{
		cfg:      cfg,
		body:     body,
		mover:    mover,
		animator: animator,
		spawner:  spawner,
		rng:      rng,
	}
}

// Priority 固定优先级；死亡或出错结束后返回 NoPriority
func (t *BossTask) Priority() int {
	if t.halted {
		return ai.NoPriority
	}
	return t.cfg.Priority
}

// Start 设置移动速度并进入出场阶段
func (t *BossTask) Start() {
	t.BaseTask.Start()
	t.mover.SetSpeed(ai.Point{X: t.cfg.Speed.X, Y: t.cfg.Speed.Y})
	if t.phase == phaseNone {
		t.phase = PhaseAppear
	}
	t.prevPhase = phaseNone
}

// Update 播放阶段动画（仅在阶段变化时）并推进阶段机
func (t *BossTask) Update() {
	t.animate()

	switch t.phase {
	case PhaseAppear:
		if t.animator.IsFinished() {
			if t.cfg.Mode == config.BossModeMelee {
				t.changePhase(PhaseAttack)
			} else {
				t.changePhase(PhaseIdle)
			}
		}
	case PhaseIdle:
		if t.animator.IsFinished() {
			t.fire()
			t.changePhase(PhaseAttack)
		}
	case PhaseAttack:
		if t.animator.IsFinished() {
			if t.shots >= t.cfg.ShotsBeforeCast {
				t.shots = 0
				t.changePhase(PhaseCast)
			} else {
				t.changePhase(PhaseIdle)
			}
		}
	case PhaseCast, PhaseHurt:
		if t.animator.IsFinished() {
			t.changePhase(PhaseIdle)
		}
	case PhaseDeath:
		if t.animator.IsFinished() {
			log.Printf("[BossTask] Death animation finished after %d shots", t.totalShot)
			t.halt()
		}
	default:
		t.err = fmt.Errorf("%w: %s", ErrUnhandledPhase, t.phase)
		log.Printf("[BossTask] ❌ %v", t.err)
		t.halt()
	}
}

// Hurt 受击，打断当前阶段
// 出场和死亡阶段不可打断
func (t *BossTask) Hurt() {
	if t.phase == PhaseAppear || t.phase == PhaseDeath || t.halted {
		return
	}
	t.changePhase(PhaseHurt)
}

// Die 进入死亡阶段
func (t *BossTask) Die() {
	if t.phase == PhaseDeath || t.halted {
		return
	}
	t.changePhase(PhaseDeath)
}

// Phase 当前阶段
func (t *BossTask) Phase() BossPhase {
	return t.phase
}

// IsDead 死亡动画已播放完毕
func (t *BossTask) IsDead() bool {
	return t.halted && t.phase == PhaseDeath
}

// ShotsFired 累计发射的子弹数
func (t *BossTask) ShotsFired() int {
	return t.totalShot
}

// Err 返回阶段机记录的错误
func (t *BossTask) Err() error {
	return t.err
}

func (t *BossTask) changePhase(phase BossPhase) {
	t.phase = phase
}

// animate 边沿触发：阶段未变化时不重复播放
func (t *BossTask) animate() {
	if t.prevPhase == t.phase {
		return
	}
	t.animator.Play(t.phase.String())
	t.prevPhase = t.phase
}

func (t *BossTask) fire() {
	pos := t.body.Position()
	effect := types.BossEffects[t.rng.Intn(len(types.BossEffects))]
	t.spawner.SpawnProjectile(ai.ProjectileRequest{
		Origin:      pos,
		Target:      ai.Point{X: 0, Y: pos.Y},
		Speed:       ai.Point{X: t.cfg.ProjectileSpeed.X, Y: t.cfg.ProjectileSpeed.Y},
		TargetLayer: types.LayerHumans,
		Effect:      effect,
		Flipped:     true,
	})
	t.shots++
	t.totalShot++
}

func (t *BossTask) halt() {
	t.halted = true
	t.Finish()
}
