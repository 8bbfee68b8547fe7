package entities

import (
	"fmt"
	"math/rand"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/ai/tasks"
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/waves"
)

const (
	// MobSize 普通怪物碰撞盒边长（格）
	MobSize = 1.0

	// BossSize Boss 碰撞盒边长（格）
	BossSize = 1.5
)

// clipDurations 各动画事件的播放时长（秒）
var clipDurations = map[string]float64{
	tasks.EventIdle:   0.3,
	tasks.EventDeploy: 0.3,
	tasks.EventFiring: 0.2,
	tasks.EventStow:   0.3,
	tasks.EventWalk:   0.8,

	tasks.PhaseAppear.String(): 1.0,
	tasks.PhaseIdle.String():   0.6,
	tasks.PhaseAttack.String(): 0.5,
	tasks.PhaseCast.String():   1.2,
	tasks.PhaseHurt.String():   0.3,
	tasks.PhaseDeath.String():  1.0,
}

// MobFactory 创建怪物和 Boss 实体，并为它们装配行为调度器
//
// 普通怪物：前进任务；远程怪物额外挂攻击循环，前进任务在行内出现目标时让出。
// Boss：只挂 Boss 阶段机。
type MobFactory struct {
	em          *ecs.EntityManager
	cfg         *config.AIConfig
	clock       ai.Clock
	raycaster   ai.Raycaster
	projectiles ai.ProjectileSpawner
	rng         *rand.Rand
}

// NewMobFactory 创建怪物工厂
//
// 参数:
//   - em: 实体管理器
//   - cfg: 行为调参，nil 时使用默认值
//   - clock: 游戏时钟
//   - raycaster: 视线检测
//   - projectiles: 子弹生成
//   - rng: Boss 子弹效果的随机源
func NewMobFactory(em *ecs.EntityManager, cfg *config.AIConfig, clock ai.Clock,
	raycaster ai.Raycaster, projectiles ai.ProjectileSpawner, rng *rand.Rand) *MobFactory {
	if cfg == nil {
		cfg = config.DefaultAIConfig()
	}
	return &MobFactory{
		em:          em,
		cfg:         cfg,
		clock:       clock,
		raycaster:   raycaster,
		projectiles: projectiles,
		rng:         rng,
	}
}

// SetConfig 替换行为调参（热加载），只影响之后创建的实体
func (f *MobFactory) SetConfig(cfg *config.AIConfig) {
	if cfg != nil {
		f.cfg = cfg
	}
}

// Spawn 创建一个怪物实体
//
// 参数:
//   - entry: 波次条目（类型、血量、是否 Boss）
//   - lane: 行号（0-based）
//   - x: 生成的 X 坐标（通常在战场右侧外）
//   - wave: 所属波次索引
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
func (f *MobFactory) Spawn(entry waves.MobEntry, lane int, x float64, wave int) ecs.EntityID {
	id := f.em.CreateEntity()

	size := MobSize
	if entry.IsBoss {
		size = BossSize
	}

	f.em.AddComponent(id, &components.PositionComponent{X: x, Y: float64(lane)})
	f.em.AddComponent(id, &components.SizeComponent{Width: size, Height: size})
	f.em.AddComponent(id, &components.VelocityComponent{})
	f.em.AddComponent(id, &components.HealthComponent{CurrentHealth: entry.Health, MaxHealth: entry.Health})
	f.em.AddComponent(id, &components.MobComponent{
		Type:   entry.Type,
		Lane:   lane,
		IsBoss: entry.IsBoss,
		Wave:   wave,
	})
	f.em.AddComponent(id, &components.AnimationComponent{Durations: clipDurations})

	body := &entityBody{em: f.em, id: id}
	animator := &animationAdapter{em: f.em, id: id}
	scheduler := ai.NewTaskScheduler(fmt.Sprintf("%s#%d", entry.Type, id))

	if entry.IsBoss {
		boss := tasks.NewBossTask(f.cfg.Boss, body, body, animator, f.projectiles, f.rng)
		scheduler.AddTask(boss)
		f.em.AddComponent(id, &components.BossComponent{Control: boss})
	} else if f.cfg.IsRanged(string(entry.Type)) {
		scheduler.AddTask(tasks.NewMobWalkTask(f.cfg.MobWalk, body, body, animator, f.raycaster))
		scheduler.AddTask(tasks.NewMobAttackTask(f.cfg.MobAttack, body, animator, f.raycaster, f.projectiles, f.clock))
	} else {
		scheduler.AddTask(tasks.NewMobWalkTask(f.cfg.MobWalk, body, body, animator, nil))
	}

	f.em.AddComponent(id, &components.AITaskComponent{Scheduler: scheduler})
	return id
}
