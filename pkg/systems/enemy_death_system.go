package systems

import (
	"errors"
	"log"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/game"
)

// EnemyDeathSystem 怪物死亡与漏怪处理
//
// 生命值耗尽或越过左边界的怪物立即递减敌人计数，波次推进任务据此判断本波是否清空。
// 普通怪物当帧标记删除；Boss 先进入死亡阶段，死亡动画播完后才删除。
type EnemyDeathSystem struct {
	entityManager *ecs.EntityManager
	counter       ai.EnemyCounter
	leftEdge      float64

	killed int
	leaked int
}

// NewEnemyDeathSystem 创建死亡系统
//
// 参数:
//   - em: 实体管理器
//   - counter: 当前波次敌人计数
//   - leftEdge: 战场左边界，怪物整体越过后视为漏怪
func NewEnemyDeathSystem(em *ecs.EntityManager, counter ai.EnemyCounter, leftEdge float64) *EnemyDeathSystem {
	return &EnemyDeathSystem{
		entityManager: em,
		counter:       counter,
		leftEdge:      leftEdge,
	}
}

// Update 处理本帧的死亡和漏怪
func (s *EnemyDeathSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith3[
		*components.MobComponent,
		*components.HealthComponent,
		*components.PositionComponent,
	](s.entityManager)

	for _, id := range entities {
		mob, _ := ecs.GetComponent[*components.MobComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		boss, isBoss := ecs.GetComponent[*components.BossComponent](s.entityManager, id)

		if mob.Dying {
			if isBoss && boss.Control.IsDead() {
				s.entityManager.DestroyEntity(id)
			}
			continue
		}

		if health.IsDead() {
			s.markDying(id, mob)
			s.killed++
			if isBoss {
				log.Printf("[EnemyDeathSystem] Boss %s defeated, playing death", mob.Type)
				boss.Control.Die()
				continue
			}
			s.entityManager.DestroyEntity(id)
			continue
		}

		width := 0.0
		if size, ok := ecs.GetComponent[*components.SizeComponent](s.entityManager, id); ok {
			width = size.Width
		}
		if pos.X+width < s.leftEdge {
			s.markDying(id, mob)
			s.leaked++
			log.Printf("[EnemyDeathSystem] %s leaked through lane %d", mob.Type, mob.Lane)
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Killed 累计击杀数
func (s *EnemyDeathSystem) Killed() int {
	return s.killed
}

// Leaked 累计漏怪数
func (s *EnemyDeathSystem) Leaked() int {
	return s.leaked
}

func (s *EnemyDeathSystem) markDying(id ecs.EntityID, mob *components.MobComponent) {
	mob.Dying = true
	if err := s.counter.Decrement(); err != nil {
		if errors.Is(err, game.ErrCounterUnderflow) {
			log.Printf("[EnemyDeathSystem] WARNING: enemy %d removed with counter already at zero", id)
			return
		}
		log.Printf("[EnemyDeathSystem] WARNING: failed to decrement enemy counter: %v", err)
	}
}
