package systems

import (
	"math"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

// BossHurtSteps Boss 每损失 1/BossHurtSteps 的最大生命值触发一次受击
const BossHurtSteps = 4

// TowerSystem 防御塔攻击
// 每座塔每帧对本行最靠前（X 最小且在塔前方）的存活怪物造成伤害
type TowerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTowerSystem 创建防御塔系统
func NewTowerSystem(em *ecs.EntityManager) *TowerSystem {
	return &TowerSystem{
		entityManager: em,
	}
}

// Update 结算所有防御塔本帧的伤害
func (s *TowerSystem) Update(deltaTime float64) {
	towers := ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.entityManager)
	if len(towers) == 0 {
		return
	}
	mobs := ecs.GetEntitiesWith3[
		*components.MobComponent,
		*components.HealthComponent,
		*components.PositionComponent,
	](s.entityManager)

	for _, towerID := range towers {
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, towerID)
		towerPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, towerID)

		damage := tower.Accumulate()
		if damage == 0 {
			continue
		}

		target, ok := s.frontMob(mobs, tower.Lane, towerPos.X)
		if !ok {
			continue
		}
		s.damage(target, damage)
	}
}

func (s *TowerSystem) frontMob(mobs []ecs.EntityID, lane int, minX float64) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestX := math.Inf(1)
	for _, id := range mobs {
		mob, _ := ecs.GetComponent[*components.MobComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if mob.Lane != lane || mob.Dying || health.IsDead() || pos.X < minX {
			continue
		}
		if pos.X < bestX {
			best = id
			bestX = pos.X
		}
	}
	return best, !math.IsInf(bestX, 1)
}

func (s *TowerSystem) damage(id ecs.EntityID, amount int) {
	health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)

	before := health.CurrentHealth
	health.TakeDamage(amount)

	boss, ok := ecs.GetComponent[*components.BossComponent](s.entityManager, id)
	if !ok || health.IsDead() || health.MaxHealth <= 0 {
		return
	}

	// 跨过生命值分段时触发受击
	step := float64(health.MaxHealth) / BossHurtSteps
	if int(float64(before-1)/step) != int(float64(health.CurrentHealth-1)/step) {
		boss.Control.Hurt()
	}
}
