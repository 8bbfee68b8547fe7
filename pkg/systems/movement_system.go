package systems

import (
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

// MovementSystem 按速度积分实体位置
type MovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有位置和速度组件的实体
func (s *MovementSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime
	}
}
