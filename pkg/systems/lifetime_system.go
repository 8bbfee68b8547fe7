package systems

import (
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

// LifetimeSystem 清理存在时间超过上限的实体（主要是未命中的子弹）
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	expired       int
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体，过期实体标记删除
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			s.expired++
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Expired 累计过期清理的实体数
func (s *LifetimeSystem) Expired() int {
	return s.expired
}
