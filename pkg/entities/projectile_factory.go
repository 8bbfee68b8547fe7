package entities

import (
	"math"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/types"
)

const (
	// ProjectileSize 子弹碰撞盒边长（格）
	ProjectileSize = 0.25

	// ProjectileLifetime 子弹最长存在时间（秒），超时自动清理
	ProjectileLifetime = 12.0
)

// projectileDamage 各元素效果的命中伤害
var projectileDamage = map[types.ProjectileEffect]int{
	types.EffectFireball: 10,
	types.EffectBurn:     12,
	types.EffectSlow:     6,
	types.EffectStun:     4,
}

// ProjectileFactory 根据行为任务的请求创建子弹实体
// 实现 ai.ProjectileSpawner
type ProjectileFactory struct {
	em      *ecs.EntityManager
	spawned int
}

// NewProjectileFactory 创建子弹工厂
func NewProjectileFactory(em *ecs.EntityManager) *ProjectileFactory {
	return &ProjectileFactory{em: em}
}

// SpawnProjectile 创建子弹
// 子弹沿所在行水平飞向瞄准点所在一侧，速度取请求中的 X 分量
func (f *ProjectileFactory) SpawnProjectile(req ai.ProjectileRequest) {
	f.Create(req)
}

// Create 创建子弹并返回实体ID
func (f *ProjectileFactory) Create(req ai.ProjectileRequest) ecs.EntityID {
	id := f.em.CreateEntity()

	direction := 1.0
	if req.Target.X < req.Origin.X {
		direction = -1.0
	}

	f.em.AddComponent(id, &components.PositionComponent{X: req.Origin.X, Y: req.Origin.Y})
	f.em.AddComponent(id, &components.SizeComponent{Width: ProjectileSize, Height: ProjectileSize})
	f.em.AddComponent(id, &components.VelocityComponent{
		VX:       direction * math.Abs(req.Speed.X),
		MaxSpeed: components.Vec2{X: math.Abs(req.Speed.X), Y: math.Abs(req.Speed.Y)},
	})
	f.em.AddComponent(id, &components.ProjectileComponent{
		Effect:      req.Effect,
		TargetLayer: req.TargetLayer,
		Damage:      projectileDamage[req.Effect],
		Flipped:     req.Flipped,
	})
	f.em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: ProjectileLifetime})

	f.spawned++
	return id
}

// Spawned 累计创建的子弹数
func (f *ProjectileFactory) Spawned() int {
	return f.spawned
}
