package systems

import (
	"log"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/physics"
)

// ProjectileSystem 子弹命中检测
//
// 在 MovementSystem 之前运行：对每颗子弹本帧将要飞过的线段做一次射线检测，
// 命中目标层内的碰撞体则结算并销毁子弹，避免高速子弹穿过目标。
// 飞出战场左右边界的子弹直接销毁。
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	raycaster     *physics.LaneRaycaster
	fieldWidth    float64
	hits          int
}

// NewProjectileSystem 创建子弹系统
//
// 参数:
//   - em: 实体管理器
//   - raycaster: 目标碰撞体所在的检测空间
//   - fieldWidth: 战场宽度（格），超出 [-1, fieldWidth+1] 的子弹被清理
func NewProjectileSystem(em *ecs.EntityManager, raycaster *physics.LaneRaycaster, fieldWidth float64) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		raycaster:     raycaster,
		fieldWidth:    fieldWidth,
	}
}

// Update 检测所有子弹
func (s *ProjectileSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	for _, id := range entities {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		from := ai.Point{X: pos.X, Y: pos.Y}
		if size, ok := ecs.GetComponent[*components.SizeComponent](s.entityManager, id); ok {
			from.X += size.Width / 2
			from.Y += size.Height / 2
		}
		to := ai.Point{X: from.X + vel.VX*deltaTime, Y: from.Y + vel.VY*deltaTime}

		if target, _, hit := s.raycaster.RaycastHit(from, to, proj.TargetLayer); hit {
			s.applyHit(target, proj)
			s.entityManager.DestroyEntity(id)
			continue
		}

		if pos.X < -1 || pos.X > s.fieldWidth+1 {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Hits 累计命中次数
func (s *ProjectileSystem) Hits() int {
	return s.hits
}

func (s *ProjectileSystem) applyHit(target ecs.EntityID, proj *components.ProjectileComponent) {
	s.hits++
	if tower, ok := ecs.GetComponent[*components.TowerComponent](s.entityManager, target); ok {
		tower.HitsTaken++
		if tower.HitsTaken%LogOutputFrameInterval == 1 {
			log.Printf("[ProjectileSystem] Tower in lane %d hit by %s (total hits: %d)",
				tower.Lane, proj.Effect, tower.HitsTaken)
		}
	}
}
