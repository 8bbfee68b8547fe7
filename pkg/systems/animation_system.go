package systems

import (
	"math"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

// AnimationSystem 推进所有实体的动画计时
// 非循环动画播放满时长后置 IsFinished，行为任务据此切换阶段
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Update 更新所有动画实体
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.AnimationComponent](s.entityManager)

	for _, id := range entities {
		anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		if !ok || anim.Current == "" {
			continue
		}

		// 非循环动画停在最后一帧
		if anim.IsFinished && !anim.IsLooping {
			continue
		}

		anim.Elapsed += deltaTime

		duration := anim.Duration()
		if anim.Elapsed < duration {
			continue
		}

		if anim.IsLooping {
			anim.Elapsed = math.Mod(anim.Elapsed, duration)
		} else {
			anim.Elapsed = duration
			anim.IsFinished = true
		}
	}
}
