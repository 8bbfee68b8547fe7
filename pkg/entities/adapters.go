package entities

import (
	"math"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

// entityBody 把实体的位置、尺寸、速度组件适配为行为任务使用的 Body 和 Mover
type entityBody struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

func (b *entityBody) Position() ai.Point {
	pos, ok := ecs.GetComponent[*components.PositionComponent](b.em, b.id)
	if !ok {
		return ai.Point{}
	}
	return ai.Point{X: pos.X, Y: pos.Y}
}

func (b *entityBody) CenterPosition() ai.Point {
	p := b.Position()
	if size, ok := ecs.GetComponent[*components.SizeComponent](b.em, b.id); ok {
		p.X += size.Width / 2
		p.Y += size.Height / 2
	}
	return p
}

// SetSpeed 设置各轴速度上限
func (b *entityBody) SetSpeed(speed ai.Point) {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](b.em, b.id); ok {
		vel.MaxSpeed = components.Vec2{X: math.Abs(speed.X), Y: math.Abs(speed.Y)}
	}
}

// SetVelocity 设置速度，超出上限的分量会被截断
func (b *entityBody) SetVelocity(velocity ai.Point) {
	vel, ok := ecs.GetComponent[*components.VelocityComponent](b.em, b.id)
	if !ok {
		return
	}
	vel.VX = clampAxis(velocity.X, vel.MaxSpeed.X)
	vel.VY = clampAxis(velocity.Y, vel.MaxSpeed.Y)
}

func clampAxis(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	return math.Max(-limit, math.Min(limit, v))
}

// animationAdapter 把 AnimationComponent 适配为 ai.Animator
type animationAdapter struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

func (a *animationAdapter) Play(name string) {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](a.em, a.id)
	if !ok {
		return
	}
	anim.Current = name
	anim.Elapsed = 0
	anim.IsFinished = false
	anim.PlayCount++
}

func (a *animationAdapter) IsFinished() bool {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](a.em, a.id)
	if !ok {
		return true
	}
	return anim.IsFinished
}
