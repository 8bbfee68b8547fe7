package systems

import (
	"testing"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

// TestAnimationSystem_FinishesOnce 测试非循环动画播满时长后完成
func TestAnimationSystem_FinishesOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em)

	id := em.CreateEntity()
	anim := &components.AnimationComponent{
		Current:   "attack",
		Durations: map[string]float64{"attack": 0.5},
	}
	em.AddComponent(id, anim)

	system.Update(0.25)
	if anim.IsFinished {
		t.Fatal("Animation should not be finished at 0.25s")
	}

	system.Update(0.3)
	if !anim.IsFinished {
		t.Fatal("Animation should be finished after 0.55s")
	}
	if anim.Elapsed != 0.5 {
		t.Errorf("Expected Elapsed clamped to 0.5, got %f", anim.Elapsed)
	}

	system.Update(1.0)
	if anim.Elapsed != 0.5 {
		t.Errorf("Finished animation should not advance, got %f", anim.Elapsed)
	}
}

// TestAnimationSystem_Looping 测试循环动画不会完成
func TestAnimationSystem_Looping(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em)

	id := em.CreateEntity()
	anim := &components.AnimationComponent{
		Current:   "walkStart",
		Durations: map[string]float64{"walkStart": 1.0},
		IsLooping: true,
	}
	em.AddComponent(id, anim)

	system.Update(2.5)

	if anim.IsFinished {
		t.Error("Looping animation should never finish")
	}
	if anim.Elapsed < 0.49 || anim.Elapsed > 0.51 {
		t.Errorf("Expected Elapsed to wrap to 0.5, got %f", anim.Elapsed)
	}
}

// TestAnimationSystem_DefaultDuration 测试未配置时长时使用默认值
func TestAnimationSystem_DefaultDuration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em)

	id := em.CreateEntity()
	anim := &components.AnimationComponent{Current: "unknown"}
	em.AddComponent(id, anim)

	system.Update(components.DefaultDuration - 0.01)
	if anim.IsFinished {
		t.Fatal("Animation should not finish before the default duration")
	}
	system.Update(0.02)
	if !anim.IsFinished {
		t.Error("Animation should finish after the default duration")
	}
}

// TestAnimationSystem_Idle 测试未播放任何动画时不推进
func TestAnimationSystem_Idle(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em)

	id := em.CreateEntity()
	anim := &components.AnimationComponent{}
	em.AddComponent(id, anim)

	system.Update(1.0)
	if anim.Elapsed != 0 || anim.IsFinished {
		t.Errorf("Expected idle animation untouched, got %+v", anim)
	}
}
