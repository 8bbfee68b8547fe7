package tasks

import (
	"testing"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/types"
)

type attackFixture struct {
	task      *MobAttackTask
	clock     *fakeClock
	raycaster *fakeRaycaster
	animator  *fakeAnimator
	spawner   *fakeSpawner
	body      *fakeBody
}

func newAttackFixture() *attackFixture {
	cfg := config.DefaultAIConfig().MobAttack
	f := &attackFixture{
		clock:     &fakeClock{},
		raycaster: &fakeRaycaster{},
		animator:  &fakeAnimator{},
		body:      &fakeBody{pos: ai.Point{X: 8, Y: 3}},
	}
	f.spawner = &fakeSpawner{clock: f.clock}
	f.task = NewMobAttackTask(cfg, f.body, f.animator, f.raycaster, f.spawner, f.clock)
	return f
}

// TestMobAttack_FullCycle 测试目标可见时 Idle → Deploy → Firing → Stow
func TestMobAttack_FullCycle(t *testing.T) {
	f := newAttackFixture()
	f.raycaster.visible = true

	f.task.Start()
	if f.task.State() != AttackIdle || f.animator.last() != EventIdle {
		t.Fatalf("Expected Idle with %s after start, got %s / %s", EventIdle, f.task.State(), f.animator.last())
	}

	steps := []struct {
		state AttackState
		event string
	}{
		{AttackDeploy, EventDeploy},
		{AttackFiring, EventFiring},
		{AttackStow, EventStow},
	}
	for i, step := range steps {
		f.task.Update()
		if f.task.State() != step.state {
			t.Fatalf("Step %d: expected state %s, got %s", i, step.state, f.task.State())
		}
		if f.animator.last() != step.event {
			t.Errorf("Step %d: expected event %s, got %s", i, step.event, f.animator.last())
		}
	}

	if f.task.Status() != ai.StatusFinished {
		t.Errorf("Expected Finished after firing and stowing, got %s", f.task.Status())
	}
	if len(f.spawner.projectiles) != 1 {
		t.Fatalf("Expected exactly 1 projectile, got %d", len(f.spawner.projectiles))
	}

	req := f.spawner.projectiles[0]
	if req.Origin != (ai.Point{X: 7.25, Y: 3}) {
		t.Errorf("Expected origin (7.25, 3), got %+v", req.Origin)
	}
	if req.Target != (ai.Point{X: 0, Y: 3}) {
		t.Errorf("Expected target (0, 3), got %+v", req.Target)
	}
	if req.Speed != (ai.Point{X: 2, Y: 2}) {
		t.Errorf("Expected speed (2, 2), got %+v", req.Speed)
	}
	if f.task.ShotsFired() != 1 {
		t.Errorf("Expected 1 shot, got %d", f.task.ShotsFired())
	}
}

// TestMobAttack_LosesSight 测试 Deploy 时目标消失 → Stow → Idle，不结束
func TestMobAttack_LosesSight(t *testing.T) {
	f := newAttackFixture()
	f.raycaster.visible = true
	f.task.Start()
	f.task.Update() // Deploy

	f.raycaster.visible = false
	f.task.Update()
	if f.task.State() != AttackStow {
		t.Fatalf("Expected Stow, got %s", f.task.State())
	}
	if f.task.Status() != ai.StatusActive {
		t.Errorf("Stow without firing should not finish, got %s", f.task.Status())
	}

	f.task.Update()
	if f.task.State() != AttackIdle || f.animator.last() != EventIdle {
		t.Errorf("Expected Idle with %s, got %s / %s", EventIdle, f.task.State(), f.animator.last())
	}

	// Idle 且不可见：不发出新事件
	before := len(f.animator.events)
	f.task.Update()
	if len(f.animator.events) != before {
		t.Errorf("Expected no event for no-op transition, got %v", f.animator.events[before:])
	}

	// Stow 时目标重新出现 → Deploy
	f.raycaster.visible = true
	f.task.Update() // Deploy
	f.raycaster.visible = false
	f.task.Update() // Stow
	f.raycaster.visible = true
	f.task.Update()
	if f.task.State() != AttackDeploy {
		t.Errorf("Expected Stow → Deploy when visible, got %s", f.task.State())
	}
	if len(f.spawner.projectiles) != 0 {
		t.Errorf("Expected no projectiles, got %d", len(f.spawner.projectiles))
	}
}

// TestMobAttack_FiringWithoutTarget 测试 Firing 时目标消失不发射但仍收起
func TestMobAttack_FiringWithoutTarget(t *testing.T) {
	f := newAttackFixture()
	f.raycaster.visible = true
	f.task.Start()
	f.task.Update() // Deploy
	f.task.Update() // Firing

	f.raycaster.visible = false
	f.task.Update()

	if f.task.State() != AttackStow {
		t.Errorf("Expected Stow, got %s", f.task.State())
	}
	if len(f.spawner.projectiles) != 0 {
		t.Errorf("Expected no projectile, got %d", len(f.spawner.projectiles))
	}
	if f.task.Status() == ai.StatusFinished {
		t.Error("Expected task not to finish without firing")
	}
}

// TestMobAttack_StopEmitsStow 测试停止时无论状态都发出收起事件
func TestMobAttack_StopEmitsStow(t *testing.T) {
	f := newAttackFixture()
	f.raycaster.visible = true
	f.task.Start()
	f.task.Update() // Deploy
	f.task.Update() // Firing

	f.task.Stop()
	if f.animator.last() != EventStow {
		t.Errorf("Expected %s on stop, got %s", EventStow, f.animator.last())
	}
	if f.task.Status() != ai.StatusInactive {
		t.Errorf("Expected Inactive after stop, got %s", f.task.Status())
	}
}

// TestMobAttack_Priority 测试冷却门控的优先级
func TestMobAttack_Priority(t *testing.T) {
	f := newAttackFixture()

	if p := f.task.Priority(); p != 2 {
		t.Errorf("Expected priority 2 before first start, got %d", p)
	}

	f.clock.now = 1000
	f.task.Start()

	tests := []struct {
		now      int64
		expected int
	}{
		{1000, ai.NoPriority},
		{1350, ai.NoPriority},
		{1700, ai.NoPriority},
		{1701, 2},
		{5000, 2},
	}
	for _, tt := range tests {
		f.clock.now = tt.now
		if p := f.task.Priority(); p != tt.expected {
			t.Errorf("At %dms: expected priority %d, got %d", tt.now, tt.expected, p)
		}
	}

	// 非活动状态使用同一判定
	f.task.Stop()
	f.clock.now = 1500
	if p := f.task.Priority(); p != ai.NoPriority {
		t.Errorf("Expected NoPriority while inactive within cooldown, got %d", p)
	}
}

// TestMobAttack_ScansObstacleLayer 测试每次 Update 只做一次视线检测
func TestMobAttack_ScansObstacleLayer(t *testing.T) {
	f := newAttackFixture()
	f.task.Start()
	f.task.Update()
	f.task.Update()

	if f.raycaster.calls != 2 {
		t.Errorf("Expected 2 raycasts, got %d", f.raycaster.calls)
	}
	for _, mask := range f.raycaster.masks {
		if mask != types.LayerObstacle {
			t.Errorf("Expected obstacle mask, got %v", mask)
		}
	}
}

// TestMobAttack_CooldownGate 测试任意帧率下两次射击间隔都大于冷却时间
func TestMobAttack_CooldownGate(t *testing.T) {
	tickRates := []int64{1, 7, 16, 33, 100, 250, 699, 701}

	for _, rate := range tickRates {
		f := newAttackFixture()
		f.raycaster.visible = true
		walk := NewMobWalkTask(config.DefaultAIConfig().MobWalk, f.body, &fakeMover{}, f.animator, f.raycaster)

		s := ai.NewTaskScheduler("mob").AddTask(walk).AddTask(f.task)

		var starts []int64
		lastStatus := ai.StatusInactive
		for f.clock.now = 0; f.clock.now <= 20000; f.clock.now += rate {
			s.Tick()
			if f.task.Status() == ai.StatusActive && lastStatus != ai.StatusActive {
				starts = append(starts, f.clock.now)
			}
			lastStatus = f.task.Status()
		}

		shots := f.spawner.shotTimes
		if len(shots) < 2 {
			t.Fatalf("rate %dms: expected at least 2 shots, got %d", rate, len(shots))
		}
		for i := 1; i < len(shots); i++ {
			if shots[i]-shots[i-1] <= 700 {
				t.Errorf("rate %dms: shots %d and %d only %dms apart", rate, i-1, i, shots[i]-shots[i-1])
			}
		}
		if shots[0] <= starts[0]+700 {
			t.Errorf("rate %dms: first shot at %d before cooldown from start at %d", rate, shots[0], starts[0])
		}
	}
}
