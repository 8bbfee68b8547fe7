package tasks

import (
	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/types"
	"github.com/decker502/towerdefense/pkg/waves"
)

// fakeClock 手动推进的时钟
type fakeClock struct {
	now int64
}

func (c *fakeClock) Now() int64 { return c.now }

// fakeRaycaster 可见性由测试直接控制
type fakeRaycaster struct {
	visible bool
	calls   int
	masks   []types.LayerMask
}

func (r *fakeRaycaster) Raycast(from, to ai.Point, mask types.LayerMask) bool {
	r.calls++
	r.masks = append(r.masks, mask)
	return r.visible
}

// fakeAnimator 记录播放的事件；finished 由测试控制，Play 时复位
type fakeAnimator struct {
	events   []string
	finished bool
}

func (a *fakeAnimator) Play(name string) {
	a.events = append(a.events, name)
	a.finished = false
}

func (a *fakeAnimator) IsFinished() bool { return a.finished }

func (a *fakeAnimator) last() string {
	if len(a.events) == 0 {
		return ""
	}
	return a.events[len(a.events)-1]
}

func (a *fakeAnimator) count(name string) int {
	n := 0
	for _, e := range a.events {
		if e == name {
			n++
		}
	}
	return n
}

// fakeBody 固定位置
type fakeBody struct {
	pos ai.Point
}

func (b *fakeBody) Position() ai.Point       { return b.pos }
func (b *fakeBody) CenterPosition() ai.Point { return ai.Point{X: b.pos.X + 0.5, Y: b.pos.Y + 0.5} }

// fakeMover 记录最后一次设置的速度
type fakeMover struct {
	speed    ai.Point
	velocity ai.Point
}

func (m *fakeMover) SetSpeed(speed ai.Point)       { m.speed = speed }
func (m *fakeMover) SetVelocity(velocity ai.Point) { m.velocity = velocity }

// fakeSpawner 记录子弹和波次生成请求
type fakeSpawner struct {
	projectiles []ai.ProjectileRequest
	cohorts     []waves.WaveSpec
	shotTimes   []int64
	clock       *fakeClock
}

func (s *fakeSpawner) SpawnProjectile(req ai.ProjectileRequest) {
	s.projectiles = append(s.projectiles, req)
	if s.clock != nil {
		s.shotTimes = append(s.shotTimes, s.clock.now)
	}
}

func (s *fakeSpawner) SpawnCohort(spec waves.WaveSpec) {
	s.cohorts = append(s.cohorts, spec)
}
