package tasks

import (
	"fmt"
	"log"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/waves"
)

// WaveTask 关卡波次推进
//
// 挂在关卡实体上的长期任务。启动时开始第一波：把敌人计数设为该波单位数并请求生成。
// 之后每帧检查计数：归零则推进到下一波，全部波次结束后发出关卡完成信号并停止参与仲裁。
// 每一波只请求生成一次。
type WaveTask struct {
	ai.BaseTask

	priority int
	level    *waves.LevelWaves
	counter  ai.EnemyCounter
	spawner  ai.CohortSpawner

	waveIndex int
	spawned   bool
	completed bool

	resume *resumePoint

	onWaveStarted   []func(index int, spec waves.WaveSpec)
	onLevelComplete []func()
}

type resumePoint struct {
	waveIndex int
	remaining int
}

// NewWaveTask 创建波次推进任务
// 参数:
//   - priority: 仲裁优先级（应高于关卡实体上的其他任务）
//   - level: 已生成的关卡波次
//   - counter: 敌人计数，由死亡事件递减
//   - spawner: 波次生成协作者
func NewWaveTask(priority int, level *waves.LevelWaves, counter ai.EnemyCounter, spawner ai.CohortSpawner) *WaveTask {
	return &WaveTask{
		priority: priority,
		level:    level,
		counter:  counter,
		spawner:  spawner,
	}
}

// OnWaveStarted 注册波次开始回调
func (t *WaveTask) OnWaveStarted(fn func(index int, spec waves.WaveSpec)) {
	t.onWaveStarted = append(t.onWaveStarted, fn)
}

// OnLevelComplete 注册关卡完成回调，只会触发一次
func (t *WaveTask) OnLevelComplete(fn func()) {
	t.onLevelComplete = append(t.onLevelComplete, fn)
}

// Resume 从存档恢复，必须在 Start 之前调用
// 第一次 Update 只补生成当前波剩余的 remaining 个单位
func (t *WaveTask) Resume(waveIndex, remaining int) error {
	if t.Status() != ai.StatusInactive || t.completed {
		return fmt.Errorf("cannot resume a wave task that has already started")
	}
	if waveIndex < 0 || waveIndex > t.level.NumWaves() {
		return fmt.Errorf("resume wave index %d out of range [0, %d]", waveIndex, t.level.NumWaves())
	}
	if remaining < 0 {
		return fmt.Errorf("resume remaining enemies cannot be negative, got %d", remaining)
	}
	size := 0
	if spec, ok := t.level.Wave(waveIndex); ok {
		size = spec.Size()
	}
	if remaining > size {
		return fmt.Errorf("resume remaining enemies %d exceeds wave %d size %d", remaining, waveIndex+1, size)
	}
	t.resume = &resumePoint{waveIndex: waveIndex, remaining: remaining}
	return nil
}

// Priority 关卡完成后返回 NoPriority
func (t *WaveTask) Priority() int {
	if t.completed {
		return ai.NoPriority
	}
	return t.priority
}

// Start 开始第一波（或恢复到存档中的波次）
func (t *WaveTask) Start() {
	t.BaseTask.Start()

	if t.resume != nil {
		r := t.resume
		t.resume = nil
		t.waveIndex = r.waveIndex
		_ = t.level.SetWaveIndex(r.waveIndex)
		if t.waveIndex >= t.level.NumWaves() {
			t.complete()
			return
		}
		t.counter.Set(r.remaining)
		t.spawned = false
		log.Printf("[WaveTask] Resuming level %d at wave %d with %d enemies remaining",
			t.level.LevelID(), t.waveIndex+1, r.remaining)
		return
	}

	t.waveIndex = 0
	_ = t.level.SetWaveIndex(0)
	if t.level.NumWaves() == 0 {
		t.complete()
		return
	}
	t.beginWave()
}

// Update 检查计数并推进波次
func (t *WaveTask) Update() {
	if t.completed {
		return
	}

	if t.counter.Get() == 0 {
		t.waveIndex++
		_ = t.level.SetWaveIndex(t.waveIndex)
		if t.waveIndex >= t.level.NumWaves() {
			t.complete()
			return
		}
		log.Printf("[WaveTask] No enemies remaining, begin next wave")
		t.beginWave()
		return
	}

	if !t.spawned {
		spec, _ := t.level.Wave(t.waveIndex)
		t.spawner.SpawnCohort(spec.Truncate(t.counter.Get()))
		t.spawned = true
	}
}

// RemainingEnemyCount 当前波剩余敌人数
func (t *WaveTask) RemainingEnemyCount() int {
	return t.counter.Get()
}

// CurrentWaveIndex 当前波次索引（0-based）
func (t *WaveTask) CurrentWaveIndex() int {
	return t.waveIndex
}

// IsLevelComplete 是否已完成全部波次
func (t *WaveTask) IsLevelComplete() bool {
	return t.completed
}

// Level 关卡波次
func (t *WaveTask) Level() *waves.LevelWaves {
	return t.level
}

func (t *WaveTask) beginWave() {
	spec, _ := t.level.Wave(t.waveIndex)
	t.counter.Set(spec.Size())
	t.spawner.SpawnCohort(spec)
	t.spawned = true

	log.Printf("[WaveTask] Wave %d/%d starting with %d enemies",
		t.waveIndex+1, t.level.NumWaves(), spec.Size())
	for _, fn := range t.onWaveStarted {
		fn(t.waveIndex, spec)
	}
}

func (t *WaveTask) complete() {
	if t.completed {
		return
	}
	t.completed = true
	t.Finish()

	log.Printf("[WaveTask] No waves remaining, level %d completed", t.level.LevelID())
	for _, fn := range t.onLevelComplete {
		fn()
	}
}
