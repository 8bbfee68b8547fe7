package entities

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/ai/tasks"
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/physics"
	"github.com/decker502/towerdefense/pkg/types"
	"github.com/decker502/towerdefense/pkg/waves"
)

// TowerSize 防御塔碰撞盒边长（格）
const TowerSize = 0.8

// NewLevelEntity 创建关卡实体，挂载波次推进任务
//
// 参数:
//   - em: 实体管理器
//   - level: 已生成的关卡波次
//   - seed: 生成波次所用的随机种子（写入存档）
//   - priority: 波次任务优先级
//   - counter: 敌人计数
//   - spawner: 波次生成协作者
//
// 返回:
//   - ecs.EntityID: 关卡实体ID
//   - *tasks.WaveTask: 波次推进任务（用于注册回调、恢复存档）
func NewLevelEntity(em *ecs.EntityManager, level *waves.LevelWaves, seed int64, priority int,
	counter ai.EnemyCounter, spawner ai.CohortSpawner) (ecs.EntityID, *tasks.WaveTask) {
	id := em.CreateEntity()

	waveTask := tasks.NewWaveTask(priority, level, counter, spawner)
	scheduler := ai.NewTaskScheduler(fmt.Sprintf("level%d", level.LevelID())).AddTask(waveTask)

	em.AddComponent(id, &components.LevelComponent{
		LevelID:  level.LevelID(),
		Seed:     seed,
		Waves:    level,
		WaveTask: waveTask,
	})
	em.AddComponent(id, &components.AITaskComponent{Scheduler: scheduler})
	return id, waveTask
}

// NewTowerEntity 创建防御塔，并在视线检测空间中注册碰撞盒
// 塔同时位于障碍层（远程怪物扫描）和防守方层（Boss 子弹命中）
func NewTowerEntity(em *ecs.EntityManager, raycaster *physics.LaneRaycaster, lane int, column float64,
	damagePerTick float64) ecs.EntityID {
	id := em.CreateEntity()

	x := column + (1-TowerSize)/2
	y := float64(lane) + (1-TowerSize)/2
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.SizeComponent{Width: TowerSize, Height: TowerSize})
	em.AddComponent(id, &components.TowerComponent{Lane: lane, DamagePerTick: damagePerTick})

	if raycaster != nil {
		raycaster.AddBox(id, ai.Point{X: x + TowerSize/2, Y: y + TowerSize/2}, TowerSize, TowerSize,
			types.LayerObstacle|types.LayerHumans)
	}
	return id
}
