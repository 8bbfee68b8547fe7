package systems

import (
	"log"

	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/decker502/towerdefense/pkg/waves"
)

const (
	// MobSpacing 同一行内相邻怪物的生成间距（格）
	MobSpacing = 1.2

	// BossInset Boss 生成在战场右边界内侧的距离（格）
	BossInset = 2.0
)

// CohortSpawnSystem 把一波敌人放到战场上
//
// 实现 ai.CohortSpawner。每个单位通过平滑权重分配到某一行，
// 普通怪物从右边界外依次排开，Boss 直接出现在右边界内侧。
type CohortSpawnSystem struct {
	factory    *entities.MobFactory
	allocator  *LaneAllocator
	fieldWidth float64
	level      *waves.LevelWaves

	spawned int
}

// NewCohortSpawnSystem 创建波次生成系统
//
// 参数:
//   - factory: 怪物工厂
//   - allocator: 已初始化的行分配器
//   - fieldWidth: 战场宽度（格）
func NewCohortSpawnSystem(factory *entities.MobFactory, allocator *LaneAllocator, fieldWidth float64) *CohortSpawnSystem {
	return &CohortSpawnSystem{
		factory:    factory,
		allocator:  allocator,
		fieldWidth: fieldWidth,
	}
}

// BindLevel 绑定当前关卡，生成的怪物会记录所属波次
func (s *CohortSpawnSystem) BindLevel(level *waves.LevelWaves) {
	s.level = level
}

// SpawnCohort 生成一波敌人
func (s *CohortSpawnSystem) SpawnCohort(spec waves.WaveSpec) {
	wave := 0
	if s.level != nil {
		wave = s.level.CurrentWaveIndex()
	}

	laneDepth := make(map[int]int)
	count := 0
	for _, entry := range spec.Entries() {
		for i := 0; i < entry.Count; i++ {
			lane := s.allocator.SelectLane()

			x := s.fieldWidth + float64(laneDepth[lane])*MobSpacing
			if entry.IsBoss {
				x = s.fieldWidth - BossInset
			} else {
				laneDepth[lane]++
			}

			s.factory.Spawn(entry, lane, x, wave)
			count++
		}
	}

	s.spawned += count
	log.Printf("[CohortSpawnSystem] Spawned %d enemies for wave %d: %s", count, wave+1, spec)
}

// Spawned 累计生成的敌人数
func (s *CohortSpawnSystem) Spawned() int {
	return s.spawned
}
