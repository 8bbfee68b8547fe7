package components

import (
	"github.com/decker502/towerdefense/pkg/ai/tasks"
	"github.com/decker502/towerdefense/pkg/waves"
)

// LevelComponent 关卡实体
// 持有本关的全部波次和波次推进任务
type LevelComponent struct {
	LevelID  int
	Seed     int64
	Waves    *waves.LevelWaves
	WaveTask *tasks.WaveTask
}

// LaneStateComponent 一行的分配状态
// 行分配器按平滑权重选行，每行一个实体
type LaneStateComponent struct {
	LaneIndex        int     // 行号（0-based）
	Weight           float64 // 行权重，0 表示该行不出怪
	LastPicked       int     // 距离上次被选中经过的选取次数
	SecondLastPicked int     // 距离上上次被选中经过的选取次数
}
