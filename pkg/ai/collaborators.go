package ai

import (
	"github.com/decker502/towerdefense/pkg/types"
	"github.com/decker502/towerdefense/pkg/waves"
)

// Point 世界坐标（格子单位）
type Point struct {
	X, Y float64
}

// Clock 单调时间源（毫秒）
type Clock interface {
	Now() int64
}

// Raycaster 视线检测
// from 到 to 之间存在 mask 层内的碰撞体时返回 true
type Raycaster interface {
	Raycast(from, to Point, mask types.LayerMask) bool
}

// Animator 动画播放协作者
type Animator interface {
	// Play 触发动画事件（如 "deployStart"）
	Play(name string)
	// IsFinished 当前动画是否已播放完毕
	IsFinished() bool
}

// Body 受控实体的位置查询
type Body interface {
	Position() Point
	CenterPosition() Point
}

// Mover 受控实体的移动控制
type Mover interface {
	SetSpeed(speed Point)
	SetVelocity(velocity Point)
}

// ProjectileRequest 子弹生成请求
type ProjectileRequest struct {
	Origin      Point                  // 生成位置
	Target      Point                  // 瞄准点
	Speed       Point                  // 飞行速度
	TargetLayer types.LayerMask        // 命中层
	Effect      types.ProjectileEffect // 元素效果
	Flipped     bool                   // 是否水平翻转（Boss 子弹朝左）
}

// ProjectileSpawner 子弹生成协作者
type ProjectileSpawner interface {
	SpawnProjectile(req ProjectileRequest)
}

// CohortSpawner 波次生成协作者
// 行号、站位由实现方负责
type CohortSpawner interface {
	SpawnCohort(spec waves.WaveSpec)
}

// EnemyCounter 当前波次存活敌人计数
// 死亡事件递减，波次推进任务读取并在波次开始时重置
type EnemyCounter interface {
	Set(n int)
	Get() int
	Decrement() error
}
