package components

import "github.com/decker502/towerdefense/pkg/types"

// ProjectileComponent 子弹数据
type ProjectileComponent struct {
	Effect      types.ProjectileEffect // 元素效果
	TargetLayer types.LayerMask        // 可命中的层
	Damage      int                    // 命中伤害
	Flipped     bool                   // 贴图是否水平翻转
	Owner       uint64                 // 发射者实体ID
}

// LifetimeComponent 子弹存活时间
// 超过 MaxLifetime 后由生命周期系统销毁
type LifetimeComponent struct {
	MaxLifetime     float64 // 最长存活时间（秒）
	CurrentLifetime float64 // 已存活时间（秒）
	IsExpired       bool
}
