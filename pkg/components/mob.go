package components

import "github.com/decker502/towerdefense/pkg/types"

// MobComponent 怪物（含 Boss）的身份信息
type MobComponent struct {
	Type   types.MobType // 怪物类型
	Lane   int           // 所在行（0-based）
	IsBoss bool          // 是否为 Boss
	Wave   int           // 所属波次索引
	Dying  bool          // 已进入死亡流程，等待移除
}

// BossControl Boss 阶段机对外暴露的控制接口
type BossControl interface {
	Hurt()
	Die()
	IsDead() bool
}

// BossComponent 把 Boss 阶段机挂到实体上，供伤害和死亡系统驱动
type BossComponent struct {
	Control BossControl
}
