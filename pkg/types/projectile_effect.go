package types

// ProjectileEffect 子弹附带的元素效果
type ProjectileEffect int

const (
	// EffectFireball 普通火球（无附加效果）
	EffectFireball ProjectileEffect = iota
	// EffectBurn 灼烧
	EffectBurn
	// EffectSlow 减速
	EffectSlow
	// EffectStun 眩晕
	EffectStun
)

// BossEffects Boss 待机射击时可随机选择的效果集合
var BossEffects = []ProjectileEffect{EffectFireball, EffectBurn, EffectSlow, EffectStun}

func (e ProjectileEffect) String() string {
	switch e {
	case EffectFireball:
		return "fireball"
	case EffectBurn:
		return "burn"
	case EffectSlow:
		return "slow"
	case EffectStun:
		return "stun"
	default:
		return "unknown"
	}
}
