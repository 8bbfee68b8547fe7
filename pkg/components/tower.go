package components

// TowerComponent 防御塔
// 每帧对本行最靠前的怪物造成 DamagePerTick 点伤害
type TowerComponent struct {
	Lane          int     // 所在行（0-based）
	DamagePerTick float64 // 每帧伤害
	pending       float64 // 不足 1 点的伤害累积
	HitsTaken     int     // 被怪物子弹命中的次数
}

// Accumulate 累积本帧伤害，返回可以结算的整数部分
func (t *TowerComponent) Accumulate() int {
	t.pending += t.DamagePerTick
	whole := int(t.pending)
	t.pending -= float64(whole)
	return whole
}
