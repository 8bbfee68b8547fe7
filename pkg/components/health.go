package components

// HealthComponent 存储实体的生命值信息
// 用于怪物、Boss 等可被攻击的实体
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// IsDead 生命值是否耗尽
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}

// TakeDamage 扣除生命值，不会低于 0
// 返回实际扣除的数值
func (h *HealthComponent) TakeDamage(amount int) int {
	if amount <= 0 || h.CurrentHealth <= 0 {
		return 0
	}
	if amount > h.CurrentHealth {
		amount = h.CurrentHealth
	}
	h.CurrentHealth -= amount
	return amount
}
