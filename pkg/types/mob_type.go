// Package types 定义共享的基础类型
package types

// MobType 怪物类型标识符
// 使用字符串便于在 YAML 关卡规则中直接书写
type MobType string

const (
	// 通用怪物（三个星球都会出现）
	MobXeno          MobType = "Xeno"          // 异形步兵（远程）
	MobSplittingXeno MobType = "SplittingXeno" // 分裂异形
	MobDeflectXeno   MobType = "DeflectXeno"   // 反弹异形

	// 冰原星球
	MobWaterSlime MobType = "WaterSlime" // 水史莱姆

	// 沙漠星球
	MobSkeleton MobType = "Skeleton" // 骷髅
	MobWizard   MobType = "Wizard"   // 巫师（远程）

	// 熔岩星球
	MobDodgingDragon MobType = "DodgingDragon" // 闪避龙
	MobFireWorm      MobType = "FireWorm"      // 火焰蠕虫（远程）
)

// Boss 类型
const (
	BossWater MobType = "WaterBoss"
	BossMagic MobType = "MagicBoss"
	BossFire  MobType = "FireBoss"
)

// IsBoss 判断是否为 Boss 类型
func (m MobType) IsBoss() bool {
	switch m {
	case BossWater, BossMagic, BossFire:
		return true
	}
	return false
}

// String 实现 fmt.Stringer
func (m MobType) String() string {
	return string(m)
}
