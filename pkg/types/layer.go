package types

// LayerMask 物理层位掩码
// 射线检测时只与掩码内的层发生碰撞
type LayerMask uint

const (
	LayerNone     LayerMask = 0
	LayerDefault  LayerMask = 1 << 0
	LayerHumans   LayerMask = 1 << 1 // 防守方单位
	LayerObstacle LayerMask = 1 << 2 // 塔、墙等障碍物
	LayerNPC      LayerMask = 1 << 3 // 怪物
	LayerAll      LayerMask = ^LayerMask(0)
)

// Contains 判断掩码是否包含指定层
func (m LayerMask) Contains(layer LayerMask) bool {
	return m&layer != 0
}
