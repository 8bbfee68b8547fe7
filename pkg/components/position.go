package components

// PositionComponent 实体在战场上的锚点位置（格子单位，碰撞盒左下角）
// X 向右递增，Y 为行方向；怪物从右侧进入向左移动
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（格/秒）
// MaxSpeed 为每个轴的速度上限，0 表示不限制
type VelocityComponent struct {
	VX       float64
	VY       float64
	MaxSpeed Vec2
}

// Vec2 二维向量
type Vec2 struct {
	X float64
	Y float64
}

// SizeComponent 实体的碰撞盒尺寸，从 PositionComponent 向右上延伸
type SizeComponent struct {
	Width  float64
	Height float64
}
