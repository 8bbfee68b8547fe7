// Package physics 基于 Chipmunk2D (jakecoffman/cp) 的视线检测
package physics

import (
	"github.com/decker502/towerdefense/pkg/ai"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/types"
	"github.com/jakecoffman/cp"
)

// LaneRaycaster 在 cp 空间中维护静态碰撞盒，提供按层过滤的线段检测
//
// 坐标系与游戏世界一致（格子单位，x 向右，y 为行号方向）。
// 防御塔等静止目标以静态盒加入，只参与查询，不参与模拟。
type LaneRaycaster struct {
	space  *cp.Space
	shapes map[ecs.EntityID]*cp.Shape
}

// NewLaneRaycaster 创建空的检测空间
func NewLaneRaycaster() *LaneRaycaster {
	return &LaneRaycaster{
		space:  cp.NewSpace(),
		shapes: make(map[ecs.EntityID]*cp.Shape),
	}
}

// AddBox 为实体添加一个以 center 为中心的矩形碰撞盒
// 同一实体重复添加会替换旧的碰撞盒
func (r *LaneRaycaster) AddBox(id ecs.EntityID, center ai.Point, width, height float64, layer types.LayerMask) {
	r.Remove(id)

	bb := cp.BB{
		L: center.X - width/2,
		B: center.Y - height/2,
		R: center.X + width/2,
		T: center.Y + height/2,
	}
	shape := cp.NewBox2(r.space.StaticBody, bb, 0)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(layer),
		Mask:       cp.ALL_CATEGORIES,
	})
	shape.UserData = id

	r.space.AddShape(shape)
	r.shapes[id] = shape
}

// Remove 移除实体的碰撞盒
func (r *LaneRaycaster) Remove(id ecs.EntityID) {
	shape, ok := r.shapes[id]
	if !ok {
		return
	}
	r.space.RemoveShape(shape)
	delete(r.shapes, id)
}

// Count 当前碰撞盒数量
func (r *LaneRaycaster) Count() int {
	return len(r.shapes)
}

// Raycast from 到 to 的线段是否碰到 mask 内的碰撞盒
func (r *LaneRaycaster) Raycast(from, to ai.Point, mask types.LayerMask) bool {
	_, _, hit := r.RaycastHit(from, to, mask)
	return hit
}

// RaycastHit 返回线段上离 from 最近的命中实体和命中点
func (r *LaneRaycaster) RaycastHit(from, to ai.Point, mask types.LayerMask) (ecs.EntityID, ai.Point, bool) {
	if mask == types.LayerNone || len(r.shapes) == 0 {
		return 0, ai.Point{}, false
	}

	filter := cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(mask),
	}
	info := r.space.SegmentQueryFirst(
		cp.Vector{X: from.X, Y: from.Y},
		cp.Vector{X: to.X, Y: to.Y},
		0,
		filter,
	)
	if info.Shape == nil {
		return 0, ai.Point{}, false
	}

	id, _ := info.Shape.UserData.(ecs.EntityID)
	return id, ai.Point{X: info.Point.X, Y: info.Point.Y}, true
}
