package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

// LaneAllocator 行分配器
//
// 平滑权重行分配：刚被选过的行在短时间内权重下降，
// 让同一波次的怪物在各行之间分布自然且避免连续重复。
type LaneAllocator struct {
	entityManager *ecs.EntityManager
	laneEntities  []ecs.EntityID // 每行一个状态实体，下标即行号
	rng           *rand.Rand
}

// NewLaneAllocator 创建行分配器
// rng 为 nil 时使用固定种子
func NewLaneAllocator(em *ecs.EntityManager, rng *rand.Rand) *LaneAllocator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &LaneAllocator{
		entityManager: em,
		rng:           rng,
	}
}

// InitializeLanes 初始化所有行的状态组件
//
// 参数:
//   - laneCount: 行数
//   - initialWeight: 初始权重
func (la *LaneAllocator) InitializeLanes(laneCount int, initialWeight float64) {
	la.laneEntities = make([]ecs.EntityID, laneCount)

	for i := 0; i < laneCount; i++ {
		entity := la.entityManager.CreateEntity()
		ecs.AddComponent(la.entityManager, entity, &components.LaneStateComponent{
			LaneIndex: i,
			Weight:    initialWeight,
		})
		la.laneEntities[i] = entity
	}

	log.Printf("[LaneAllocator] Initialized %d lanes with initial weight %.2f", laneCount, initialWeight)
}

// LaneCount 行数
func (la *LaneAllocator) LaneCount() int {
	return len(la.laneEntities)
}

// SetWeight 设置某一行的权重，0 表示禁用该行
func (la *LaneAllocator) SetWeight(lane int, weight float64) {
	if state := la.state(lane); state != nil {
		state.Weight = weight
	}
}

// SelectLane 选择一行并更新计数器
//
// 返回:
//   - 选中的行号（0-based）；没有可用行时返回 0
func (la *LaneAllocator) SelectLane() int {
	states := la.enabledStates()
	if len(states) == 0 {
		log.Printf("[LaneAllocator] WARNING: No enabled lanes, using lane 0")
		return 0
	}

	weights := make([]float64, len(states))
	for i, state := range states {
		weights[i] = state.Weight
	}
	weightP := CalculateWeightP(weights)

	smooth := make([]float64, len(states))
	total := 0.0
	for i, state := range states {
		pLast := CalculatePLast(state.LastPicked, weightP[i])
		pSecondLast := CalculatePSecondLast(state.SecondLastPicked, weightP[i])
		smooth[i] = CalculateSmoothWeight(weightP[i], pLast, pSecondLast)
		total += smooth[i]
	}

	selected := states[len(states)-1].LaneIndex
	if total > 0 {
		r := la.rng.Float64() * total
		cumulative := 0.0
		for i, sw := range smooth {
			cumulative += sw
			if cumulative >= r {
				selected = states[i].LaneIndex
				break
			}
		}
	}

	la.UpdateLaneCounters(selected)
	return selected
}

// UpdateLaneCounters 更新选中行的计数器
//
//  1. 所有权重 > 0 的行 LastPicked、SecondLastPicked 各 +1
//  2. 选中行的 SecondLastPicked 取选中前的 LastPicked
//  3. 选中行的 LastPicked 归零
func (la *LaneAllocator) UpdateLaneCounters(selectedLane int) {
	for _, entity := range la.laneEntities {
		state, ok := ecs.GetComponent[*components.LaneStateComponent](la.entityManager, entity)
		if ok && state.Weight > 0 {
			state.LastPicked++
			state.SecondLastPicked++
		}
	}

	if state := la.state(selectedLane); state != nil {
		state.SecondLastPicked = state.LastPicked - 1
		state.LastPicked = 0
	}
}

func (la *LaneAllocator) state(lane int) *components.LaneStateComponent {
	if lane < 0 || lane >= len(la.laneEntities) {
		return nil
	}
	state, ok := ecs.GetComponent[*components.LaneStateComponent](la.entityManager, la.laneEntities[lane])
	if !ok {
		return nil
	}
	return state
}

func (la *LaneAllocator) enabledStates() []*components.LaneStateComponent {
	states := make([]*components.LaneStateComponent, 0, len(la.laneEntities))
	for i := range la.laneEntities {
		if state := la.state(i); state != nil && state.Weight > 0 {
			states = append(states, state)
		}
	}
	return states
}

// CalculateWeightP 计算权重占比
func CalculateWeightP(laneWeights []float64) []float64 {
	sum := 0.0
	for _, w := range laneWeights {
		sum += w
	}

	weightP := make([]float64, len(laneWeights))
	if sum <= 0 {
		return weightP
	}
	for i, w := range laneWeights {
		weightP[i] = w / sum
	}
	return weightP
}

// CalculatePLast 计算影响因子 PLast
//
// 公式: PLast = (6 × LastPicked × WeightP + 6 × WeightP - 3) / 4
func CalculatePLast(lastPicked int, weightP float64) float64 {
	return (6.0*float64(lastPicked)*weightP + 6.0*weightP - 3.0) / 4.0
}

// CalculatePSecondLast 计算影响因子 PSecondLast
//
// 公式: PSecondLast = (SecondLastPicked × WeightP + WeightP - 1) / 4
func CalculatePSecondLast(secondLastPicked int, weightP float64) float64 {
	return (float64(secondLastPicked)*weightP + weightP - 1.0) / 4.0
}

// CalculateSmoothWeight 计算平滑权重
//
// 公式: SmoothWeight = WeightP × clamp(PLast + PSecondLast, 0.01, 100)
func CalculateSmoothWeight(weightP float64, pLast float64, pSecondLast float64) float64 {
	if weightP < 1e-6 {
		return 0
	}

	sum := pLast + pSecondLast
	if sum < 0.01 {
		sum = 0.01
	} else if sum > 100.0 {
		sum = 100.0
	}
	return weightP * sum
}
