package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/towerdefense/pkg/ecs"
)

// TestCalculateWeightP 测试权重占比计算
func TestCalculateWeightP(t *testing.T) {
	tests := []struct {
		name     string
		weights  []float64
		expected []float64
	}{
		{
			name:     "正常权重分配",
			weights:  []float64{1.0, 1.0, 1.0, 1.0, 1.0},
			expected: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
		},
		{
			name:     "全零权重",
			weights:  []float64{0.0, 0.0, 0.0},
			expected: []float64{0.0, 0.0, 0.0},
		},
		{
			name:     "不均匀权重",
			weights:  []float64{1.0, 2.0, 3.0},
			expected: []float64{1.0 / 6.0, 2.0 / 6.0, 3.0 / 6.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateWeightP(tt.weights)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected length %d, got %d", len(tt.expected), len(result))
			}
			for i := range result {
				if math.Abs(result[i]-tt.expected[i]) > 1e-9 {
					t.Errorf("Index %d: expected %.6f, got %.6f", i, tt.expected[i], result[i])
				}
			}
		})
	}
}

// TestCalculateSmoothWeight 测试平滑权重的截断
func TestCalculateSmoothWeight(t *testing.T) {
	tests := []struct {
		name        string
		weightP     float64
		pLast       float64
		pSecondLast float64
		expected    float64
	}{
		{"零占比", 0, 5, 5, 0},
		{"下限截断", 0.2, -1, -1, 0.2 * 0.01},
		{"上限截断", 0.5, 80, 80, 0.5 * 100},
		{"正常范围", 0.2, 0.5, 0.25, 0.2 * 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSmoothWeight(tt.weightP, tt.pLast, tt.pSecondLast)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %.6f, got %.6f", tt.expected, got)
			}
		})
	}
}

// TestLaneAllocator_SelectInRange 测试选中行始终在范围内且覆盖所有行
func TestLaneAllocator_SelectInRange(t *testing.T) {
	em := ecs.NewEntityManager()
	la := NewLaneAllocator(em, rand.New(rand.NewSource(7)))
	la.InitializeLanes(5, 1.0)

	seen := make(map[int]int)
	for i := 0; i < 500; i++ {
		lane := la.SelectLane()
		if lane < 0 || lane >= 5 {
			t.Fatalf("Lane out of range: %d", lane)
		}
		seen[lane]++
	}

	if len(seen) != 5 {
		t.Errorf("Expected all 5 lanes to be picked, got %v", seen)
	}
}

// TestLaneAllocator_AvoidsImmediateRepeat 测试平滑权重降低连续选中同一行的概率
func TestLaneAllocator_AvoidsImmediateRepeat(t *testing.T) {
	em := ecs.NewEntityManager()
	la := NewLaneAllocator(em, rand.New(rand.NewSource(11)))
	la.InitializeLanes(5, 1.0)

	repeats := 0
	prev := la.SelectLane()
	const picks = 1000
	for i := 0; i < picks; i++ {
		lane := la.SelectLane()
		if lane == prev {
			repeats++
		}
		prev = lane
	}

	// 均匀随机时约 20% 重复，平滑后应明显更低
	if repeats > picks/10 {
		t.Errorf("Expected fewer than %d immediate repeats, got %d", picks/10, repeats)
	}
}

// TestLaneAllocator_DisabledLane 测试权重为 0 的行不会被选中
func TestLaneAllocator_DisabledLane(t *testing.T) {
	em := ecs.NewEntityManager()
	la := NewLaneAllocator(em, rand.New(rand.NewSource(3)))
	la.InitializeLanes(3, 1.0)
	la.SetWeight(1, 0)

	for i := 0; i < 200; i++ {
		if lane := la.SelectLane(); lane == 1 {
			t.Fatal("Expected disabled lane 1 to never be picked")
		}
	}
}

// TestLaneAllocator_NoLanes 测试没有行时返回 0
func TestLaneAllocator_NoLanes(t *testing.T) {
	la := NewLaneAllocator(ecs.NewEntityManager(), nil)
	if lane := la.SelectLane(); lane != 0 {
		t.Errorf("Expected lane 0, got %d", lane)
	}
}

// TestLaneAllocator_UpdateCounters 测试计数器更新
func TestLaneAllocator_UpdateCounters(t *testing.T) {
	em := ecs.NewEntityManager()
	la := NewLaneAllocator(em, nil)
	la.InitializeLanes(3, 1.0)

	la.UpdateLaneCounters(0)
	la.UpdateLaneCounters(0)
	la.UpdateLaneCounters(2)

	s0 := la.state(0)
	s1 := la.state(1)
	s2 := la.state(2)

	if s0.LastPicked != 1 || s0.SecondLastPicked != 1 {
		t.Errorf("Lane 0: expected (1, 1), got (%d, %d)", s0.LastPicked, s0.SecondLastPicked)
	}
	if s1.LastPicked != 3 || s1.SecondLastPicked != 3 {
		t.Errorf("Lane 1: expected (3, 3), got (%d, %d)", s1.LastPicked, s1.SecondLastPicked)
	}
	if s2.LastPicked != 0 || s2.SecondLastPicked != 2 {
		t.Errorf("Lane 2: expected (0, 2), got (%d, %d)", s2.LastPicked, s2.SecondLastPicked)
	}
}
