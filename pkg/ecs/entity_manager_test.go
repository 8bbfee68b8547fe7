package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testLaneComponent struct {
	Lane int
	X    float64
}

type testHealthComponent struct {
	Current int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent_Generic(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testLaneComponent{Lane: 3, X: 19})

	lane, ok := GetComponent[*testLaneComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if lane.Lane != 3 || lane.X != 19 {
		t.Errorf("Expected lane (3, 19), got (%d, %f)", lane.Lane, lane.X)
	}

	// 泛型与反射两套接口共用同一份存储
	if !em.HasComponent(id, reflect.TypeOf(&testLaneComponent{})) {
		t.Error("Reflection lookup should see component added through generic API")
	}

	if _, ok := GetComponent[*testHealthComponent](em, id); ok {
		t.Error("Missing component should not be found")
	}
}

func TestRemoveComponent_Generic(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testHealthComponent{Current: 60})

	RemoveComponent[*testHealthComponent](em, id)
	if HasComponent[*testHealthComponent](em, id) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testLaneComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.IsAlive(id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.IsAlive(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities, got %d", em.EntityCount())
	}
}

// TestOnDestroy_CalledOncePerEntity 测试删除回调只触发一次
func TestOnDestroy_CalledOncePerEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	calls := 0
	em.OnDestroy(func(destroyed EntityID) {
		if destroyed != id {
			t.Errorf("Expected destroyed ID %d, got %d", id, destroyed)
		}
		// 回调时组件仍可访问
		if !em.IsAlive(destroyed) {
			t.Error("Entity should still be alive inside OnDestroy")
		}
		calls++
	})

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()
	em.RemoveMarkedEntities()

	if calls != 1 {
		t.Errorf("Expected OnDestroy to be called once, got %d", calls)
	}
}

func TestGetEntitiesWith_SortedAndFiltered(t *testing.T) {
	em := NewEntityManager()

	var both []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testLaneComponent{Lane: i % 5})
		if i%2 == 0 {
			AddComponent(em, id, &testHealthComponent{Current: 60})
			both = append(both, id)
		}
	}

	got := GetEntitiesWith2[*testLaneComponent, *testHealthComponent](em)
	if len(got) != len(both) {
		t.Fatalf("Expected %d entities, got %d", len(both), len(got))
	}
	for i := range got {
		if got[i] != both[i] {
			t.Errorf("Expected entity %d at index %d, got %d", both[i], i, got[i])
		}
	}

	lanes := GetEntitiesWith1[*testLaneComponent](em)
	if len(lanes) != 20 {
		t.Errorf("Expected 20 entities with lane component, got %d", len(lanes))
	}
}
