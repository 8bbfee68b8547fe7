package game

import (
	"errors"
	"math"
	"strconv"
	"sync"
	"testing"
)

// TestEnemyCounter_SetAndDecrement 测试设置和递减
func TestEnemyCounter_SetAndDecrement(t *testing.T) {
	c := NewEnemyCounter()
	if c.Get() != 0 {
		t.Errorf("Expected initial count 0, got %d", c.Get())
	}

	c.Set(3)
	for i := 0; i < 3; i++ {
		if err := c.Decrement(); err != nil {
			t.Fatalf("Decrement %d: unexpected error %v", i, err)
		}
	}
	if c.Get() != 0 {
		t.Errorf("Expected count 0, got %d", c.Get())
	}
}

// TestEnemyCounter_Underflow 测试递减到 0 以下被钳制
func TestEnemyCounter_Underflow(t *testing.T) {
	c := NewEnemyCounter()
	c.Set(1)

	if err := c.Decrement(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	err := c.Decrement()
	if !errors.Is(err, ErrCounterUnderflow) {
		t.Errorf("Expected ErrCounterUnderflow, got %v", err)
	}
	if c.Get() != 0 {
		t.Errorf("Expected count clamped at 0, got %d", c.Get())
	}
}

// TestEnemyCounter_NegativeSet 测试负数设置被钳制
func TestEnemyCounter_NegativeSet(t *testing.T) {
	c := NewEnemyCounter()
	c.Set(-5)
	if c.Get() != 0 {
		t.Errorf("Expected count 0, got %d", c.Get())
	}
}

// TestEnemyCounter_LargeSet 测试超过 int32 范围的计数不会变成负数
func TestEnemyCounter_LargeSet(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("int is 32 bits on this platform")
	}
	c := NewEnemyCounter()
	base := math.MaxInt32
	n := base + 5
	c.Set(n)
	if c.Get() != n {
		t.Errorf("Expected count %d, got %d", n, c.Get())
	}
	if err := c.Decrement(); err != nil {
		t.Fatalf("Unexpected decrement error: %v", err)
	}
	if c.Get() != n-1 {
		t.Errorf("Expected count %d, got %d", n-1, c.Get())
	}
}

// TestEnemyCounter_Concurrent 测试并发递减不会丢失或越界
func TestEnemyCounter_Concurrent(t *testing.T) {
	c := NewEnemyCounter()
	c.Set(100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	underflows := 0
	for i := 0; i < 120; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Decrement(); err != nil {
				mu.Lock()
				underflows++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if c.Get() != 0 {
		t.Errorf("Expected count 0, got %d", c.Get())
	}
	if underflows != 20 {
		t.Errorf("Expected 20 underflows, got %d", underflows)
	}
}
