// Package waves 关卡波次数据与程序化生成
package waves

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/types"
)

// MobEntry 波次中的一种怪物
type MobEntry struct {
	Type   types.MobType // 怪物类型
	Count  int           // 数量
	Health int           // 单个血量
	IsBoss bool          // 是否为 Boss 条目
}

// WaveSpec 单个波次的怪物构成（不可变）
// 条目顺序固定：Boss（如果有）在前，随后是普通怪物
type WaveSpec struct {
	entries []MobEntry
}

// NewWaveSpec 创建波次
// Boss 条目会被移到最前面，其余保持传入顺序
func NewWaveSpec(entries ...MobEntry) WaveSpec {
	ordered := make([]MobEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsBoss {
			ordered = append(ordered, e)
		}
	}
	for _, e := range entries {
		if !e.IsBoss {
			ordered = append(ordered, e)
		}
	}
	return WaveSpec{entries: ordered}
}

// Entries 返回全部条目（副本）
func (w WaveSpec) Entries() []MobEntry {
	out := make([]MobEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Boss 返回 Boss 条目
func (w WaveSpec) Boss() (MobEntry, bool) {
	for _, e := range w.entries {
		if e.IsBoss {
			return e, true
		}
	}
	return MobEntry{}, false
}

// Mobs 返回普通怪物条目（副本）
func (w WaveSpec) Mobs() []MobEntry {
	out := make([]MobEntry, 0, len(w.entries))
	for _, e := range w.entries {
		if !e.IsBoss {
			out = append(out, e)
		}
	}
	return out
}

// Size 波次总单位数（含 Boss）
func (w WaveSpec) Size() int {
	total := 0
	for _, e := range w.entries {
		total += e.Count
	}
	return total
}

// Truncate 返回只保留前 n 个单位的波次
// 用于存档恢复时只补生成剩余的怪物，Boss 优先保留
func (w WaveSpec) Truncate(n int) WaveSpec {
	if n >= w.Size() {
		return w
	}
	out := make([]MobEntry, 0, len(w.entries))
	remaining := n
	for _, e := range w.entries {
		if remaining <= 0 {
			break
		}
		if e.Count > remaining {
			e.Count = remaining
		}
		remaining -= e.Count
		out = append(out, e)
	}
	return WaveSpec{entries: out}
}

func (w WaveSpec) String() string {
	return fmt.Sprintf("WaveSpec%v", w.entries)
}

// LevelWaves 一个关卡的全部波次及当前游标
type LevelWaves struct {
	levelID      int
	difficulty   int
	waves        []WaveSpec
	currentIndex int
}

// NewLevelWaves 创建关卡波次
func NewLevelWaves(levelID, difficulty int, specs []WaveSpec) *LevelWaves {
	waves := make([]WaveSpec, len(specs))
	copy(waves, specs)
	return &LevelWaves{
		levelID:    levelID,
		difficulty: difficulty,
		waves:      waves,
	}
}

// LevelID 关卡ID
func (l *LevelWaves) LevelID() int { return l.levelID }

// Difficulty 难度等级
func (l *LevelWaves) Difficulty() int { return l.difficulty }

// NumWaves 波次数量
func (l *LevelWaves) NumWaves() int { return len(l.waves) }

// Wave 返回指定索引的波次
func (l *LevelWaves) Wave(index int) (WaveSpec, bool) {
	if index < 0 || index >= len(l.waves) {
		return WaveSpec{}, false
	}
	return l.waves[index], true
}

// Waves 返回全部波次（副本）
func (l *LevelWaves) Waves() []WaveSpec {
	out := make([]WaveSpec, len(l.waves))
	copy(out, l.waves)
	return out
}

// CurrentWaveIndex 当前波次游标
func (l *LevelWaves) CurrentWaveIndex() int { return l.currentIndex }

// SetWaveIndex 设置波次游标
// 允许等于 NumWaves（表示全部完成）
func (l *LevelWaves) SetWaveIndex(index int) error {
	if index < 0 || index > len(l.waves) {
		return fmt.Errorf("wave index %d out of range [0, %d]", index, len(l.waves))
	}
	l.currentIndex = index
	return nil
}
