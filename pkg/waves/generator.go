package waves

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/types"
)

// ErrInvalidConfig 生成参数或规则非法
var ErrInvalidConfig = errors.New("invalid wave configuration")

// Generator 程序化波次生成器
//
// 波次形状（数量、Boss 节奏、血量公式）由输入完全决定；
// 每波选哪两种怪物、如何拆分数量则是随机的。
type Generator struct {
	rules *config.WaveRules
	rng   *rand.Rand
}

// NewGenerator 创建生成器
// 参数:
//   - rules: 波次规则，nil 时使用内置规则
//   - rng: 随机源，nil 时使用固定种子 1
func NewGenerator(rules *config.WaveRules, rng *rand.Rand) *Generator {
	if rules == nil {
		rules = config.DefaultWaveRules()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Generator{rules: rules, rng: rng}
}

// Rules 返回生成器使用的规则
func (g *Generator) Rules() *config.WaveRules {
	return g.rules
}

// Generate 生成一个关卡的全部波次
//
// 第 i 波（1-based）：
//   - i 是 Boss 间隔的整数倍时加入 i/间隔 个 Boss，血量 BossBaseHealth + tier*i
//   - 从名单中不重复地抽取两种怪物，总数 minMobs 随机拆分，每种至少 MinUnitsPerType 个
//   - minMobs 首波为 MobsPerWaveBase + tier，之后每波加一
//   - 普通怪物血量 BaseHealth + tier*i
//
// 规则或参数非法时返回 ErrInvalidConfig，不会返回部分结果。
func (g *Generator) Generate(tier, waveCount, levelID int) ([]WaveSpec, error) {
	if err := g.rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if waveCount <= 0 {
		return nil, fmt.Errorf("%w: wave count must be positive, got %d", ErrInvalidConfig, waveCount)
	}
	if tier < 0 {
		return nil, fmt.Errorf("%w: difficulty tier cannot be negative, got %d", ErrInvalidConfig, tier)
	}

	level, ok := g.rules.Level(levelID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown level %d", ErrInvalidConfig, levelID)
	}

	roster := distinctRoster(level.Roster)
	if len(roster) < 2 {
		return nil, fmt.Errorf("%w: level %d roster needs at least 2 distinct mob types, got %d",
			ErrInvalidConfig, levelID, len(roster))
	}

	minUnits := g.rules.MinUnitsPerType
	minMobs := g.rules.MobsPerWaveBase + tier
	if minMobs < 2*minUnits {
		return nil, fmt.Errorf("%w: first wave of %d units cannot seat 2 mob types with %d units each (tier %d)",
			ErrInvalidConfig, minMobs, minUnits, tier)
	}

	specs := make([]WaveSpec, 0, waveCount)
	for i := 1; i <= waveCount; i++ {
		entries := make([]MobEntry, 0, 3)

		if i%g.rules.BossInterval == 0 {
			entries = append(entries, MobEntry{
				Type:   level.Boss,
				Count:  i / g.rules.BossInterval,
				Health: g.rules.BossBaseHealth + tier*i,
				IsBoss: true,
			})
		}

		picked := g.rng.Perm(len(roster))[:2]
		first := g.rng.Intn(minMobs-2*minUnits+1) + minUnits
		second := minMobs - first
		health := g.rules.BaseHealth + tier*i

		entries = append(entries,
			MobEntry{Type: roster[picked[0]], Count: first, Health: health},
			MobEntry{Type: roster[picked[1]], Count: second, Health: health},
		)

		specs = append(specs, NewWaveSpec(entries...))
		minMobs++
	}

	log.Printf("[WaveGenerator] Generated %d waves for level %d (%s), tier %d",
		len(specs), levelID, level.Name, tier)
	return specs, nil
}

// BuildLevel 按关卡预设（难度、波次数）生成关卡
func (g *Generator) BuildLevel(levelID int) (*LevelWaves, error) {
	level, ok := g.rules.Level(levelID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown level %d", ErrInvalidConfig, levelID)
	}

	specs, err := g.Generate(level.Difficulty, level.Waves, levelID)
	if err != nil {
		return nil, err
	}
	return NewLevelWaves(levelID, level.Difficulty, specs), nil
}

// distinctRoster 去重并保持顺序
func distinctRoster(roster []types.MobType) []types.MobType {
	seen := make(map[types.MobType]bool, len(roster))
	out := make([]types.MobType, 0, len(roster))
	for _, mob := range roster {
		if seen[mob] {
			continue
		}
		seen[mob] = true
		out = append(out, mob)
	}
	return out
}
