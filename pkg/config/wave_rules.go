package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/decker502/towerdefense/pkg/embedded"
	"github.com/decker502/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// 默认波次规则常量
const (
	// DefaultBaseHealth 普通怪物基础血量
	DefaultBaseHealth = 60
	// DefaultBossBaseHealth Boss 基础血量
	DefaultBossBaseHealth = 80
	// DefaultBossInterval 每隔多少波出现一次 Boss
	DefaultBossInterval = 5
	// DefaultMobsPerWaveBase 首波怪物数 = 基数 + 难度
	DefaultMobsPerWaveBase = 3
	// DefaultMinUnitsPerType 每种怪物至少生成的数量
	DefaultMinUnitsPerType = 2
)

// WaveRules 波次生成规则
// 定义各关卡（星球）的怪物名单、Boss、难度预设以及血量公式常量
type WaveRules struct {
	BaseHealth      int           `yaml:"baseHealth"`      // 普通怪物基础血量，默认 60
	BossBaseHealth  int           `yaml:"bossBaseHealth"`  // Boss 基础血量，默认 80
	BossInterval    int           `yaml:"bossInterval"`    // Boss 出现间隔（波），默认 5
	MobsPerWaveBase int           `yaml:"mobsPerWaveBase"` // 首波怪物数基数，默认 3
	MinUnitsPerType int           `yaml:"minUnitsPerType"` // 每种怪物最少数量，默认 2
	Levels          []LevelPreset `yaml:"levels"`          // 关卡列表
}

// LevelPreset 单个关卡的怪物名单与难度预设
type LevelPreset struct {
	ID         int             `yaml:"id"`         // 关卡ID（0-based）
	Name       string          `yaml:"name"`       // 星球名称，如 "ICE"
	Difficulty int             `yaml:"difficulty"` // 难度等级
	Waves      int             `yaml:"waves"`      // 波次数
	Roster     []types.MobType `yaml:"roster"`     // 可出现的怪物类型
	Boss       types.MobType   `yaml:"boss"`       // 本关 Boss
}

// DefaultWaveRules 返回内置的波次规则
// 三个星球各自拥有一份怪物名单和一个 Boss
func DefaultWaveRules() *WaveRules {
	return &WaveRules{
		BaseHealth:      DefaultBaseHealth,
		BossBaseHealth:  DefaultBossBaseHealth,
		BossInterval:    DefaultBossInterval,
		MobsPerWaveBase: DefaultMobsPerWaveBase,
		MinUnitsPerType: DefaultMinUnitsPerType,
		Levels: []LevelPreset{
			{
				ID: 0, Name: "ICE", Difficulty: 3, Waves: 10,
				Roster: []types.MobType{types.MobXeno, types.MobSplittingXeno, types.MobWaterSlime, types.MobDeflectXeno},
				Boss:   types.BossWater,
			},
			{
				ID: 1, Name: "DESERT", Difficulty: 2, Waves: 5,
				Roster: []types.MobType{types.MobXeno, types.MobSplittingXeno, types.MobSkeleton, types.MobDeflectXeno, types.MobWizard},
				Boss:   types.BossMagic,
			},
			{
				ID: 2, Name: "LAVA", Difficulty: 5, Waves: 15,
				Roster: []types.MobType{types.MobXeno, types.MobSplittingXeno, types.MobDodgingDragon, types.MobDeflectXeno, types.MobFireWorm},
				Boss:   types.BossFire,
			},
		},
	}
}

// LoadWaveRules 从 YAML 文件加载波次规则
// 参数：
//
//	filepath - 规则文件路径（"data/" 前缀优先读取嵌入文件）
//
// 返回：
//
//	*WaveRules - 解析后的规则
//	error - 读取、解析或校验失败
func LoadWaveRules(filepath string) (*WaveRules, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave rules file %s: %w", filepath, err)
	}

	rules, err := ParseWaveRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid wave rules in %s: %w", filepath, err)
	}
	return rules, nil
}

// ParseWaveRules 解析 YAML 内容为波次规则
func ParseWaveRules(data []byte) (*WaveRules, error) {
	var rules WaveRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse wave rules YAML: %w", err)
	}

	applyWaveRulesDefaults(&rules)

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &rules, nil
}

// applyWaveRulesDefaults 为缺失字段设置默认值
func applyWaveRulesDefaults(rules *WaveRules) {
	if rules.BaseHealth == 0 {
		rules.BaseHealth = DefaultBaseHealth
	}
	if rules.BossBaseHealth == 0 {
		rules.BossBaseHealth = DefaultBossBaseHealth
	}
	if rules.BossInterval == 0 {
		rules.BossInterval = DefaultBossInterval
	}
	if rules.MobsPerWaveBase == 0 {
		rules.MobsPerWaveBase = DefaultMobsPerWaveBase
	}
	if rules.MinUnitsPerType == 0 {
		rules.MinUnitsPerType = DefaultMinUnitsPerType
	}
	// 未配置关卡时使用内置关卡
	if len(rules.Levels) == 0 {
		rules.Levels = DefaultWaveRules().Levels
	}
}

// Validate 校验规则的合法性
// 名单的重复项和长度在生成时再检查，这里只拦截明显错误
func (r *WaveRules) Validate() error {
	if r.BaseHealth < 1 {
		return fmt.Errorf("baseHealth must be at least 1, got %d", r.BaseHealth)
	}
	if r.BossBaseHealth < 1 {
		return fmt.Errorf("bossBaseHealth must be at least 1, got %d", r.BossBaseHealth)
	}
	if r.BossInterval < 1 {
		return fmt.Errorf("bossInterval must be at least 1, got %d", r.BossInterval)
	}
	if r.MobsPerWaveBase < 0 {
		return fmt.Errorf("mobsPerWaveBase cannot be negative, got %d", r.MobsPerWaveBase)
	}
	if r.MinUnitsPerType < DefaultMinUnitsPerType {
		return fmt.Errorf("minUnitsPerType must be at least %d, got %d", DefaultMinUnitsPerType, r.MinUnitsPerType)
	}

	seen := make(map[int]bool, len(r.Levels))
	for i, level := range r.Levels {
		if seen[level.ID] {
			return fmt.Errorf("levels[%d]: duplicate level id %d", i, level.ID)
		}
		seen[level.ID] = true

		if level.Boss == "" {
			return fmt.Errorf("levels[%d]: boss is required", i)
		}
		if level.Waves < 0 {
			return fmt.Errorf("levels[%d]: waves cannot be negative, got %d", i, level.Waves)
		}
		if level.Difficulty < 0 {
			return fmt.Errorf("levels[%d]: difficulty cannot be negative, got %d", i, level.Difficulty)
		}
		for j, mob := range level.Roster {
			if mob == "" {
				return fmt.Errorf("levels[%d].roster[%d]: mob type is required", i, j)
			}
		}
	}
	return nil
}

// Level 按ID查找关卡预设
func (r *WaveRules) Level(id int) (*LevelPreset, bool) {
	for i := range r.Levels {
		if r.Levels[i].ID == id {
			return &r.Levels[i], true
		}
	}
	return nil, false
}

// Fingerprint 规则内容的指纹
// 按 YAML 序列化后取 SHA-256 前 8 字节，内容相同的规则指纹相同
func (r *WaveRules) Fingerprint() string {
	data, err := yaml.Marshal(r)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
