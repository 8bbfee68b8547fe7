package config

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Vec2Config 二维向量配置
type Vec2Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MobAttackConfig 远程怪物攻击循环配置
type MobAttackConfig struct {
	Priority        int        `yaml:"priority"`        // 仲裁优先级，默认 2
	DelayMs         int64      `yaml:"delayMs"`         // 两次射击的最小间隔（毫秒），默认 700
	FireOffsetX     float64    `yaml:"fireOffsetX"`     // 子弹生成点相对实体的水平偏移，默认 0.75
	ProjectileSpeed Vec2Config `yaml:"projectileSpeed"` // 子弹速度，默认 (2, 2)
}

// MobWalkConfig 怪物前进配置
type MobWalkConfig struct {
	Priority int     `yaml:"priority"` // 仲裁优先级，默认 1
	Speed    float64 `yaml:"speed"`    // 向左移动速度（格/秒），默认 0.5
}

// BossConfig Boss 阶段机配置
type BossConfig struct {
	Priority        int        `yaml:"priority"`        // 仲裁优先级，默认 3
	Speed           Vec2Config `yaml:"speed"`           // 出场后的移动速度，默认 (1, 1)
	Mode            string     `yaml:"mode"`            // 出场后进入的阶段："ranged" 或 "melee"，默认 "ranged"
	ShotsBeforeCast int        `yaml:"shotsBeforeCast"` // 施法前的射击次数，默认 3
	ProjectileSpeed Vec2Config `yaml:"projectileSpeed"` // 子弹速度，默认 (2, 2)
}

// WaveTaskConfig 波次推进任务配置
type WaveTaskConfig struct {
	Priority int `yaml:"priority"` // 仲裁优先级，默认 10
}

// AIConfig 行为调度相关的全部调参
type AIConfig struct {
	MobAttack MobAttackConfig `yaml:"mobAttack"`
	MobWalk   MobWalkConfig   `yaml:"mobWalk"`
	Boss      BossConfig      `yaml:"boss"`
	Wave      WaveTaskConfig  `yaml:"wave"`
	// RangedMobs 会进行远程攻击的怪物类型，其余怪物只前进
	RangedMobs []string `yaml:"rangedMobs"`
}

// Boss 模式
const (
	BossModeRanged = "ranged"
	BossModeMelee  = "melee"
)

// DefaultAIConfig 返回默认调参
func DefaultAIConfig() *AIConfig {
	cfg := &AIConfig{}
	applyAIDefaults(cfg)
	return cfg
}

// LoadAIConfig 从 YAML 文件加载行为调参
func LoadAIConfig(filepath string) (*AIConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ai config file %s: %w", filepath, err)
	}

	var cfg AIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ai config YAML from %s: %w", filepath, err)
	}

	applyAIDefaults(&cfg)

	if err := validateAIConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid ai config in %s: %w", filepath, err)
	}
	return &cfg, nil
}

// applyAIDefaults 为缺失字段设置默认值
// 优先级为 0 视为未配置
func applyAIDefaults(cfg *AIConfig) {
	if cfg.MobAttack.Priority == 0 {
		cfg.MobAttack.Priority = 2
	}
	if cfg.MobAttack.DelayMs == 0 {
		cfg.MobAttack.DelayMs = 700
	}
	if cfg.MobAttack.FireOffsetX == 0 {
		cfg.MobAttack.FireOffsetX = 0.75
	}
	if cfg.MobAttack.ProjectileSpeed == (Vec2Config{}) {
		cfg.MobAttack.ProjectileSpeed = Vec2Config{X: 2, Y: 2}
	}

	if cfg.MobWalk.Priority == 0 {
		cfg.MobWalk.Priority = 1
	}
	if cfg.MobWalk.Speed == 0 {
		cfg.MobWalk.Speed = 0.5
	}

	if cfg.Boss.Priority == 0 {
		cfg.Boss.Priority = 3
	}
	if cfg.Boss.Speed == (Vec2Config{}) {
		cfg.Boss.Speed = Vec2Config{X: 1, Y: 1}
	}
	if cfg.Boss.Mode == "" {
		cfg.Boss.Mode = BossModeRanged
	}
	if cfg.Boss.ShotsBeforeCast == 0 {
		cfg.Boss.ShotsBeforeCast = 3
	}
	if cfg.Boss.ProjectileSpeed == (Vec2Config{}) {
		cfg.Boss.ProjectileSpeed = Vec2Config{X: 2, Y: 2}
	}

	if cfg.Wave.Priority == 0 {
		cfg.Wave.Priority = 10
	}

	if len(cfg.RangedMobs) == 0 {
		cfg.RangedMobs = []string{"Xeno", "Wizard", "FireWorm"}
	}
}

// validateAIConfig 校验调参合法性
func validateAIConfig(cfg *AIConfig) error {
	if cfg.MobAttack.DelayMs < 0 {
		return fmt.Errorf("mobAttack.delayMs cannot be negative, got %d", cfg.MobAttack.DelayMs)
	}
	if cfg.MobWalk.Speed < 0 {
		return fmt.Errorf("mobWalk.speed cannot be negative, got %f", cfg.MobWalk.Speed)
	}
	if cfg.Boss.Mode != BossModeRanged && cfg.Boss.Mode != BossModeMelee {
		return fmt.Errorf("boss.mode must be one of: ranged, melee, got %q", cfg.Boss.Mode)
	}
	if cfg.Boss.ShotsBeforeCast < 1 {
		return fmt.Errorf("boss.shotsBeforeCast must be at least 1, got %d", cfg.Boss.ShotsBeforeCast)
	}
	return nil
}

// IsRanged 判断怪物类型是否会远程攻击
func (c *AIConfig) IsRanged(mobType string) bool {
	for _, ranged := range c.RangedMobs {
		if ranged == mobType {
			return true
		}
	}
	return false
}
