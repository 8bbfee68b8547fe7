package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/decker502/towerdefense/pkg/embedded"
)

// SimConfig 波次模拟器运行配置（TOML）
type SimConfig struct {
	Sim   SimSection   `toml:"sim"`
	Data  DataSection  `toml:"data"`
	Save  SaveSection  `toml:"save"`
	Debug DebugSection `toml:"debug"`
}

// SimSection 模拟参数
type SimSection struct {
	Level         int           `toml:"level"`           // 关卡ID
	TickRate      time.Duration `toml:"tick_rate"`       // 无窗口模式下每帧间隔
	TPS           int           `toml:"tps"`             // 窗口模式下 ebiten 每秒更新次数
	Seed          int64         `toml:"seed"`            // 随机种子，0 表示使用当前时间
	DamagePerTick float64       `toml:"damage_per_tick"` // 每座防御塔每帧造成的伤害（血量点）
	MaxTicks      int           `toml:"max_ticks"`       // 最大帧数，0 表示不限
	Headless      bool          `toml:"headless"`        // 是否无窗口运行
	Lanes         int           `toml:"lanes"`           // 可用行数
}

// DataSection 数据文件路径
type DataSection struct {
	WaveRules string `toml:"wave_rules"`
	AIConfig  string `toml:"ai_config"`
	Watch     bool   `toml:"watch"` // 是否监听规则文件变化并热加载
}

// SaveSection 存档配置
type SaveSection struct {
	AppName string `toml:"app_name"` // gdata 应用名
	Slot    string `toml:"slot"`     // 存档槽名称
	Resume  bool   `toml:"resume"`   // 启动时是否从存档恢复
}

// DebugSection 调试选项
type DebugSection struct {
	Verbose bool `toml:"verbose"`
}

// DefaultSimConfig 返回默认模拟配置
func DefaultSimConfig() *SimConfig {
	cfg := &SimConfig{}
	applySimDefaults(cfg)
	return cfg
}

// LoadSimConfig 从 TOML 文件加载模拟配置
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sim config %s: %w", path, err)
	}

	cfg := &SimConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sim config TOML from %s: %w", path, err)
	}

	applySimDefaults(cfg)

	if err := validateSimConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid sim config in %s: %w", path, err)
	}
	return cfg, nil
}

func applySimDefaults(cfg *SimConfig) {
	if cfg.Sim.TickRate == 0 {
		cfg.Sim.TickRate = 16 * time.Millisecond
	}
	if cfg.Sim.TPS == 0 {
		cfg.Sim.TPS = 60
	}
	if cfg.Sim.DamagePerTick == 0 {
		cfg.Sim.DamagePerTick = 2
	}
	if cfg.Sim.Lanes == 0 {
		cfg.Sim.Lanes = 6
	}
	if cfg.Data.WaveRules == "" {
		cfg.Data.WaveRules = "data/wave_rules.yaml"
	}
	if cfg.Data.AIConfig == "" {
		cfg.Data.AIConfig = "data/ai_config.yaml"
	}
	if cfg.Save.AppName == "" {
		cfg.Save.AppName = "towerdefense"
	}
	if cfg.Save.Slot == "" {
		cfg.Save.Slot = "default"
	}
}

func validateSimConfig(cfg *SimConfig) error {
	if cfg.Sim.Level < 0 {
		return fmt.Errorf("sim.level cannot be negative, got %d", cfg.Sim.Level)
	}
	if cfg.Sim.TickRate < 0 {
		return fmt.Errorf("sim.tick_rate cannot be negative, got %s", cfg.Sim.TickRate)
	}
	if cfg.Sim.DamagePerTick < 0 {
		return fmt.Errorf("sim.damage_per_tick cannot be negative, got %f", cfg.Sim.DamagePerTick)
	}
	if cfg.Sim.MaxTicks < 0 {
		return fmt.Errorf("sim.max_ticks cannot be negative, got %d", cfg.Sim.MaxTicks)
	}
	if cfg.Sim.Lanes < 1 {
		return fmt.Errorf("sim.lanes must be at least 1, got %d", cfg.Sim.Lanes)
	}
	return nil
}
