package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAIConfig(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(tempDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}
		return path
	}

	t.Run("部分配置使用默认值补全", func(t *testing.T) {
		path := writeConfig(t, "partial.yaml", `
mobAttack:
  delayMs: 500
boss:
  mode: melee
rangedMobs: [Skeleton]
`)
		cfg, err := LoadAIConfig(path)
		if err != nil {
			t.Fatalf("LoadAIConfig failed: %v", err)
		}

		if cfg.MobAttack.DelayMs != 500 {
			t.Errorf("Expected delayMs 500, got %d", cfg.MobAttack.DelayMs)
		}
		if cfg.MobAttack.Priority != 2 || cfg.MobWalk.Priority != 1 || cfg.Boss.Priority != 3 || cfg.Wave.Priority != 10 {
			t.Errorf("Unexpected default priorities: %+v", cfg)
		}
		if cfg.Boss.Mode != BossModeMelee {
			t.Errorf("Expected melee mode, got %s", cfg.Boss.Mode)
		}
		if cfg.Boss.ShotsBeforeCast != 3 {
			t.Errorf("Expected default shotsBeforeCast 3, got %d", cfg.Boss.ShotsBeforeCast)
		}
		if !cfg.IsRanged("Skeleton") || cfg.IsRanged("Xeno") {
			t.Errorf("Expected only Skeleton to be ranged, got %v", cfg.RangedMobs)
		}
	})

	t.Run("非法 Boss 模式", func(t *testing.T) {
		path := writeConfig(t, "bad_mode.yaml", "boss:\n  mode: flying\n")
		_, err := LoadAIConfig(path)
		if err == nil || !strings.Contains(err.Error(), "boss.mode") {
			t.Errorf("Expected boss.mode error, got %v", err)
		}
	})

	t.Run("负的射击间隔", func(t *testing.T) {
		path := writeConfig(t, "bad_delay.yaml", "mobAttack:\n  delayMs: -5\n")
		_, err := LoadAIConfig(path)
		if err == nil || !strings.Contains(err.Error(), "delayMs") {
			t.Errorf("Expected delayMs error, got %v", err)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := LoadAIConfig(filepath.Join(tempDir, "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestDefaultAIConfig(t *testing.T) {
	cfg := DefaultAIConfig()

	if cfg.MobAttack.DelayMs != 700 {
		t.Errorf("Expected delayMs 700, got %d", cfg.MobAttack.DelayMs)
	}
	if cfg.MobAttack.FireOffsetX != 0.75 {
		t.Errorf("Expected fireOffsetX 0.75, got %f", cfg.MobAttack.FireOffsetX)
	}
	if cfg.MobAttack.ProjectileSpeed != (Vec2Config{X: 2, Y: 2}) {
		t.Errorf("Expected projectile speed (2, 2), got %+v", cfg.MobAttack.ProjectileSpeed)
	}
	if cfg.Boss.Mode != BossModeRanged {
		t.Errorf("Expected ranged boss mode, got %s", cfg.Boss.Mode)
	}
	for _, mob := range []string{"Xeno", "Wizard", "FireWorm"} {
		if !cfg.IsRanged(mob) {
			t.Errorf("Expected %s to be ranged by default", mob)
		}
	}
	if err := validateAIConfig(cfg); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}
