package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/game"
	"github.com/decker502/towerdefense/pkg/scenes"
	"github.com/decker502/towerdefense/pkg/types"
)

func newTestRules() *config.WaveRules {
	rules := &config.WaveRules{
		BaseHealth:      10,
		BossBaseHealth:  20,
		BossInterval:    5,
		MobsPerWaveBase: 3,
		MinUnitsPerType: 2,
	}
	for id := 0; id < 2; id++ {
		rules.Levels = append(rules.Levels, config.LevelPreset{
			ID: id, Difficulty: 1, Waves: 2,
			Roster: []types.MobType{types.MobXeno, types.MobSkeleton},
			Boss:   types.BossWater,
		})
	}
	return rules
}

func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	cfg := config.DefaultSimConfig()
	cfg.Sim.Lanes = 3
	cfg.Sim.DamagePerTick = 5
	cfg.Sim.MaxTicks = 20000

	s := &Simulator{
		cfg:          cfg,
		rules:        newTestRules(),
		aiConfig:     config.DefaultAIConfig(),
		progress:     game.NewProgressManager(nil),
		sceneManager: game.NewSceneManager(),
		seed:         3,
	}
	s.sceneManager.SetSceneFactory(s.createScene)
	if !s.sceneManager.LoadLevel(0) {
		t.Fatal("Expected level 0 to load")
	}
	return s
}

// TestSimulator_AdvancesThroughLevels 测试关卡完成后进入下一关，最后一关结束后停止
func TestSimulator_AdvancesThroughLevels(t *testing.T) {
	s := newTestSimulator(t)

	seen := map[int]bool{}
	for !s.done {
		if battle, ok := s.sceneManager.GetCurrentScene().(*scenes.BattleScene); ok {
			seen[battle.LevelID()] = true
		}
		s.step(1.0 / 60)
	}

	if !seen[0] || !seen[1] {
		t.Errorf("Expected both levels to be played, got %v", seen)
	}
	if s.ticks >= s.cfg.Sim.MaxTicks {
		t.Errorf("Expected levels to finish before max ticks, ran %d", s.ticks)
	}
	battle := s.sceneManager.GetCurrentScene().(*scenes.BattleScene)
	if battle.LevelID() != 1 || !battle.IsComplete() {
		t.Errorf("Expected last level complete, got level %d complete=%v", battle.LevelID(), battle.IsComplete())
	}
}

// TestSimulator_MaxTicks 测试达到最大帧数后停止
func TestSimulator_MaxTicks(t *testing.T) {
	s := newTestSimulator(t)
	s.cfg.Sim.MaxTicks = 5

	for i := 0; i < 10; i++ {
		s.step(1.0 / 60)
	}
	if !s.done || s.ticks != 5 {
		t.Errorf("Expected stop after 5 ticks, got done=%v ticks=%d", s.done, s.ticks)
	}
}

// TestSimulator_CreateScene 测试未知关卡和恢复点
func TestSimulator_CreateScene(t *testing.T) {
	s := newTestSimulator(t)

	if scene := s.createScene(9); scene != nil {
		t.Errorf("Expected nil scene for unknown level, got %T", scene)
	}

	s.resume = &game.LevelProgress{
		LevelID: 1, Seed: 11, RulesFingerprint: s.rules.Fingerprint(),
		WaveIndex: 1, RemainingEnemies: 2,
	}
	scene := s.createScene(1)
	battle, ok := scene.(*scenes.BattleScene)
	if !ok {
		t.Fatalf("Expected battle scene, got %T", scene)
	}
	snap := battle.Snapshot()
	if snap.Seed != 11 || snap.WaveIndex != 1 || snap.RemainingEnemies != 2 {
		t.Errorf("Expected resumed snapshot, got %+v", snap)
	}
	if s.resume != nil {
		t.Error("Expected resume point to be consumed")
	}
}

// TestSimulator_ResumeRequiresSameRules 测试规则变化后的存档从第一波重新开始
func TestSimulator_ResumeRequiresSameRules(t *testing.T) {
	s := newTestSimulator(t)

	tests := []struct {
		name     string
		progress *game.LevelProgress
	}{
		{"rules_changed", &game.LevelProgress{LevelID: 1, Seed: 11, RulesFingerprint: "stale", WaveIndex: 1, RemainingEnemies: 2}},
		{"no_fingerprint", &game.LevelProgress{LevelID: 1, Seed: 11, WaveIndex: 1, RemainingEnemies: 2}},
		{"remaining_exceeds_wave", &game.LevelProgress{LevelID: 1, Seed: 11, RulesFingerprint: s.rules.Fingerprint(), WaveIndex: 1, RemainingEnemies: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.resume = tt.progress
			battle, ok := s.createScene(1).(*scenes.BattleScene)
			if !ok {
				t.Fatal("Expected a fresh battle scene")
			}
			snap := battle.Snapshot()
			if snap.WaveIndex != 0 {
				t.Errorf("Expected fresh start at wave 0, got %+v", snap)
			}
			if snap.RulesFingerprint != s.rules.Fingerprint() {
				t.Errorf("Expected snapshot to carry current fingerprint, got %q", snap.RulesFingerprint)
			}
		})
	}
}

// TestSimulator_Reload 测试热加载行为调参和波次规则
func TestSimulator_Reload(t *testing.T) {
	s := newTestSimulator(t)
	dir := t.TempDir()

	aiPath := filepath.Join(dir, "ai_config.yaml")
	rulesPath := filepath.Join(dir, "wave_rules.yaml")
	s.cfg.Data.AIConfig = aiPath
	s.cfg.Data.WaveRules = rulesPath

	if err := os.WriteFile(aiPath, []byte("mobAttack:\n  delayMs: 250\n"), 0644); err != nil {
		t.Fatalf("Failed to write ai config: %v", err)
	}
	s.reload(aiPath)
	if s.aiConfig.MobAttack.DelayMs != 250 {
		t.Errorf("Expected delayMs 250 after reload, got %d", s.aiConfig.MobAttack.DelayMs)
	}

	// 非法文件保留原配置
	if err := os.WriteFile(aiPath, []byte("boss:\n  mode: flying\n"), 0644); err != nil {
		t.Fatalf("Failed to write ai config: %v", err)
	}
	s.reload(aiPath)
	if s.aiConfig.MobAttack.DelayMs != 250 {
		t.Errorf("Expected previous config kept, got delayMs %d", s.aiConfig.MobAttack.DelayMs)
	}

	if err := os.WriteFile(rulesPath, []byte("baseHealth: 99\n"), 0644); err != nil {
		t.Fatalf("Failed to write wave rules: %v", err)
	}
	before := s.rules.Fingerprint()
	s.reload(rulesPath)
	if s.rules.BaseHealth != 99 {
		t.Errorf("Expected baseHealth 99 after reload, got %d", s.rules.BaseHealth)
	}
	if s.rules.Fingerprint() == before {
		t.Error("Expected fingerprint to change with the rules")
	}
}
