package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/embedded"
	"github.com/decker502/towerdefense/pkg/game"
	"github.com/decker502/towerdefense/pkg/scenes"
	"github.com/decker502/towerdefense/pkg/systems"
	"github.com/decker502/towerdefense/pkg/waves"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configPath = flag.String("config", "data/wave_sim.toml", "模拟配置文件路径")
	levelFlag  = flag.Int("level", -1, "覆盖配置中的关卡ID")
	seedFlag   = flag.Int64("seed", 0, "覆盖配置中的随机种子")
	headless   = flag.Bool("headless", false, "无窗口运行")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

// Simulator 波次模拟器
// 按关卡依次创建战斗场景，关卡完成后自动进入下一关
type Simulator struct {
	cfg          *config.SimConfig
	rules        *config.WaveRules
	aiConfig     *config.AIConfig
	progress     *game.ProgressManager
	sceneManager *game.SceneManager
	watcher      *config.RulesWatcher

	seed      int64
	resume    *game.LevelProgress
	nextLevel int
	completed bool
	done      bool
	ticks     int
}

// NewSimulator 加载规则并创建第一关
func NewSimulator(cfg *config.SimConfig) (*Simulator, error) {
	rules, err := config.LoadWaveRules(cfg.Data.WaveRules)
	if err != nil {
		return nil, err
	}
	aiConfig, err := config.LoadAIConfig(cfg.Data.AIConfig)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:          cfg,
		rules:        rules,
		aiConfig:     aiConfig,
		progress:     game.OpenProgressManager(cfg.Save.AppName),
		sceneManager: game.NewSceneManager(),
		seed:         cfg.Sim.Seed,
	}
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}

	if cfg.Save.Resume {
		s.resume = s.loadResumePoint(cfg.Sim.Level)
	}

	s.sceneManager.SetSceneFactory(s.createScene)
	if !s.sceneManager.LoadLevel(cfg.Sim.Level) {
		return nil, fmt.Errorf("failed to start level %d", cfg.Sim.Level)
	}

	if cfg.Data.Watch {
		s.startWatcher()
	}
	return s, nil
}

// loadResumePoint 读取存档，只有同一关卡且未完成时才恢复
func (s *Simulator) loadResumePoint(levelID int) *game.LevelProgress {
	p, err := s.progress.Load(s.cfg.Save.Slot)
	if err != nil {
		if !errors.Is(err, game.ErrNoProgress) {
			log.Printf("[Simulator] Warning: failed to load progress: %v", err)
		}
		return nil
	}
	if p.LevelID != levelID || p.Completed {
		log.Printf("[Simulator] Saved progress (level %d, completed=%v) does not apply to level %d",
			p.LevelID, p.Completed, levelID)
		return nil
	}
	if !p.MatchesRules(s.rules.Fingerprint()) {
		log.Printf("[Simulator] Saved progress for level %d was generated from different wave rules, starting fresh",
			p.LevelID)
		return nil
	}
	log.Printf("[Simulator] Resuming level %d at wave %d with %d enemies left",
		p.LevelID, p.WaveIndex+1, p.RemainingEnemies)
	return p
}

// createScene 场景工厂：生成关卡波次并组装战斗场景
func (s *Simulator) createScene(levelID int) game.Scene {
	if _, ok := s.rules.Level(levelID); !ok {
		return nil
	}

	fingerprint := s.rules.Fingerprint()
	seed := s.seed
	resume := s.resume
	if resume != nil && resume.LevelID == levelID && resume.MatchesRules(fingerprint) {
		seed = resume.Seed
	} else {
		resume = nil
	}
	s.resume = nil

	generator := waves.NewGenerator(s.rules, rand.New(rand.NewSource(seed)))
	level, err := generator.BuildLevel(levelID)
	if err != nil {
		log.Printf("[Simulator] ERROR: failed to build level %d: %v", levelID, err)
		return nil
	}

	battleConfig := scenes.BattleConfig{
		Level:         level,
		Seed:          seed,
		Fingerprint:   fingerprint,
		Lanes:         s.cfg.Sim.Lanes,
		DamagePerTick: s.cfg.Sim.DamagePerTick,
		AI:            s.aiConfig,
		Progress:      s.progress,
		Slot:          s.cfg.Save.Slot,
		Resume:        resume,
		Verbose:       s.cfg.Debug.Verbose,
	}
	scene, err := scenes.NewBattleScene(battleConfig)
	if err != nil && resume != nil {
		// 存档与生成的波次不一致，从第一波重新开始
		log.Printf("[Simulator] Warning: discarding resume point for level %d: %v", levelID, err)
		battleConfig.Resume = nil
		scene, err = scenes.NewBattleScene(battleConfig)
	}
	if err != nil {
		log.Printf("[Simulator] ERROR: failed to create battle for level %d: %v", levelID, err)
		return nil
	}

	s.completed = false
	s.nextLevel = levelID + 1
	scene.OnLevelComplete(func() {
		s.completed = true
	})
	return scene
}

func (s *Simulator) startWatcher() {
	dirs := map[string]bool{}
	for _, path := range []string{s.cfg.Data.WaveRules, s.cfg.Data.AIConfig} {
		dir, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			continue
		}
		dirs[dir] = true
	}

	list := make([]string, 0, len(dirs))
	for dir := range dirs {
		list = append(list, dir)
	}

	watcher, err := config.NewRulesWatcher(list...)
	if err != nil {
		log.Printf("[Simulator] Warning: hot reload disabled: %v", err)
		return
	}
	s.watcher = watcher
	log.Printf("[Simulator] Watching %v for rule changes", list)
}

// reload 规则文件变化时重新加载
// 行为调参立即作用于当前关卡之后生成的实体；波次规则从下一关开始生效
func (s *Simulator) reload(path string) {
	switch filepath.Base(path) {
	case filepath.Base(s.cfg.Data.AIConfig):
		cfg, err := config.LoadAIConfig(path)
		if err != nil {
			log.Printf("[Simulator] Keeping previous ai config: %v", err)
			return
		}
		s.aiConfig = cfg
		if battle, ok := s.sceneManager.GetCurrentScene().(*scenes.BattleScene); ok {
			battle.SetAIConfig(cfg)
		}
		log.Printf("[Simulator] Reloaded ai config from %s", path)

	case filepath.Base(s.cfg.Data.WaveRules):
		rules, err := config.LoadWaveRules(path)
		if err != nil {
			log.Printf("[Simulator] Keeping previous wave rules: %v", err)
			return
		}
		s.rules = rules
		log.Printf("[Simulator] Reloaded wave rules from %s (applies from next level)", path)
	}
}

// step 推进一帧
func (s *Simulator) step(deltaTime float64) {
	if s.done {
		return
	}

	if s.watcher != nil {
		for {
			path, ok := s.watcher.Poll()
			if !ok {
				break
			}
			s.reload(path)
		}
	}

	s.sceneManager.Update(deltaTime)
	s.ticks++

	if battle, ok := s.sceneManager.GetCurrentScene().(*scenes.BattleScene); ok && s.ticks%systems.LogOutputFrameInterval == 0 {
		stats := battle.Stats()
		log.Printf("[Simulator] tick %d: level %d wave %d/%d, remaining %d, killed %d, leaked %d, hits %d",
			s.ticks, battle.LevelID(), stats.Wave+1, stats.NumWaves, stats.Remaining, stats.Killed, stats.Leaked, stats.Hits)
	}

	if s.completed {
		log.Printf("[Simulator] Level complete, advancing to level %d", s.nextLevel)
		if !s.sceneManager.LoadLevel(s.nextLevel) {
			log.Printf("[Simulator] No more levels, stopping")
			s.done = true
		}
	}

	if s.cfg.Sim.MaxTicks > 0 && s.ticks >= s.cfg.Sim.MaxTicks {
		log.Printf("[Simulator] Reached max ticks (%d)", s.cfg.Sim.MaxTicks)
		s.done = true
	}
}

// Shutdown 保存当前进度并释放监听器
func (s *Simulator) Shutdown() {
	s.sceneManager.Shutdown()
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Printf("[Simulator] Warning: failed to close watcher: %v", err)
		}
	}
}

// RunHeadless 以固定帧间隔运行，直到结束或收到退出信号
func (s *Simulator) RunHeadless(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Sim.TickRate)
	defer ticker.Stop()

	dt := s.cfg.Sim.TickRate.Seconds()
	for !s.done {
		select {
		case <-ctx.Done():
			log.Printf("[Simulator] Interrupted at tick %d", s.ticks)
			return
		case <-ticker.C:
			s.step(dt)
		}
	}
}

// Update 实现 ebiten.Game
func (s *Simulator) Update() error {
	s.step(1.0 / float64(ebiten.TPS()))
	if s.done {
		return ebiten.Termination
	}
	return nil
}

// Draw 实现 ebiten.Game
func (s *Simulator) Draw(screen *ebiten.Image) {
	s.sceneManager.Draw(screen)
}

// Layout 实现 ebiten.Game，逻辑尺寸由当前战场决定
func (s *Simulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	if battle, ok := s.sceneManager.GetCurrentScene().(*scenes.BattleScene); ok {
		return battle.Layout()
	}
	return 800, 600
}

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	cfg, err := config.LoadSimConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load sim config: %v", err)
	}
	if *levelFlag >= 0 {
		cfg.Sim.Level = *levelFlag
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}
	if *headless {
		cfg.Sim.Headless = true
	}
	if *verbose {
		cfg.Debug.Verbose = true
	}

	sim, err := NewSimulator(cfg)
	if err != nil {
		log.Fatalf("Failed to start simulator: %v", err)
	}
	defer sim.Shutdown()

	if cfg.Sim.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		sim.RunHeadless(ctx)
		return
	}

	width, height := sim.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Tower Defense - 波次模拟器")
	ebiten.SetTPS(cfg.Sim.TPS)

	if err := ebiten.RunGame(sim); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("Game exited with error: %v", err)
	}
}
