package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/decker502/towerdefense/pkg/ai/tasks"
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/decker502/towerdefense/pkg/game"
	"github.com/decker502/towerdefense/pkg/physics"
	"github.com/decker502/towerdefense/pkg/systems"
	"github.com/decker502/towerdefense/pkg/waves"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 绘制参数（像素）
const (
	CellSize     = 48
	HeaderHeight = 64
	MarginX      = CellSize
)

// 默认战场参数
const (
	DefaultFieldWidth  = 10.0
	DefaultTowerColumn = 1.0
)

var (
	colorLane       = color.RGBA{R: 60, G: 90, B: 60, A: 255}
	colorLaneAlt    = color.RGBA{R: 70, G: 100, B: 70, A: 255}
	colorTower      = color.RGBA{R: 80, G: 160, B: 220, A: 255}
	colorMob        = color.RGBA{R: 200, G: 70, B: 60, A: 255}
	colorRanged     = color.RGBA{R: 230, G: 140, B: 40, A: 255}
	colorBoss       = color.RGBA{R: 160, G: 60, B: 200, A: 255}
	colorProjectile = color.RGBA{R: 250, G: 230, B: 80, A: 255}
)

// BattleConfig 一局战斗的参数
type BattleConfig struct {
	Level         *waves.LevelWaves     // 已生成的关卡波次
	Seed          int64                 // 生成波次所用的种子，同时驱动行分配和 Boss 随机
	Fingerprint   string                // 生成波次所用规则的指纹，写入存档
	Lanes         int                   // 行数
	FieldWidth    float64               // 战场宽度（格），默认 10
	TowerColumn   float64               // 防御塔所在列，默认 1
	DamagePerTick float64               // 每座塔每帧伤害
	AI            *config.AIConfig      // 行为调参，nil 时使用默认值
	Progress      *game.ProgressManager // 进度存档，可为 nil
	Slot          string                // 存档槽
	Resume        *game.LevelProgress   // 恢复点，可为 nil
	Verbose       bool
}

// BattleStats 战斗统计
type BattleStats struct {
	Ticks       int
	Wave        int
	NumWaves    int
	Remaining   int
	Spawned     int
	Killed      int
	Leaked      int
	Projectiles int
	Hits        int
	Completed   bool
}

// BattleScene 一局关卡战斗
//
// 组装实体管理器、行为调度和各个系统。关卡实体上的 WaveTask 按敌人计数推进波次，
// 每波开始和场景退出时把进度写入存档。
type BattleScene struct {
	entityManager *ecs.EntityManager
	clock         *game.GameClock
	counter       *game.EnemyCounter
	raycaster     *physics.LaneRaycaster

	mobFactory  *entities.MobFactory
	projectiles *entities.ProjectileFactory
	spawner     *systems.CohortSpawnSystem

	aiSystem         *systems.AITaskSystem
	projectileSystem *systems.ProjectileSystem
	movementSystem   *systems.MovementSystem
	towerSystem      *systems.TowerSystem
	animationSystem  *systems.AnimationSystem
	deathSystem      *systems.EnemyDeathSystem
	lifetimeSystem   *systems.LifetimeSystem

	level       *waves.LevelWaves
	waveTask    *tasks.WaveTask
	seed        int64
	fingerprint string
	lanes       int
	width       float64

	progress *game.ProgressManager
	slot     string
	// pending 第一帧之前的进度（尚未开始第一波或尚未应用恢复点）
	pending *game.LevelProgress

	ticks int
}

// NewBattleScene 创建战斗场景
func NewBattleScene(cfg BattleConfig) (*BattleScene, error) {
	if cfg.Level == nil {
		return nil, errors.New("battle scene requires a level")
	}
	if cfg.Lanes < 1 {
		return nil, fmt.Errorf("lanes must be at least 1, got %d", cfg.Lanes)
	}
	if cfg.FieldWidth <= 0 {
		cfg.FieldWidth = DefaultFieldWidth
	}
	if cfg.TowerColumn <= 0 {
		cfg.TowerColumn = DefaultTowerColumn
	}
	if cfg.AI == nil {
		cfg.AI = config.DefaultAIConfig()
	}

	em := ecs.NewEntityManager()
	s := &BattleScene{
		entityManager: em,
		clock:         game.NewGameClock(),
		counter:       game.NewEnemyCounter(),
		raycaster:     physics.NewLaneRaycaster(),
		level:         cfg.Level,
		seed:          cfg.Seed,
		fingerprint:   cfg.Fingerprint,
		lanes:         cfg.Lanes,
		width:         cfg.FieldWidth,
		progress:      cfg.Progress,
		slot:          cfg.Slot,
	}
	em.OnDestroy(s.raycaster.Remove)

	rng := rand.New(rand.NewSource(cfg.Seed))
	s.projectiles = entities.NewProjectileFactory(em)
	s.mobFactory = entities.NewMobFactory(em, cfg.AI, s.clock, s.raycaster, s.projectiles, rng)

	allocator := systems.NewLaneAllocator(em, rng)
	allocator.InitializeLanes(cfg.Lanes, 1.0)
	s.spawner = systems.NewCohortSpawnSystem(s.mobFactory, allocator, cfg.FieldWidth)
	s.spawner.BindLevel(cfg.Level)

	for lane := 0; lane < cfg.Lanes; lane++ {
		entities.NewTowerEntity(em, s.raycaster, lane, cfg.TowerColumn, cfg.DamagePerTick)
	}

	s.aiSystem = systems.NewAITaskSystem(em)
	s.aiSystem.SetVerbose(cfg.Verbose)
	s.projectileSystem = systems.NewProjectileSystem(em, s.raycaster, cfg.FieldWidth)
	s.movementSystem = systems.NewMovementSystem(em)
	s.towerSystem = systems.NewTowerSystem(em)
	s.animationSystem = systems.NewAnimationSystem(em)
	s.deathSystem = systems.NewEnemyDeathSystem(em, s.counter, 0)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)

	_, s.waveTask = entities.NewLevelEntity(em, cfg.Level, cfg.Seed, cfg.AI.Wave.Priority, s.counter, s.spawner)

	if cfg.Resume != nil {
		if err := cfg.Resume.Validate(cfg.Level.NumWaves()); err != nil {
			return nil, fmt.Errorf("invalid resume point: %w", err)
		}
		if err := s.waveTask.Resume(cfg.Resume.WaveIndex, cfg.Resume.RemainingEnemies); err != nil {
			return nil, fmt.Errorf("failed to resume level %d: %w", cfg.Level.LevelID(), err)
		}
		s.pending = s.snapshot(cfg.Resume.WaveIndex, cfg.Resume.RemainingEnemies)
	} else {
		first, _ := cfg.Level.Wave(0)
		s.pending = s.snapshot(0, first.Size())
	}

	s.waveTask.OnWaveStarted(func(index int, spec waves.WaveSpec) {
		s.save(s.snapshot(index, spec.Size()))
	})
	s.waveTask.OnLevelComplete(func() {
		s.save(s.Snapshot())
	})

	log.Printf("[BattleScene] Level %d ready: %d waves, %d lanes, seed %d",
		cfg.Level.LevelID(), cfg.Level.NumWaves(), cfg.Lanes, cfg.Seed)
	return s, nil
}

// Update 推进一帧
// 系统顺序：行为 → 子弹检测 → 移动 → 防御塔 → 动画 → 死亡 → 生命周期 → 清理
func (s *BattleScene) Update(deltaTime float64) {
	s.clock.AdvanceSeconds(deltaTime)

	s.aiSystem.Update(deltaTime)
	s.pending = nil
	s.projectileSystem.Update(deltaTime)
	s.movementSystem.Update(deltaTime)
	s.towerSystem.Update(deltaTime)
	s.animationSystem.Update(deltaTime)
	s.deathSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
	s.ticks++
}

// Draw 绘制战场和状态文字
func (s *BattleScene) Draw(screen *ebiten.Image) {
	for lane := 0; lane < s.lanes; lane++ {
		c := colorLane
		if lane%2 == 1 {
			c = colorLaneAlt
		}
		vector.DrawFilledRect(screen, MarginX, float32(HeaderHeight+lane*CellSize),
			float32(s.width*CellSize), CellSize, c, false)
	}

	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.SizeComponent](em) {
		c, ok := s.entityColor(id)
		if !ok {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		size, _ := ecs.GetComponent[*components.SizeComponent](em, id)
		x, y := s.toScreen(pos.X, pos.Y)
		vector.DrawFilledRect(screen, x, y, float32(size.Width*CellSize), float32(size.Height*CellSize), c, false)
	}

	st := s.Stats()
	status := fmt.Sprintf("Level %d  Wave %d/%d  Remaining %d\nKilled %d  Leaked %d  Projectiles %d  Hits %d  TPS %.0f",
		s.level.LevelID(), min(st.Wave+1, st.NumWaves), st.NumWaves, st.Remaining,
		st.Killed, st.Leaked, st.Projectiles, st.Hits, ebiten.ActualTPS())
	if st.Completed {
		status += "\nLEVEL COMPLETE"
	}
	ebitenutil.DebugPrint(screen, status)
}

// Layout 返回绘制整个战场需要的逻辑尺寸
func (s *BattleScene) Layout() (int, int) {
	return int(s.width*CellSize) + 2*MarginX, HeaderHeight + s.lanes*CellSize + CellSize/2
}

// SaveOnExit 保存当前进度
func (s *BattleScene) SaveOnExit() bool {
	return s.save(s.Snapshot())
}

// Snapshot 当前进度快照
func (s *BattleScene) Snapshot() *game.LevelProgress {
	if s.pending != nil {
		p := *s.pending
		return &p
	}
	return s.snapshot(s.waveTask.CurrentWaveIndex(), s.counter.Get())
}

// SetAIConfig 热加载行为调参，之后生成的怪物使用新参数
func (s *BattleScene) SetAIConfig(cfg *config.AIConfig) {
	s.mobFactory.SetConfig(cfg)
}

// OnLevelComplete 注册关卡完成回调
func (s *BattleScene) OnLevelComplete(fn func()) {
	s.waveTask.OnLevelComplete(fn)
}

// IsComplete 关卡是否已完成
func (s *BattleScene) IsComplete() bool {
	return s.waveTask.IsLevelComplete()
}

// LevelID 关卡ID
func (s *BattleScene) LevelID() int {
	return s.level.LevelID()
}

// EntityManager 实体管理器（测试和调试用）
func (s *BattleScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Stats 战斗统计
func (s *BattleScene) Stats() BattleStats {
	return BattleStats{
		Ticks:       s.ticks,
		Wave:        s.waveTask.CurrentWaveIndex(),
		NumWaves:    s.level.NumWaves(),
		Remaining:   s.counter.Get(),
		Spawned:     s.spawner.Spawned(),
		Killed:      s.deathSystem.Killed(),
		Leaked:      s.deathSystem.Leaked(),
		Projectiles: s.projectiles.Spawned(),
		Hits:        s.projectileSystem.Hits(),
		Completed:   s.waveTask.IsLevelComplete(),
	}
}

func (s *BattleScene) snapshot(waveIndex, remaining int) *game.LevelProgress {
	return &game.LevelProgress{
		LevelID:          s.level.LevelID(),
		Seed:             s.seed,
		RulesFingerprint: s.fingerprint,
		WaveIndex:        waveIndex,
		RemainingEnemies: remaining,
		Completed:        s.waveTask.IsLevelComplete(),
	}
}

func (s *BattleScene) save(p *game.LevelProgress) bool {
	if s.progress == nil || !s.progress.Enabled() {
		return true
	}
	if err := s.progress.Save(s.slot, p); err != nil {
		log.Printf("[BattleScene] WARNING: failed to save progress: %v", err)
		return false
	}
	return true
}

func (s *BattleScene) entityColor(id ecs.EntityID) (color.Color, bool) {
	em := s.entityManager
	if ecs.HasComponent[*components.TowerComponent](em, id) {
		return colorTower, true
	}
	if ecs.HasComponent[*components.ProjectileComponent](em, id) {
		return colorProjectile, true
	}
	if ecs.HasComponent[*components.BossComponent](em, id) {
		return colorBoss, true
	}
	if comp, ok := ecs.GetComponent[*components.AITaskComponent](em, id); ok && comp.Scheduler != nil && len(comp.Scheduler.Tasks()) > 1 {
		return colorRanged, true
	}
	if ecs.HasComponent[*components.MobComponent](em, id) {
		return colorMob, true
	}
	return nil, false
}

// toScreen 世界坐标转屏幕坐标，行 0 在最上方
func (s *BattleScene) toScreen(x, y float64) (float32, float32) {
	return float32(MarginX + x*CellSize), float32(HeaderHeight + y*CellSize)
}
