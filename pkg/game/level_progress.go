package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LevelProgress 关卡进度快照
// 在每波开始和关卡结束时写入，启动时可据此恢复到中断的波次
type LevelProgress struct {
	LevelID          int       `yaml:"levelId"`          // 关卡ID
	Seed             int64     `yaml:"seed"`             // 生成波次所用的随机种子
	RulesFingerprint string    `yaml:"rulesFingerprint"` // 生成波次时的规则指纹，规则变化后存档失效
	WaveIndex        int       `yaml:"waveIndex"`        // 当前（未完成的）波次索引，0-based
	RemainingEnemies int       `yaml:"remainingEnemies"` // 当前波剩余敌人数
	Completed        bool      `yaml:"completed"`        // 关卡是否已完成
	SavedAt          time.Time `yaml:"savedAt"`          // 保存时间
}

// MatchesRules 存档是否由同一份波次规则生成
// 同一种子在不同规则下会生成不同的波次，指纹不一致（包括旧存档没有指纹）时不能恢复
func (p *LevelProgress) MatchesRules(fingerprint string) bool {
	return p.RulesFingerprint != "" && p.RulesFingerprint == fingerprint
}

// Validate 检查快照是否可用于恢复
// 参数:
//   - numWaves: 关卡波次总数
func (p *LevelProgress) Validate(numWaves int) error {
	if p.WaveIndex < 0 || p.WaveIndex > numWaves {
		return fmt.Errorf("wave index %d out of range [0, %d]", p.WaveIndex, numWaves)
	}
	if p.RemainingEnemies < 0 {
		return fmt.Errorf("remaining enemies cannot be negative, got %d", p.RemainingEnemies)
	}
	return nil
}

// ErrNoProgress 存档槽中没有进度
var ErrNoProgress = errors.New("no saved level progress")

// progressObject gdata 对象名，属性名为存档槽
const progressObject = "progress"

// ProgressManager 关卡进度存档管理器
// gdataManager 为 nil 时进入降级模式：保存静默忽略，加载返回 ErrNoProgress
type ProgressManager struct {
	gdataManager *gdata.Manager
}

// NewProgressManager 创建进度管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	return &ProgressManager{gdataManager: gdataManager}
}

// OpenProgressManager 打开 gdata 存储并创建进度管理器
// gdata 不可用时返回降级模式的管理器，并记录警告
func OpenProgressManager(appName string) *ProgressManager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[ProgressManager] Warning: gdata unavailable: %v (progress will not be saved)", err)
		return NewProgressManager(nil)
	}
	return NewProgressManager(m)
}

// Enabled 是否可以持久化
func (pm *ProgressManager) Enabled() bool {
	return pm != nil && pm.gdataManager != nil
}

// Save 保存进度到指定存档槽
func (pm *ProgressManager) Save(slot string, progress *LevelProgress) error {
	if !pm.Enabled() {
		return nil
	}
	if progress == nil {
		return fmt.Errorf("progress is nil")
	}

	progress.SavedAt = time.Now()
	data, err := yaml.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(progressObject, slot, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	log.Printf("[ProgressManager] Saved slot %q: level %d, wave %d, remaining %d",
		slot, progress.LevelID, progress.WaveIndex, progress.RemainingEnemies)
	return nil
}

// Load 读取指定存档槽
//
// 返回：
//   - *LevelProgress: 进度快照
//   - error: 没有存档时返回 ErrNoProgress，反序列化失败返回包装后的错误
func (pm *ProgressManager) Load(slot string) (*LevelProgress, error) {
	if !pm.Exists(slot) {
		return nil, ErrNoProgress
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	var progress LevelProgress
	if err := yaml.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	return &progress, nil
}

// Exists 存档槽是否有进度
func (pm *ProgressManager) Exists(slot string) bool {
	if !pm.Enabled() {
		return false
	}
	return pm.gdataManager.ObjectPropExists(progressObject, slot)
}

// Delete 删除存档槽
func (pm *ProgressManager) Delete(slot string) error {
	if !pm.Exists(slot) {
		return nil
	}
	if err := pm.gdataManager.DeleteObjectProp(progressObject, slot); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}
