package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按关卡ID创建场景，返回 nil 表示该关卡不可用
type SceneFactory func(levelID int) Scene

// SceneManager 管理当前活动场景
// 同一时刻只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景
// 旧场景实现 Saveable 时先保存
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.saveCurrent()
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadLevel 创建并切换到指定关卡
//
// 返回:
//   - bool: 是否切换成功
func (sm *SceneManager) LoadLevel(levelID int) bool {
	log.Printf("[SceneManager] Loading level %d", levelID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] ERROR: SceneFactory not set")
		return false
	}

	newScene := sm.sceneFactory(levelID)
	if newScene == nil {
		log.Printf("[SceneManager] ERROR: cannot create scene for level %d", levelID)
		return false
	}
	sm.SwitchTo(newScene)
	return true
}

// Shutdown 程序退出前保存当前场景
func (sm *SceneManager) Shutdown() {
	sm.saveCurrent()
}

// Update 驱动当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

func (sm *SceneManager) saveCurrent() {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		if !saveable.SaveOnExit() {
			log.Printf("[SceneManager] WARNING: failed to save scene state")
		}
	}
}
