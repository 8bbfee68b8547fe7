package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可独立运行的场景（如一局关卡）
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口，场景被替换或程序退出时保存进度
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}
