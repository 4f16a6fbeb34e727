package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents an application scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Teardownable 是一个可选接口，场景实现它即可在应用退出时执行清理
// （保存设置、停止音频等）
type Teardownable interface {
	// Teardown 在应用退出前调用一次
	Teardown()
}
