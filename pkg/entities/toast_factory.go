package entities

import (
	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
)

// NewToastEntity 创建屏幕提示信息实体（替代系统托盘气泡）
// 若干秒后由 LifetimeSystem 自动清除
func NewToastEntity(manager *ecs.EntityManager, text string, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.ToastComponent{Text: text})
	manager.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: config.ToastLifetime,
	})

	return id
}

// NewTimerEntity 创建独立的计时器实体
// 用于自主行为切换、便便生成、叫声间隔等周期性触发
func NewTimerEntity(manager *ecs.EntityManager, name string, targetTime float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.TimerComponent{
		Name:       name,
		TargetTime: targetTime,
	})

	return id
}
