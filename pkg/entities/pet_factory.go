// Package entities 提供实体工厂函数
// 每个工厂负责组装一类实体的全部组件
package entities

import (
	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/types"
)

// NewPetEntity 创建宠物实体
// 参数:
//   - manager: EntityManager 实例
//   - cfg: 行为参数
//   - species: 宠物种类
//   - frames: 该种类的动画帧集合（Idle 帧必须非空）
//   - x, y: 初始左上角坐标
//
// 返回: 创建的实体ID
func NewPetEntity(manager *ecs.EntityManager, cfg *config.BehaviorConfig, species types.PetSpecies, frames game.PetFrameSet, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.VelocityComponent{})

	idleFrames := frames[types.StateIdle]
	var first = idleFrames[0]

	manager.AddComponent(id, &components.SpriteComponent{
		Image:  first,
		Width:  config.PetWidth,
		Height: config.PetHeight,
		Layer:  config.LayerPet,
	})

	manager.AddComponent(id, &components.AnimationComponent{
		Frames:     idleFrames,
		FrameSpeed: cfg.FrameInterval,
		IsLooping:  true,
	})

	manager.AddComponent(id, &components.PetComponent{
		Species:    species,
		State:      types.StateIdle,
		PriorState: types.StateIdle,
	})

	manager.AddComponent(id, &components.MovementComponent{
		Mode: components.MoveWander,
	})

	manager.AddComponent(id, &components.ClickTrackerComponent{})

	manager.AddComponent(id, &components.ClickableComponent{
		Width:     config.PetWidth,
		Height:    config.PetHeight,
		IsEnabled: true,
	})

	manager.AddComponent(id, &components.DraggableComponent{})

	return id
}
