package entities

import (
	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// NewFoodEntity 创建食物实体
// 食物可点击（用于拖拽判定）、可拖拽，会吸引宠物
func NewFoodEntity(manager *ecs.EntityManager, img *ebiten.Image, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.SpriteComponent{
		Image:  img,
		Width:  config.FoodSize,
		Height: config.FoodSize,
		Layer:  config.LayerFood,
	})
	manager.AddComponent(id, &components.ClickableComponent{
		Width:     config.FoodSize,
		Height:    config.FoodSize,
		IsEnabled: true,
	})
	manager.AddComponent(id, &components.DraggableComponent{})
	manager.AddComponent(id, &components.FoodComponent{})

	return id
}

// NewPoopEntity 创建便便实体
// 便便可点击，点击即清除
func NewPoopEntity(manager *ecs.EntityManager, img *ebiten.Image, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.SpriteComponent{
		Image:  img,
		Width:  config.PoopSize,
		Height: config.PoopSize,
		Layer:  config.LayerPoop,
	})
	manager.AddComponent(id, &components.ClickableComponent{
		Width:     config.PoopSize,
		Height:    config.PoopSize,
		IsEnabled: true,
	})
	manager.AddComponent(id, &components.PoopComponent{})

	return id
}
