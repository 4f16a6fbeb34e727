// Package config 定义桌宠应用的固定几何常量与可调行为参数
package config

// Pet Geometry (宠物几何配置)
const (
	// PetWidth 宠物精灵宽度（像素）
	PetWidth = 120.0

	// PetHeight 宠物精灵高度（像素）
	PetHeight = 120.0

	// FoodSize 食物精灵边长（像素）
	FoodSize = 40.0

	// PoopSize 便便精灵边长（像素）
	PoopSize = 25.0
)

// Interaction (交互配置)
const (
	// DragClickThreshold 区分点击与拖拽的光标位移阈值（像素）
	// 按下到释放的位移小于该值视为点击，否则视为拖拽
	DragClickThreshold = 5.0
)

// Rendering (渲染层级)
// RenderSystem 按层级从小到大绘制，层级相同按实体ID排序；
// 提示信息不参与层级，总是最后绘制
const (
	// LayerPoop 便便绘制层
	LayerPoop = 0
	// LayerFood 食物绘制层
	LayerFood = 1
	// LayerPet 宠物绘制层
	LayerPet = 2
)

// Toast (提示信息配置)
const (
	// ToastLifetime 提示信息的显示时长（秒）
	ToastLifetime = 3.0
)
