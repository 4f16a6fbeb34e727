package components

// FoodComponent 标记实体为食物
// 食物会吸引宠物：MovementSystem 朝最近的食物移动，靠近到进食距离后销毁它
type FoodComponent struct{}

// PoopComponent 标记实体为便便
// 便便与宠物状态机无交互，点击即清除
type PoopComponent struct{}
