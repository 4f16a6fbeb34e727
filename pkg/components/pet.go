package components

import "github.com/decker502/deskpet/pkg/types"

// PetComponent 存储宠物的核心状态
// 状态转换规则见 BehaviorSystem，优先级：死亡 > 手动命令 > 食物追逐 > 自主随机行为
type PetComponent struct {
	Species types.PetSpecies // 宠物种类
	State   types.PetState   // 当前行为状态

	// PriorState 进入单次动画(Hurt/Jump)前的移动状态
	// 单次动画播放完毕后回退到该状态
	PriorState types.PetState

	// Hidden 宠物是否隐藏（隐藏时不绘制、模拟暂停）
	Hidden bool
}

// IsDead 返回宠物是否处于死亡终态
func (p *PetComponent) IsDead() bool {
	return p.State == types.StateDead
}
