// Package types 定义共享的基础类型
package types

// PetState 定义宠物的行为状态
// 状态机是封闭枚举：所有状态转换都通过 BehaviorSystem 的显式转换表完成，
// 不允许字符串形式的状态
type PetState int

const (
	// StateIdle 待机状态（默认状态，循环动画）
	StateIdle PetState = iota
	// StateWalk 行走状态（随机漫步或手动移动，循环动画）
	StateWalk
	// StateRun 奔跑状态（冲向屏幕边缘或追逐食物，循环动画）
	StateRun
	// StateJump 跳跃状态（单次动画，播放完毕后回到之前的移动状态）
	StateJump
	// StateSlide 滑行状态（滑向随机目标点，循环动画）
	StateSlide
	// StateHurt 受伤状态（点击次数超过受伤阈值时触发，单次动画）
	StateHurt
	// StateDead 死亡状态（终态，只能通过 Revive 命令复活）
	StateDead
)

// petStateNameMap 状态到资源目录名的映射
// 资源文件命名形如 "Idle (1).png"，首字母大写
var petStateNameMap = map[PetState]string{
	StateIdle:  "Idle",
	StateWalk:  "Walk",
	StateRun:   "Run",
	StateJump:  "Jump",
	StateSlide: "Slide",
	StateHurt:  "Hurt",
	StateDead:  "Dead",
}

// AllPetStates 所有宠物状态的列表（用于资源加载遍历）
var AllPetStates = []PetState{
	StateIdle, StateWalk, StateRun, StateJump, StateSlide, StateHurt, StateDead,
}

// String 返回状态的资源目录名表示
func (s PetState) String() string {
	if name, ok := petStateNameMap[s]; ok {
		return name
	}
	return "Idle"
}

// IsLooping 返回该状态的动画是否循环播放
// Idle/Walk/Run/Slide 循环；Jump/Hurt/Dead 为单次动画，停在最后一帧
func (s PetState) IsLooping() bool {
	switch s {
	case StateJump, StateHurt, StateDead:
		return false
	default:
		return true
	}
}

// IsOneShot 返回该状态是否为播放一次后回退的单次动画
// Dead 同样停在最后一帧，但它是终态，不在此列
func (s PetState) IsOneShot() bool {
	return s == StateJump || s == StateHurt
}

// IsLocomotion 返回该状态是否为可持续的移动状态
// 单次动画结束后只会回退到这类状态
func (s PetState) IsLocomotion() bool {
	switch s {
	case StateIdle, StateWalk, StateRun:
		return true
	default:
		return false
	}
}
