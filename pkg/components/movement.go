package components

import "github.com/decker502/deskpet/pkg/ecs"

// MovementMode 定义 MovementSystem 本 tick 采用的移动模式
type MovementMode int

const (
	// MoveWander 随机漫步：沿当前速度移动，碰到屏幕边缘反弹
	MoveWander MovementMode = iota
	// MoveChase 追逐食物：朝最近的食物直线移动
	MoveChase
	// MoveRunToTarget 冲向目标点（随机冲边行为），到达或撞边后结束
	MoveRunToTarget
	// MoveSlideToTarget 滑向目标点，到达后结束
	MoveSlideToTarget
)

// MovementComponent 存储宠物的移动计划状态
type MovementComponent struct {
	Mode MovementMode // 当前移动模式

	// TargetX/TargetY 目标点坐标（仅 MoveRunToTarget / MoveSlideToTarget 使用）
	TargetX float64
	TargetY float64

	// TargetFood 正在追逐的食物实体（仅 MoveChase 使用）
	TargetFood ecs.EntityID

	// ManualActive 手动控制是否生效（控制面板打开并按住方向键/按钮）
	ManualActive bool
}
