package components

// DraggableComponent 标记实体可以被鼠标拖拽
// 拖拽期间位置直接跟随光标，绕过所有自主移动逻辑
type DraggableComponent struct {
	IsDragging bool    // 当前是否处于拖拽中
	OffsetX    float64 // 按下时光标相对实体左上角的X偏移
	OffsetY    float64 // 按下时光标相对实体左上角的Y偏移
	PressX     float64 // 按下时的光标屏幕X坐标（用于区分点击与拖拽）
	PressY     float64 // 按下时的光标屏幕Y坐标
}
