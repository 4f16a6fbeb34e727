package components

// VelocityComponent 存储实体的当前速度
type VelocityComponent struct {
	VX float64 // X方向速度(像素/秒)
	VY float64 // Y方向速度(像素/秒)
}
