// Package components 定义所有实体组件
// 每个组件是纯数据结构，逻辑全部位于 systems 包
package components

// PositionComponent 存储实体左上角的屏幕坐标
type PositionComponent struct {
	X float64 // 屏幕X坐标(像素)
	Y float64 // 屏幕Y坐标(像素)
}
