// Package utils 提供通用的几何工具函数
package utils

import "math"

// Clamp 将 v 限制在 [min, max] 区间内
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance 返回两点间的欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Normalize 将向量 (dx, dy) 归一化为单位向量
// 零向量返回 (0, 0)
func Normalize(dx, dy float64) (float64, float64) {
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return 0, 0
	}
	return dx / length, dy / length
}

// PointInRect 判断点 (px, py) 是否落在左上角为 (x, y)、尺寸 w×h 的矩形内
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
