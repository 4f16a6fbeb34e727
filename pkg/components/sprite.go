package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
type SpriteComponent struct {
	Image  *ebiten.Image // 当前帧图像，可为 nil（降级渲染：跳过绘制）
	Width  float64       // 绘制宽度(像素)，图像按此尺寸缩放
	Height float64       // 绘制高度(像素)
	FlipX  bool          // 是否水平翻转（宠物向左移动时为 true）
	Layer  int           // 绘制层级，小的先画
}
