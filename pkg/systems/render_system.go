package systems

import (
	"image/color"
	"reflect"
	"sort"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 负责所有实体的绘制
// 带 Sprite 的实体按层级排序绘制（便便 < 食物 < 宠物），
// 提示信息单独绘制在最上层
type RenderSystem struct {
	entityManager *ecs.EntityManager
	fontFace      *text.GoTextFace
}

// NewRenderSystem 创建渲染系统
// fontFace 可为 nil，此时提示信息只画底框不画文字
func NewRenderSystem(em *ecs.EntityManager, fontFace *text.GoTextFace) *RenderSystem {
	return &RenderSystem{entityManager: em, fontFace: fontFace}
}

type drawEntry struct {
	id    ecs.EntityID
	layer int
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PositionComponent{}),
		reflect.TypeOf(&components.SpriteComponent{}),
	)

	entries := make([]drawEntry, 0, len(entities))
	for _, id := range entities {
		spriteComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.SpriteComponent{}))
		entries = append(entries, drawEntry{id: id, layer: spriteComp.(*components.SpriteComponent).Layer})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].layer < entries[j].layer })

	for _, e := range entries {
		s.drawSprite(screen, e.id)
	}
	s.drawToasts(screen)
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, id ecs.EntityID) {
	posComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
	spriteComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.SpriteComponent{}))
	pos := posComp.(*components.PositionComponent)
	sprite := spriteComp.(*components.SpriteComponent)

	if sprite.Image == nil {
		return
	}
	if petComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{})); ok {
		if petComp.(*components.PetComponent).Hidden {
			return
		}
	}

	bounds := sprite.Image.Bounds()
	sw := float64(bounds.Dx())
	sh := float64(bounds.Dy())
	if sw == 0 || sh == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sprite.Width/sw, sprite.Height/sh)
	if sprite.FlipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(sprite.Width, 0)
	}
	op.GeoM.Translate(pos.X, pos.Y)
	screen.DrawImage(sprite.Image, op)
}

// drawToasts 绘制屏幕提示信息（半透明底框 + 文字）
func (s *RenderSystem) drawToasts(screen *ebiten.Image) {
	toasts := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PositionComponent{}),
		reflect.TypeOf(&components.ToastComponent{}),
	)
	for _, id := range toasts {
		posComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
		toastComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.ToastComponent{}))
		pos := posComp.(*components.PositionComponent)
		toast := toastComp.(*components.ToastComponent)

		width := 220.0
		height := 34.0
		if s.fontFace != nil {
			tw, _ := text.Measure(toast.Text, s.fontFace, 0)
			if tw+24 > width {
				width = tw + 24
			}
		}
		vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(width), float32(height), color.RGBA{0, 0, 0, 180}, true)

		if s.fontFace == nil {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(pos.X+12, pos.Y+7)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, toast.Text, s.fontFace, op)
	}
}
