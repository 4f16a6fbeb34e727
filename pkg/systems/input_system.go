package systems

import (
	"math"
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/decker502/deskpet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem 处理场景实体的鼠标输入
// 左键按下时按 宠物 > 食物 > 便便 的顺序命中检测：
// 宠物和食物可拖拽，便便点击即清除；
// 释放时光标位移小于阈值视为点击，转交 InteractionSystem 判定
// 右键菜单和控制面板的输入由各自模块处理
type InputSystem struct {
	entityManager *ecs.EntityManager
	interaction   *InteractionSystem
	screenWidth   float64
	screenHeight  float64

	// uiCapture 返回光标是否落在 UI（菜单/控制面板）上，
	// 是则本系统忽略该位置的场景交互
	uiCapture func(x, y float64) bool

	draggingEntity ecs.EntityID
}

// NewInputSystem 创建输入系统
func NewInputSystem(em *ecs.EntityManager, interaction *InteractionSystem, screenWidth, screenHeight float64, uiCapture func(x, y float64) bool) *InputSystem {
	if uiCapture == nil {
		uiCapture = func(x, y float64) bool { return false }
	}
	return &InputSystem{
		entityManager: em,
		interaction:   interaction,
		screenWidth:   screenWidth,
		screenHeight:  screenHeight,
		uiCapture:     uiCapture,
	}
}

// Update 处理本 tick 的鼠标输入
func (s *InputSystem) Update(deltaTime float64) {
	cx, cy := ebiten.CursorPosition()
	mx, my := float64(cx), float64(cy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !s.uiCapture(mx, my) {
		s.handlePress(mx, my)
	}
	if s.draggingEntity != ecs.InvalidEntity && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.handleDrag(mx, my)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.handleRelease(mx, my)
	}
}

func (s *InputSystem) handlePress(mx, my float64) {
	// 宠物优先
	if id, ok := s.hitTest(mx, my, reflect.TypeOf(&components.PetComponent{})); ok {
		s.startDrag(id, mx, my)
		s.interruptPet(id)
		return
	}
	if id, ok := s.hitTest(mx, my, reflect.TypeOf(&components.FoodComponent{})); ok {
		s.startDrag(id, mx, my)
		return
	}
	// 便便点击即清理
	if id, ok := s.hitTest(mx, my, reflect.TypeOf(&components.PoopComponent{})); ok {
		s.entityManager.DestroyEntity(id)
	}
}

// interruptPet 按住宠物时停在原地（死亡状态不动）
func (s *InputSystem) interruptPet(id ecs.EntityID) {
	petComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
	if !ok {
		return
	}
	pet := petComp.(*components.PetComponent)
	if pet.IsDead() {
		return
	}
	if velComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.VelocityComponent{})); ok {
		vel := velComp.(*components.VelocityComponent)
		vel.VX, vel.VY = 0, 0
	}
	if movComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.MovementComponent{})); ok {
		mov := movComp.(*components.MovementComponent)
		if mov.Mode == components.MoveRunToTarget || mov.Mode == components.MoveSlideToTarget {
			mov.Mode = components.MoveWander
		}
	}
	if !pet.State.IsOneShot() {
		pet.State = types.StateIdle
	}
}

func (s *InputSystem) startDrag(id ecs.EntityID, mx, my float64) {
	dragComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.DraggableComponent{}))
	if !ok {
		return
	}
	posComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
	pos := posComp.(*components.PositionComponent)

	drag := dragComp.(*components.DraggableComponent)
	drag.IsDragging = true
	drag.OffsetX = mx - pos.X
	drag.OffsetY = my - pos.Y
	drag.PressX = mx
	drag.PressY = my
	s.draggingEntity = id
}

func (s *InputSystem) handleDrag(mx, my float64) {
	id := s.draggingEntity
	dragComp, ok1 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.DraggableComponent{}))
	posComp, ok2 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
	spriteComp, ok3 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.SpriteComponent{}))
	if !ok1 || !ok2 || !ok3 {
		s.draggingEntity = ecs.InvalidEntity
		return
	}
	drag := dragComp.(*components.DraggableComponent)
	pos := posComp.(*components.PositionComponent)
	sprite := spriteComp.(*components.SpriteComponent)

	pos.X = utils.Clamp(mx-drag.OffsetX, 0, s.screenWidth-sprite.Width)
	pos.Y = utils.Clamp(my-drag.OffsetY, 0, s.screenHeight-sprite.Height)
}

func (s *InputSystem) handleRelease(mx, my float64) {
	id := s.draggingEntity
	s.draggingEntity = ecs.InvalidEntity
	if id == ecs.InvalidEntity {
		return
	}
	dragComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.DraggableComponent{}))
	if !ok {
		return
	}
	drag := dragComp.(*components.DraggableComponent)
	drag.IsDragging = false

	// 位移小于阈值视为一次点击
	moved := math.Hypot(mx-drag.PressX, my-drag.PressY)
	if moved >= config.DragClickThreshold {
		return
	}
	if s.entityManager.HasComponent(id, reflect.TypeOf(&components.PetComponent{})) {
		s.interaction.HandlePetClick(id)
	}
}

// hitTest 返回命中光标的第一个带指定标记组件的实体
// 多个重叠时取ID最大者（后创建的在上层）
func (s *InputSystem) hitTest(mx, my float64, marker reflect.Type) (ecs.EntityID, bool) {
	entities := s.entityManager.GetEntitiesWith(
		marker,
		reflect.TypeOf(&components.PositionComponent{}),
		reflect.TypeOf(&components.ClickableComponent{}),
	)
	for i := len(entities) - 1; i >= 0; i-- {
		id := entities[i]
		clickComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.ClickableComponent{}))
		clickable := clickComp.(*components.ClickableComponent)
		if !clickable.IsEnabled {
			continue
		}
		// 隐藏的宠物不响应
		if petComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{})); ok {
			if petComp.(*components.PetComponent).Hidden {
				continue
			}
		}
		posComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
		pos := posComp.(*components.PositionComponent)
		if utils.PointInRect(mx, my, pos.X, pos.Y, clickable.Width, clickable.Height) {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}
