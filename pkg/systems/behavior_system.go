package systems

import (
	"log"
	"math"
	"math/rand"
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/decker502/deskpet/pkg/utils"
)

// BehaviorSystem 负责宠物的自主行为决策
// 行为计时器每次触发时按概率表选择一个新行为：
// 15% 冲向屏幕边缘、15% 滑行、10% 跳跃、40% 漫步、20% 发呆
// 手动命令（控制面板）通过本系统的 Command* 方法注入，优先于自主行为
type BehaviorSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.BehaviorConfig
	rng           *rand.Rand
	screenWidth   float64
	screenHeight  float64
	timerID       ecs.EntityID
}

// NewBehaviorSystem 创建行为系统
// timerID 是自主行为计时器实体，rng 由调用方注入以便测试
func NewBehaviorSystem(em *ecs.EntityManager, cfg *config.BehaviorConfig, rng *rand.Rand, screenWidth, screenHeight float64, timerID ecs.EntityID) *BehaviorSystem {
	return &BehaviorSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
		screenWidth:   screenWidth,
		screenHeight:  screenHeight,
		timerID:       timerID,
	}
}

// Update 处理单次动画回退和自主行为切换
func (s *BehaviorSystem) Update(deltaTime float64) {
	timerReady := s.consumeTimer()

	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PetComponent{}),
		reflect.TypeOf(&components.VelocityComponent{}),
		reflect.TypeOf(&components.MovementComponent{}),
		reflect.TypeOf(&components.AnimationComponent{}),
	)

	for _, id := range entities {
		petComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
		velComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.VelocityComponent{}))
		movComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.MovementComponent{}))
		animComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.AnimationComponent{}))

		pet := petComp.(*components.PetComponent)
		vel := velComp.(*components.VelocityComponent)
		mov := movComp.(*components.MovementComponent)
		anim := animComp.(*components.AnimationComponent)

		// 单次动画(Hurt/Jump)播放完毕 → 回退到之前的移动状态
		if pet.State.IsOneShot() && anim.IsFinished {
			s.revertOneShot(pet, vel, mov)
		}

		if !timerReady {
			continue
		}
		if s.blocked(id, pet, mov) {
			continue
		}
		s.chooseRandomBehavior(id, pet, vel, mov)
	}
}

// consumeTimer 检查行为计时器并在触发后重新武装
func (s *BehaviorSystem) consumeTimer() bool {
	comp, ok := s.entityManager.GetComponent(s.timerID, reflect.TypeOf(&components.TimerComponent{}))
	if !ok {
		return false
	}
	timer := comp.(*components.TimerComponent)
	if !timer.IsReady {
		return false
	}
	timer.Restart(s.cfg.BehaviorInterval)
	return true
}

// blocked 判断当前是否允许切换自主行为
// 死亡、隐藏、拖拽、手动控制、单次动画、滑行中、有食物时都不切换
func (s *BehaviorSystem) blocked(id ecs.EntityID, pet *components.PetComponent, mov *components.MovementComponent) bool {
	if pet.IsDead() || pet.Hidden {
		return true
	}
	if pet.State.IsOneShot() {
		return true
	}
	if mov.ManualActive {
		return true
	}
	if mov.Mode == components.MoveChase || mov.Mode == components.MoveSlideToTarget {
		return true
	}
	if s.entityManager.CountEntitiesWith(reflect.TypeOf(&components.FoodComponent{})) > 0 {
		return true
	}
	if dragComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.DraggableComponent{})); ok {
		if dragComp.(*components.DraggableComponent).IsDragging {
			return true
		}
	}
	return false
}

// revertOneShot 单次动画结束后回退
// 回退到进入前的移动状态；回退目标是移动状态时重掷一个漫步方向
// 手动控制期间不能自行开始移动，总是回退到原地发呆等待下一条命令
func (s *BehaviorSystem) revertOneShot(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
	prior := pet.PriorState
	if mov.ManualActive || !prior.IsLocomotion() {
		prior = types.StateIdle
	}
	pet.State = prior
	if prior == types.StateIdle {
		vel.VX, vel.VY = 0, 0
	} else {
		speed := s.cfg.MoveSpeed
		if prior == types.StateRun {
			speed *= s.cfg.RunSpeedMultiplier
		}
		vel.VX, vel.VY = s.randomDirection(speed)
	}
}

// chooseRandomBehavior 按概率表掷一个新行为
func (s *BehaviorSystem) chooseRandomBehavior(id ecs.EntityID, pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
	roll := s.rng.Float64()
	switch {
	case roll < 0.15:
		s.startEdgeRun(id, pet, vel, mov)
	case roll < 0.30:
		s.startSlide(id, pet, vel, mov)
	case roll < 0.40:
		s.startOneShot(pet, vel, types.StateJump)
	case roll < 0.80:
		s.startWander(pet, vel, mov)
	default:
		s.startIdle(pet, vel, mov)
	}
}

// startEdgeRun 冲向随机挑选的一条屏幕边
func (s *BehaviorSystem) startEdgeRun(id ecs.EntityID, pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
	pos, sprite, ok := s.petPosition(id)
	if !ok {
		return
	}
	maxX := s.screenWidth - sprite.Width
	maxY := s.screenHeight - sprite.Height

	var tx, ty float64
	switch s.rng.Intn(4) {
	case 0:
		tx, ty = 0, pos.Y
	case 1:
		tx, ty = maxX, pos.Y
	case 2:
		tx, ty = pos.X, 0
	default:
		tx, ty = pos.X, maxY
	}

	speed := s.cfg.MoveSpeed * s.cfg.RunSpeedMultiplier
	nx, ny := utils.Normalize(tx-pos.X, ty-pos.Y)
	if nx == 0 && ny == 0 {
		// 已在目标边上，退化为发呆
		s.startIdle(pet, vel, mov)
		return
	}
	mov.Mode = components.MoveRunToTarget
	mov.TargetX, mov.TargetY = tx, ty
	vel.VX, vel.VY = nx*speed, ny*speed
	pet.State = types.StateRun
	log.Printf("[BehaviorSystem] 冲向屏幕边缘 (%.0f, %.0f)", tx, ty)
}

// startSlide 滑向随机目标：水平滑行或向下斜滑
func (s *BehaviorSystem) startSlide(id ecs.EntityID, pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
	pos, sprite, ok := s.petPosition(id)
	if !ok {
		return
	}
	maxX := s.screenWidth - sprite.Width
	maxY := s.screenHeight - sprite.Height

	dist := 150 + s.rng.Float64()*250
	dirX := 1.0
	if s.rng.Intn(2) == 0 {
		dirX = -1.0
	}
	tx := pos.X + dirX*dist
	ty := pos.Y
	if s.rng.Intn(2) == 0 {
		ty = pos.Y + dist*0.5
	}
	tx = utils.Clamp(tx, 0, maxX)
	ty = utils.Clamp(ty, 0, maxY)

	speed := s.cfg.MoveSpeed * s.cfg.SlideSpeedMultiplier
	nx, ny := utils.Normalize(tx-pos.X, ty-pos.Y)
	if nx == 0 && ny == 0 {
		s.startIdle(pet, vel, mov)
		return
	}
	mov.Mode = components.MoveSlideToTarget
	mov.TargetX, mov.TargetY = tx, ty
	vel.VX, vel.VY = nx*speed, ny*speed
	pet.State = types.StateSlide
}

// startOneShot 进入单次动画状态，记录回退目标
func (s *BehaviorSystem) startOneShot(pet *components.PetComponent, vel *components.VelocityComponent, state types.PetState) {
	if pet.State.IsLocomotion() {
		pet.PriorState = pet.State
	} else {
		pet.PriorState = types.StateIdle
	}
	pet.State = state
	vel.VX, vel.VY = 0, 0
}

// startWander 随机方向漫步，速度在基础速度附近浮动
func (s *BehaviorSystem) startWander(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
	speed := s.cfg.MoveSpeed * (0.7 + s.rng.Float64()*0.6)
	vel.VX, vel.VY = s.randomDirection(speed)
	mov.Mode = components.MoveWander
	pet.State = types.StateWalk
}

func (s *BehaviorSystem) startIdle(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
	vel.VX, vel.VY = 0, 0
	mov.Mode = components.MoveWander
	pet.State = types.StateIdle
}

// randomDirection 返回随机角度的速度向量
func (s *BehaviorSystem) randomDirection(speed float64) (float64, float64) {
	angle := s.rng.Float64() * 2 * math.Pi
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

func (s *BehaviorSystem) petPosition(id ecs.EntityID) (*components.PositionComponent, *components.SpriteComponent, bool) {
	posComp, ok1 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
	spriteComp, ok2 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.SpriteComponent{}))
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	return posComp.(*components.PositionComponent), spriteComp.(*components.SpriteComponent), true
}

// ---- 手动命令（由控制面板回调触发）----

// SetManualMode 开关手动控制
// 打开控制面板时进入手动模式并停在原地，关闭后恢复自主行为
func (s *BehaviorSystem) SetManualMode(active bool) {
	s.forEachPet(func(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
		mov.ManualActive = active
		if pet.IsDead() {
			return
		}
		vel.VX, vel.VY = 0, 0
		if !pet.State.IsOneShot() {
			pet.State = types.StateIdle
		}
		if !active {
			mov.Mode = components.MoveWander
		}
	})
}

// CommandMove 按方向移动（dx/dy 取 -1/0/1）
func (s *BehaviorSystem) CommandMove(dx, dy float64) {
	s.forEachPet(func(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
		if pet.IsDead() || pet.State.IsOneShot() {
			return
		}
		nx, ny := utils.Normalize(dx, dy)
		vel.VX = nx * s.cfg.MoveSpeed
		vel.VY = ny * s.cfg.MoveSpeed
		if nx == 0 && ny == 0 {
			pet.State = types.StateIdle
		} else {
			pet.State = types.StateWalk
		}
	})
}

// CommandStop 停止移动
func (s *BehaviorSystem) CommandStop() {
	s.forEachPet(func(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
		if pet.IsDead() || pet.State.IsOneShot() {
			return
		}
		vel.VX, vel.VY = 0, 0
		pet.State = types.StateIdle
	})
}

// CommandJump 触发一次跳跃
func (s *BehaviorSystem) CommandJump() {
	s.forEachPet(func(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
		if pet.IsDead() || pet.State.IsOneShot() {
			return
		}
		s.startOneShot(pet, vel, types.StateJump)
	})
}

// CommandSlide 触发一次滑行（手动模式下朝当前朝向滑固定距离）
func (s *BehaviorSystem) CommandSlide() {
	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PetComponent{}),
		reflect.TypeOf(&components.VelocityComponent{}),
		reflect.TypeOf(&components.MovementComponent{}),
	)
	for _, id := range entities {
		petComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
		velComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.VelocityComponent{}))
		movComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.MovementComponent{}))
		pet := petComp.(*components.PetComponent)
		if pet.IsDead() || pet.State.IsOneShot() || pet.State == types.StateSlide {
			continue
		}
		s.startSlide(id, pet, velComp.(*components.VelocityComponent), movComp.(*components.MovementComponent))
	}
}

func (s *BehaviorSystem) forEachPet(fn func(*components.PetComponent, *components.VelocityComponent, *components.MovementComponent)) {
	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PetComponent{}),
		reflect.TypeOf(&components.VelocityComponent{}),
		reflect.TypeOf(&components.MovementComponent{}),
	)
	for _, id := range entities {
		petComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
		velComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.VelocityComponent{}))
		movComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.MovementComponent{}))
		fn(petComp.(*components.PetComponent), velComp.(*components.VelocityComponent), movComp.(*components.MovementComponent))
	}
}
