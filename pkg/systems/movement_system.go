package systems

import (
	"log"
	"math"
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/decker502/deskpet/pkg/utils"
)

// MovementSystem 负责宠物的移动执行
// 每个 tick 按优先级选择移动来源：死亡 > 拖拽 > 手动命令 > 食物追逐 >
// 冲边/滑行目标 > 随机漫步，然后推进位置并约束在屏幕范围内
type MovementSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.BehaviorConfig
	screenWidth   float64
	screenHeight  float64
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, cfg *config.BehaviorConfig, screenWidth, screenHeight float64) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		cfg:           cfg,
		screenWidth:   screenWidth,
		screenHeight:  screenHeight,
	}
}

// Update 推进所有宠物的位置
func (s *MovementSystem) Update(deltaTime float64) {
	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PetComponent{}),
		reflect.TypeOf(&components.PositionComponent{}),
		reflect.TypeOf(&components.VelocityComponent{}),
		reflect.TypeOf(&components.MovementComponent{}),
		reflect.TypeOf(&components.SpriteComponent{}),
	)

	for _, id := range entities {
		s.updatePet(id, deltaTime)
	}
}

func (s *MovementSystem) updatePet(id ecs.EntityID, deltaTime float64) {
	petComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
	posComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
	velComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.VelocityComponent{}))
	movComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.MovementComponent{}))
	spriteComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.SpriteComponent{}))

	pet := petComp.(*components.PetComponent)
	pos := posComp.(*components.PositionComponent)
	vel := velComp.(*components.VelocityComponent)
	mov := movComp.(*components.MovementComponent)
	sprite := spriteComp.(*components.SpriteComponent)

	// 死亡后不再移动
	if pet.IsDead() {
		vel.VX, vel.VY = 0, 0
		return
	}

	// 拖拽期间位置由 InputSystem 直接跟随光标
	if dragComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.DraggableComponent{})); ok {
		if dragComp.(*components.DraggableComponent).IsDragging {
			vel.VX, vel.VY = 0, 0
			return
		}
	}

	// 单次动画(Hurt/Jump)播放期间原地停留
	if pet.State.IsOneShot() {
		vel.VX, vel.VY = 0, 0
		return
	}

	maxX := s.screenWidth - sprite.Width
	maxY := s.screenHeight - sprite.Height

	// 手动命令优先于一切自主移动
	if mov.ManualActive {
		mov.TargetFood = ecs.InvalidEntity
		s.advance(pos, vel, deltaTime, maxX, maxY)
		s.updateFacing(sprite, vel)
		return
	}

	// 有食物时无条件追逐最近的一份
	if foodID, ok := s.nearestFood(pos, sprite); ok {
		mov.Mode = components.MoveChase
		mov.TargetFood = foodID
		s.chaseFood(id, pet, pos, vel, mov, sprite, foodID, deltaTime)
		s.updateFacing(sprite, vel)
		return
	}
	if mov.Mode == components.MoveChase {
		// 追逐中食物被清空：回到漫步
		mov.Mode = components.MoveWander
		mov.TargetFood = ecs.InvalidEntity
		vel.VX, vel.VY = 0, 0
		pet.State = types.StateIdle
	}

	switch mov.Mode {
	case components.MoveRunToTarget, components.MoveSlideToTarget:
		s.moveToTarget(pet, pos, vel, mov, deltaTime, maxX, maxY)
	default:
		s.wander(pos, vel, deltaTime, maxX, maxY)
	}
	s.updateFacing(sprite, vel)
}

// advance 沿当前速度移动并硬约束在屏幕内（不反弹）
func (s *MovementSystem) advance(pos *components.PositionComponent, vel *components.VelocityComponent, deltaTime, maxX, maxY float64) {
	pos.X = utils.Clamp(pos.X+vel.VX*deltaTime, 0, maxX)
	pos.Y = utils.Clamp(pos.Y+vel.VY*deltaTime, 0, maxY)
}

// wander 漫步移动：碰到屏幕边缘时反弹
func (s *MovementSystem) wander(pos *components.PositionComponent, vel *components.VelocityComponent, deltaTime, maxX, maxY float64) {
	pos.X += vel.VX * deltaTime
	pos.Y += vel.VY * deltaTime

	if pos.X <= 0 || pos.X >= maxX {
		vel.VX = -vel.VX
		pos.X = utils.Clamp(pos.X, 0, maxX)
	}
	if pos.Y <= 0 || pos.Y >= maxY {
		vel.VY = -vel.VY
		pos.Y = utils.Clamp(pos.Y, 0, maxY)
	}
}

// moveToTarget 朝固定目标点移动（冲边、滑行），到达或撞边后停下
func (s *MovementSystem) moveToTarget(pet *components.PetComponent, pos *components.PositionComponent, vel *components.VelocityComponent, mov *components.MovementComponent, deltaTime, maxX, maxY float64) {
	dx := mov.TargetX - pos.X
	dy := mov.TargetY - pos.Y
	dist := math.Hypot(dx, dy)
	step := math.Hypot(vel.VX, vel.VY) * deltaTime

	if step >= dist {
		pos.X = utils.Clamp(mov.TargetX, 0, maxX)
		pos.Y = utils.Clamp(mov.TargetY, 0, maxY)
		s.finishTargetMove(pet, vel, mov)
		return
	}

	pos.X += vel.VX * deltaTime
	pos.Y += vel.VY * deltaTime
	if pos.X <= 0 || pos.X >= maxX || pos.Y <= 0 || pos.Y >= maxY {
		pos.X = utils.Clamp(pos.X, 0, maxX)
		pos.Y = utils.Clamp(pos.Y, 0, maxY)
		s.finishTargetMove(pet, vel, mov)
	}
}

func (s *MovementSystem) finishTargetMove(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent) {
	vel.VX, vel.VY = 0, 0
	mov.Mode = components.MoveWander
	pet.State = types.StateIdle
}

// chaseFood 朝食物中心直线移动，进入进食距离后吃掉食物
func (s *MovementSystem) chaseFood(id ecs.EntityID, pet *components.PetComponent, pos *components.PositionComponent, vel *components.VelocityComponent, mov *components.MovementComponent, sprite *components.SpriteComponent, foodID ecs.EntityID, deltaTime float64) {
	foodPosComp, _ := s.entityManager.GetComponent(foodID, reflect.TypeOf(&components.PositionComponent{}))
	foodSpriteComp, _ := s.entityManager.GetComponent(foodID, reflect.TypeOf(&components.SpriteComponent{}))
	foodPos := foodPosComp.(*components.PositionComponent)
	foodSprite := foodSpriteComp.(*components.SpriteComponent)

	petCX := pos.X + sprite.Width/2
	petCY := pos.Y + sprite.Height/2
	foodCX := foodPos.X + foodSprite.Width/2
	foodCY := foodPos.Y + foodSprite.Height/2

	dist := utils.Distance(petCX, petCY, foodCX, foodCY)
	if dist <= s.cfg.EatDistance() {
		s.eat(pet, vel, mov, foodID)
		return
	}

	pet.State = types.StateRun
	speed := s.cfg.MoveSpeed * s.cfg.RunSpeedMultiplier
	step := speed * deltaTime
	nx, ny := utils.Normalize(foodCX-petCX, foodCY-petCY)
	vel.VX = nx * speed
	vel.VY = ny * speed

	if step >= dist {
		// 一步跨过目标时直接对齐，避免来回抖动
		pos.X = foodCX - sprite.Width/2
		pos.Y = foodCY - sprite.Height/2
		s.eat(pet, vel, mov, foodID)
		return
	}
	pos.X += vel.VX * deltaTime
	pos.Y += vel.VY * deltaTime
}

func (s *MovementSystem) eat(pet *components.PetComponent, vel *components.VelocityComponent, mov *components.MovementComponent, foodID ecs.EntityID) {
	s.entityManager.DestroyEntity(foodID)
	vel.VX, vel.VY = 0, 0
	mov.Mode = components.MoveWander
	mov.TargetFood = ecs.InvalidEntity
	pet.State = types.StateIdle
	log.Printf("[MovementSystem] 宠物吃掉了食物 %d", foodID)
}

// nearestFood 返回距离宠物中心最近的食物实体
func (s *MovementSystem) nearestFood(pos *components.PositionComponent, sprite *components.SpriteComponent) (ecs.EntityID, bool) {
	foods := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.FoodComponent{}),
		reflect.TypeOf(&components.PositionComponent{}),
		reflect.TypeOf(&components.SpriteComponent{}),
	)
	if len(foods) == 0 {
		return ecs.InvalidEntity, false
	}

	petCX := pos.X + sprite.Width/2
	petCY := pos.Y + sprite.Height/2

	best := ecs.InvalidEntity
	bestDist := math.MaxFloat64
	for _, foodID := range foods {
		// 正在被拖拽的食物不参与追逐
		if dragComp, ok := s.entityManager.GetComponent(foodID, reflect.TypeOf(&components.DraggableComponent{})); ok {
			if dragComp.(*components.DraggableComponent).IsDragging {
				continue
			}
		}
		foodPosComp, _ := s.entityManager.GetComponent(foodID, reflect.TypeOf(&components.PositionComponent{}))
		foodSpriteComp, _ := s.entityManager.GetComponent(foodID, reflect.TypeOf(&components.SpriteComponent{}))
		foodPos := foodPosComp.(*components.PositionComponent)
		foodSprite := foodSpriteComp.(*components.SpriteComponent)

		dist := utils.Distance(petCX, petCY, foodPos.X+foodSprite.Width/2, foodPos.Y+foodSprite.Height/2)
		if dist < bestDist {
			bestDist = dist
			best = foodID
		}
	}
	if best == ecs.InvalidEntity {
		return ecs.InvalidEntity, false
	}
	return best, true
}

// updateFacing 根据水平速度更新朝向，速度为 0 时保持原朝向
func (s *MovementSystem) updateFacing(sprite *components.SpriteComponent, vel *components.VelocityComponent) {
	if vel.VX > 0 {
		sprite.FlipX = false
	} else if vel.VX < 0 {
		sprite.FlipX = true
	}
}
