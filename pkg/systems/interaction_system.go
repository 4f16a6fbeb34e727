package systems

import (
	"log"
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/types"
)

// InteractionSystem 负责点击交互的阈值判定
// 点击带时间戳进入滑动衰减窗口，窗口内计数越过受伤阈值触发一次 Hurt，
// 越过死亡阈值进入 Dead 终态并停止追踪，直到 Revive
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.BehaviorConfig
	gameTime      float64
}

// NewInteractionSystem 创建交互系统
func NewInteractionSystem(em *ecs.EntityManager, cfg *config.BehaviorConfig) *InteractionSystem {
	return &InteractionSystem{entityManager: em, cfg: cfg}
}

// GameTime 返回当前游戏时间（秒）
func (s *InteractionSystem) GameTime() float64 {
	return s.gameTime
}

// Update 推进游戏时间并衰减过期点击
func (s *InteractionSystem) Update(deltaTime float64) {
	s.gameTime += deltaTime

	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PetComponent{}),
		reflect.TypeOf(&components.ClickTrackerComponent{}),
	)
	for _, id := range entities {
		trackerComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.ClickTrackerComponent{}))
		tracker := trackerComp.(*components.ClickTrackerComponent)
		if tracker.Halted {
			continue
		}
		s.prune(tracker)
		// 计数衰减到受伤阈值以下后重新武装 Hurt
		if tracker.HurtFired && len(tracker.Timestamps) <= s.cfg.HurtClickThreshold {
			tracker.HurtFired = false
		}
	}
}

// prune 剔除衰减窗口之外的点击
func (s *InteractionSystem) prune(tracker *components.ClickTrackerComponent) {
	cutoff := s.gameTime - s.cfg.ClickDecayWindow
	idx := 0
	for idx < len(tracker.Timestamps) && tracker.Timestamps[idx] < cutoff {
		idx++
	}
	if idx > 0 {
		tracker.Timestamps = tracker.Timestamps[idx:]
	}
}

// HandlePetClick 记录一次宠物点击并判定阈值
// 由 InputSystem 在确认点击（而非拖拽）后调用
func (s *InteractionSystem) HandlePetClick(id ecs.EntityID) {
	petComp, ok1 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
	trackerComp, ok2 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.ClickTrackerComponent{}))
	if !ok1 || !ok2 {
		return
	}
	pet := petComp.(*components.PetComponent)
	tracker := trackerComp.(*components.ClickTrackerComponent)

	// 死亡后忽略一切点击，直到 Revive
	if tracker.Halted || pet.IsDead() {
		return
	}

	tracker.Timestamps = append(tracker.Timestamps, s.gameTime)
	s.prune(tracker)
	count := len(tracker.Timestamps)

	if count > s.cfg.DeadClickThreshold {
		s.kill(id, pet, tracker)
		return
	}
	if count > s.cfg.HurtClickThreshold && !tracker.HurtFired {
		tracker.HurtFired = true
		s.hurt(id, pet)
	}
}

func (s *InteractionSystem) hurt(id ecs.EntityID, pet *components.PetComponent) {
	if pet.State.IsLocomotion() {
		pet.PriorState = pet.State
	} else {
		pet.PriorState = types.StateIdle
	}
	pet.State = types.StateHurt
	s.stopMotion(id)
	log.Printf("[InteractionSystem] 宠物受伤了")
}

func (s *InteractionSystem) kill(id ecs.EntityID, pet *components.PetComponent, tracker *components.ClickTrackerComponent) {
	pet.State = types.StateDead
	pet.PriorState = types.StateIdle
	tracker.Halted = true
	s.stopMotion(id)
	log.Printf("[InteractionSystem] 宠物死亡，等待复活")
}

// Revive 复活宠物：清空点击历史，回到 Idle 漫步
func (s *InteractionSystem) Revive(id ecs.EntityID) {
	petComp, ok1 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
	trackerComp, ok2 := s.entityManager.GetComponent(id, reflect.TypeOf(&components.ClickTrackerComponent{}))
	if !ok1 || !ok2 {
		return
	}
	pet := petComp.(*components.PetComponent)
	if !pet.IsDead() {
		return
	}
	tracker := trackerComp.(*components.ClickTrackerComponent)
	tracker.Reset()
	pet.State = types.StateIdle
	pet.PriorState = types.StateIdle
	s.stopMotion(id)
	log.Printf("[InteractionSystem] 宠物已复活")
}

// stopMotion 清零速度并退出目标移动/追逐
func (s *InteractionSystem) stopMotion(id ecs.EntityID) {
	if velComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.VelocityComponent{})); ok {
		vel := velComp.(*components.VelocityComponent)
		vel.VX, vel.VY = 0, 0
	}
	if movComp, ok := s.entityManager.GetComponent(id, reflect.TypeOf(&components.MovementComponent{})); ok {
		mov := movComp.(*components.MovementComponent)
		mov.Mode = components.MoveWander
		mov.TargetFood = ecs.InvalidEntity
	}
}
