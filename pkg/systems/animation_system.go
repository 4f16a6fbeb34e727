package systems

import (
	"log"
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationSystem 负责更新所有动画组件
// 它推进帧计时、处理循环与单次播放，并在宠物状态变化时切换帧序列
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	frameSet      game.PetFrameSet
	lastStates    map[ecs.EntityID]types.PetState
}

// NewAnimationSystem 创建动画系统
func NewAnimationSystem(em *ecs.EntityManager, frameSet game.PetFrameSet) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
		frameSet:      frameSet,
		lastStates:    make(map[ecs.EntityID]types.PetState),
	}
}

// SetFrameSet 替换帧序列集合（切换宠物种类时调用）
// 清空状态缓存，下个 tick 会按当前状态重新加载帧序列
func (s *AnimationSystem) SetFrameSet(frameSet game.PetFrameSet) {
	s.frameSet = frameSet
	s.lastStates = make(map[ecs.EntityID]types.PetState)
}

// framesFor 返回指定状态的帧序列
// 该状态缺少素材时回退到 Idle 帧（Idle 帧在资源加载时已保证存在）
func (s *AnimationSystem) framesFor(state types.PetState) []*ebiten.Image {
	frames := s.frameSet[state]
	if len(frames) == 0 {
		log.Printf("[AnimationSystem] 状态 %s 没有帧素材，回退到 Idle", state)
		frames = s.frameSet[types.StateIdle]
	}
	return frames
}

// Update 更新所有动画
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PetComponent{}),
		reflect.TypeOf(&components.AnimationComponent{}),
		reflect.TypeOf(&components.SpriteComponent{}),
	)

	for _, id := range entities {
		petComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
		animComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.AnimationComponent{}))
		spriteComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.SpriteComponent{}))

		pet := petComp.(*components.PetComponent)
		anim := animComp.(*components.AnimationComponent)
		sprite := spriteComp.(*components.SpriteComponent)

		// 状态变化时切换帧序列
		if last, ok := s.lastStates[id]; !ok || last != pet.State {
			anim.Reset(s.framesFor(pet.State), pet.State.IsLooping())
			if len(anim.Frames) > 0 {
				sprite.Image = anim.Frames[0]
			}
			s.lastStates[id] = pet.State
		}

		if anim.Frozen || len(anim.Frames) == 0 {
			continue
		}

		// 死亡动画播完后整体定格在最后一帧
		if anim.IsFinished {
			if pet.IsDead() {
				anim.Frozen = true
			}
			continue
		}

		anim.FrameCounter += deltaTime
		if anim.FrameCounter < anim.FrameSpeed {
			continue
		}
		anim.FrameCounter = 0
		anim.CurrentFrame++
		if anim.CurrentFrame >= len(anim.Frames) {
			if anim.IsLooping {
				anim.CurrentFrame = 0
			} else {
				anim.CurrentFrame = len(anim.Frames) - 1
				anim.IsFinished = true
			}
		}
		sprite.Image = anim.Frames[anim.CurrentFrame]
	}
}
