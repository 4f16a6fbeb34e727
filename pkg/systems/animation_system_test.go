package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/types"
)

func getAnim(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.AnimationComponent {
	t.Helper()
	comp, ok := em.GetComponent(id, reflect.TypeOf(&components.AnimationComponent{}))
	if !ok {
		t.Fatal("宠物缺少动画组件")
	}
	return comp.(*components.AnimationComponent)
}

func getPet(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.PetComponent {
	t.Helper()
	comp, ok := em.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
	if !ok {
		t.Fatal("宠物缺少宠物组件")
	}
	return comp.(*components.PetComponent)
}

func TestAnimationLoopWrap(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	frameSet := newTestFrameSet(2)
	petID := newTestPetWithFrames(em, cfg, frameSet)

	system := NewAnimationSystem(em, frameSet)
	anim := getAnim(t, em, petID)

	system.Update(cfg.FrameInterval) // 状态缓存初始化
	system.Update(cfg.FrameInterval)
	if anim.CurrentFrame != 1 {
		t.Errorf("第二帧应为 1，实际 %d", anim.CurrentFrame)
	}
	system.Update(cfg.FrameInterval)
	if anim.CurrentFrame != 0 {
		t.Errorf("循环动画应回到第 0 帧，实际 %d", anim.CurrentFrame)
	}
	if anim.IsFinished {
		t.Error("循环动画不应进入完成状态")
	}
}

func TestAnimationOneShotClamps(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	frameSet := newTestFrameSet(2)
	petID := newTestPetWithFrames(em, cfg, frameSet)

	system := NewAnimationSystem(em, frameSet)
	pet := getPet(t, em, petID)
	anim := getAnim(t, em, petID)

	pet.State = types.StateJump
	for i := 0; i < 10; i++ {
		system.Update(cfg.FrameInterval)
	}
	if !anim.IsFinished {
		t.Error("单次动画应进入完成状态")
	}
	if anim.CurrentFrame != 1 {
		t.Errorf("单次动画应停在最后一帧，实际 %d", anim.CurrentFrame)
	}
}

func TestAnimationStateSwitchResets(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	frameSet := newTestFrameSet(3)
	petID := newTestPetWithFrames(em, cfg, frameSet)

	system := NewAnimationSystem(em, frameSet)
	pet := getPet(t, em, petID)
	anim := getAnim(t, em, petID)

	system.Update(cfg.FrameInterval)
	system.Update(cfg.FrameInterval)
	if anim.CurrentFrame == 0 {
		t.Fatal("前置条件失败：动画应已推进")
	}

	pet.State = types.StateWalk
	system.Update(0)
	if anim.CurrentFrame != 0 {
		t.Errorf("状态切换后应从第 0 帧开始，实际 %d", anim.CurrentFrame)
	}
	if anim.Frames[0] != frameSet[types.StateWalk][0] {
		t.Error("状态切换后应使用 Walk 帧序列")
	}
}

func TestAnimationMissingStateFallsBackToIdle(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	frameSet := newTestFrameSet(2)
	frameSet[types.StateSlide] = nil
	petID := newTestPetWithFrames(em, cfg, frameSet)

	system := NewAnimationSystem(em, frameSet)
	pet := getPet(t, em, petID)
	anim := getAnim(t, em, petID)

	pet.State = types.StateSlide
	system.Update(0)
	if len(anim.Frames) == 0 || anim.Frames[0] != frameSet[types.StateIdle][0] {
		t.Error("缺少素材的状态应回退到 Idle 帧")
	}
}

func TestAnimationDeadFreezesAfterSequence(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	frameSet := newTestFrameSet(2)
	petID := newTestPetWithFrames(em, cfg, frameSet)

	system := NewAnimationSystem(em, frameSet)
	pet := getPet(t, em, petID)
	anim := getAnim(t, em, petID)

	pet.State = types.StateDead
	for i := 0; i < 10; i++ {
		system.Update(cfg.FrameInterval)
	}
	if !anim.Frozen {
		t.Error("死亡动画播完后应整体定格")
	}
	lastFrame := anim.CurrentFrame
	system.Update(cfg.FrameInterval)
	if anim.CurrentFrame != lastFrame {
		t.Error("定格后帧不应再推进")
	}
}
