package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/types"
)

func getTracker(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.ClickTrackerComponent {
	t.Helper()
	comp, ok := em.GetComponent(id, reflect.TypeOf(&components.ClickTrackerComponent{}))
	if !ok {
		t.Fatal("宠物缺少点击追踪组件")
	}
	return comp.(*components.ClickTrackerComponent)
}

// clickN 连续快速点击 n 次（每次间隔 0.1 秒）
func clickN(system *InteractionSystem, id ecs.EntityID, n int) {
	for i := 0; i < n; i++ {
		system.Update(0.1)
		system.HandlePetClick(id)
	}
}

func TestHurtAfterThresholdCrossed(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 100, 100)
	system := NewInteractionSystem(em, cfg)
	pet := getPet(t, em, petID)

	clickN(system, petID, cfg.HurtClickThreshold)
	if pet.State == types.StateHurt {
		t.Fatal("达到阈值但未越过时不应受伤")
	}

	system.HandlePetClick(petID)
	if pet.State != types.StateHurt {
		t.Errorf("越过受伤阈值后应进入 Hurt，实际 %s", pet.State)
	}
}

func TestHurtFiresOncePerCrossing(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 100, 100)
	system := NewInteractionSystem(em, cfg)
	pet := getPet(t, em, petID)
	tracker := getTracker(t, em, petID)

	clickN(system, petID, cfg.HurtClickThreshold+1)
	if pet.State != types.StateHurt {
		t.Fatal("前置条件失败：应已受伤")
	}

	// 受伤动画结束后继续点击（仍在阈值之上）不应再次触发
	pet.State = types.StateIdle
	clickN(system, petID, 2)
	if pet.State != types.StateIdle {
		t.Errorf("同一次越阈内不应重复触发 Hurt，实际 %s", pet.State)
	}
	if !tracker.HurtFired {
		t.Error("HurtFired 应保持置位")
	}
}

func TestHurtRearmsAfterDecay(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 100, 100)
	system := NewInteractionSystem(em, cfg)
	pet := getPet(t, em, petID)
	tracker := getTracker(t, em, petID)

	clickN(system, petID, cfg.HurtClickThreshold+1)
	pet.State = types.StateIdle

	// 等待窗口滑过，点击计数衰减
	system.Update(cfg.ClickDecayWindow + 1)
	if len(tracker.Timestamps) != 0 {
		t.Fatalf("衰减窗口过后点击应清空，实际 %d", len(tracker.Timestamps))
	}
	if tracker.HurtFired {
		t.Error("计数衰减后 HurtFired 应复位")
	}

	clickN(system, petID, cfg.HurtClickThreshold+1)
	if pet.State != types.StateHurt {
		t.Error("重新越阈应再次触发 Hurt")
	}
}

func TestSlowClicksNeverHurt(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 100, 100)
	system := NewInteractionSystem(em, cfg)
	pet := getPet(t, em, petID)

	// 每次点击间隔超过衰减窗口
	for i := 0; i < 20; i++ {
		system.Update(cfg.ClickDecayWindow + 1)
		system.HandlePetClick(petID)
	}
	if pet.State != types.StateIdle {
		t.Errorf("慢速点击不应伤害宠物，实际 %s", pet.State)
	}
}

func TestDeadAfterElevenQuickClicks(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 100, 100)
	system := NewInteractionSystem(em, cfg)
	pet := getPet(t, em, petID)
	tracker := getTracker(t, em, petID)

	clickN(system, petID, cfg.DeadClickThreshold+1)
	if !pet.IsDead() {
		t.Fatalf("越过死亡阈值后应进入 Dead，实际 %s", pet.State)
	}
	if !tracker.Halted {
		t.Error("死亡后点击追踪应停止")
	}

	// 死亡后的点击全部被忽略
	before := len(tracker.Timestamps)
	clickN(system, petID, 5)
	if len(tracker.Timestamps) != before {
		t.Error("死亡后的点击不应被记录")
	}
	if !pet.IsDead() {
		t.Error("死亡是终态，点击不应改变状态")
	}
}

func TestReviveResetsTracker(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 100, 100)
	system := NewInteractionSystem(em, cfg)
	pet := getPet(t, em, petID)
	tracker := getTracker(t, em, petID)

	clickN(system, petID, cfg.DeadClickThreshold+1)
	if !pet.IsDead() {
		t.Fatal("前置条件失败：应已死亡")
	}

	system.Revive(petID)
	if pet.State != types.StateIdle {
		t.Errorf("复活后应回到 Idle，实际 %s", pet.State)
	}
	if len(tracker.Timestamps) != 0 || tracker.Halted || tracker.HurtFired {
		t.Error("复活应清空点击追踪状态")
	}

	// 复活后阈值重新生效
	clickN(system, petID, cfg.HurtClickThreshold+1)
	if pet.State != types.StateHurt {
		t.Error("复活后再次连点应重新触发 Hurt")
	}
}

func TestReviveIgnoredWhenAlive(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 100, 100)
	system := NewInteractionSystem(em, cfg)
	pet := getPet(t, em, petID)

	pet.State = types.StateWalk
	system.Revive(petID)
	if pet.State != types.StateWalk {
		t.Error("存活时 Revive 应为空操作")
	}
}
