package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/decker502/deskpet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	testScreenW = 1920.0
	testScreenH = 1080.0
)

func getPos(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	comp, ok := em.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
	if !ok {
		t.Fatal("实体缺少位置组件")
	}
	return comp.(*components.PositionComponent)
}

func getVel(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.VelocityComponent {
	t.Helper()
	comp, ok := em.GetComponent(id, reflect.TypeOf(&components.VelocityComponent{}))
	if !ok {
		t.Fatal("实体缺少速度组件")
	}
	return comp.(*components.VelocityComponent)
}

func getMov(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.MovementComponent {
	t.Helper()
	comp, ok := em.GetComponent(id, reflect.TypeOf(&components.MovementComponent{}))
	if !ok {
		t.Fatal("实体缺少移动组件")
	}
	return comp.(*components.MovementComponent)
}

func addFood(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.SpriteComponent{
		Image:  ebiten.NewImage(10, 10),
		Width:  config.FoodSize,
		Height: config.FoodSize,
		Layer:  config.LayerFood,
	})
	em.AddComponent(id, &components.FoodComponent{})
	em.AddComponent(id, &components.DraggableComponent{})
	return id
}

func TestWanderBouncesOffEdges(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 0, 100)
	system := NewMovementSystem(em, cfg, testScreenW, testScreenH)

	pet := getPet(t, em, petID)
	vel := getVel(t, em, petID)
	pet.State = types.StateWalk
	vel.VX, vel.VY = -100, 0

	system.Update(1.0 / 60.0)
	if vel.VX <= 0 {
		t.Errorf("撞到左边缘后水平速度应反向，实际 %f", vel.VX)
	}
}

func TestPositionStaysWithinScreen(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, testScreenW-config.PetWidth, testScreenH-config.PetHeight)
	system := NewMovementSystem(em, cfg, testScreenW, testScreenH)

	pet := getPet(t, em, petID)
	vel := getVel(t, em, petID)
	pos := getPos(t, em, petID)
	pet.State = types.StateWalk
	vel.VX, vel.VY = 500, 500

	for i := 0; i < 120; i++ {
		system.Update(1.0 / 60.0)
		if pos.X < 0 || pos.X > testScreenW-config.PetWidth ||
			pos.Y < 0 || pos.Y > testScreenH-config.PetHeight {
			t.Fatalf("位置越界: (%f, %f)", pos.X, pos.Y)
		}
	}
}

func TestDeadPetDoesNotMove(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 300, 300)
	system := NewMovementSystem(em, cfg, testScreenW, testScreenH)

	pet := getPet(t, em, petID)
	vel := getVel(t, em, petID)
	pos := getPos(t, em, petID)
	pet.State = types.StateDead
	vel.VX, vel.VY = 100, 100
	addFood(em, 500, 500)

	system.Update(1.0 / 60.0)
	if pos.X != 300 || pos.Y != 300 {
		t.Errorf("死亡的宠物不应移动: (%f, %f)", pos.X, pos.Y)
	}
	if vel.VX != 0 || vel.VY != 0 {
		t.Error("死亡后速度应清零")
	}
}

func TestChaseDistanceStrictlyDecreases(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 0, 0)
	foodID := addFood(em, 500, 500)
	system := NewMovementSystem(em, cfg, testScreenW, testScreenH)

	pet := getPet(t, em, petID)
	pos := getPos(t, em, petID)

	foodPos := getPos(t, em, foodID)
	foodCX := foodPos.X + config.FoodSize/2
	foodCY := foodPos.Y + config.FoodSize/2

	prev := utils.Distance(pos.X+config.PetWidth/2, pos.Y+config.PetHeight/2, foodCX, foodCY)
	for i := 0; i < 600; i++ {
		system.Update(1.0 / 60.0)
		em.RemoveMarkedEntities()
		if !em.Exists(foodID) {
			break
		}
		dist := utils.Distance(pos.X+config.PetWidth/2, pos.Y+config.PetHeight/2, foodCX, foodCY)
		if dist >= prev {
			t.Fatalf("第 %d tick 距离未减小: %f -> %f", i, prev, dist)
		}
		prev = dist
		if pet.State != types.StateRun {
			t.Fatalf("追逐食物时应处于 Run，实际 %s", pet.State)
		}
	}

	if em.Exists(foodID) {
		t.Fatal("足够时间后食物应被吃掉")
	}
	if pet.State != types.StateIdle {
		t.Errorf("进食后应回到 Idle，实际 %s", pet.State)
	}
}

func TestEatWithinDistance(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 100, 100)
	// 食物放在进食距离以内
	foodID := addFood(em, 100+config.PetWidth/2, 100+config.PetHeight/2)
	system := NewMovementSystem(em, cfg, testScreenW, testScreenH)

	system.Update(1.0 / 60.0)
	em.RemoveMarkedEntities()

	if em.Exists(foodID) {
		t.Error("进食距离内的食物应立即被吃掉")
	}
	if getPet(t, em, petID).State != types.StateIdle {
		t.Error("进食后应回到 Idle")
	}
}

func TestChaseTargetsNearestFood(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 0, 0)
	addFood(em, 1500, 800)
	nearID := addFood(em, 400, 300)
	system := NewMovementSystem(em, cfg, testScreenW, testScreenH)

	system.Update(1.0 / 60.0)
	mov := getMov(t, em, petID)
	if mov.TargetFood != nearID {
		t.Errorf("应追逐最近的食物 %d，实际 %d", nearID, mov.TargetFood)
	}
}

func TestRunToTargetStopsAtTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 500, 300)
	system := NewMovementSystem(em, cfg, testScreenW, testScreenH)

	pet := getPet(t, em, petID)
	vel := getVel(t, em, petID)
	mov := getMov(t, em, petID)
	pos := getPos(t, em, petID)

	pet.State = types.StateRun
	mov.Mode = components.MoveRunToTarget
	mov.TargetX, mov.TargetY = 0, 300
	vel.VX, vel.VY = -cfg.MoveSpeed*cfg.RunSpeedMultiplier, 0

	for i := 0; i < 600 && mov.Mode == components.MoveRunToTarget; i++ {
		system.Update(1.0 / 60.0)
	}
	if mov.Mode != components.MoveWander {
		t.Fatal("到达目标后应回到漫步模式")
	}
	if pos.X != 0 {
		t.Errorf("应停在目标点 x=0，实际 %f", pos.X)
	}
	if pet.State != types.StateIdle {
		t.Errorf("到达目标后应回到 Idle，实际 %s", pet.State)
	}
}

func TestFacingFollowsHorizontalVelocity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBehaviorConfig()
	petID := newTestPet(em, cfg, 500, 300)
	system := NewMovementSystem(em, cfg, testScreenW, testScreenH)

	pet := getPet(t, em, petID)
	vel := getVel(t, em, petID)
	spriteComp, _ := em.GetComponent(petID, reflect.TypeOf(&components.SpriteComponent{}))
	sprite := spriteComp.(*components.SpriteComponent)

	pet.State = types.StateWalk
	vel.VX = -50
	system.Update(1.0 / 60.0)
	if !sprite.FlipX {
		t.Error("向左移动时应水平翻转")
	}

	vel.VX = 50
	system.Update(1.0 / 60.0)
	if sprite.FlipX {
		t.Error("向右移动时不应翻转")
	}

	vel.VX = 0
	system.Update(1.0 / 60.0)
	if sprite.FlipX {
		t.Error("速度为零时应保持原朝向")
	}
}
