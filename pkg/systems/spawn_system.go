package systems

import (
	"log"
	"math/rand"
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/entities"
	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/utils"
)

// SpawnSystem 负责周期性地在宠物脚下生成便便
// 便便素材目录缺失时自动生成静默停用（手动投放命令同样不可用）
type SpawnSystem struct {
	entityManager   *ecs.EntityManager
	cfg             *config.BehaviorConfig
	rng             *rand.Rand
	resourceManager *game.ResourceManager
	screenWidth     float64
	screenHeight    float64
	timerID         ecs.EntityID
}

// NewSpawnSystem 创建生成系统
// timerID 是便便生成计时器实体
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.BehaviorConfig, rng *rand.Rand, rm *game.ResourceManager, screenWidth, screenHeight float64, timerID ecs.EntityID) *SpawnSystem {
	return &SpawnSystem{
		entityManager:   em,
		cfg:             cfg,
		rng:             rng,
		resourceManager: rm,
		screenWidth:     screenWidth,
		screenHeight:    screenHeight,
		timerID:         timerID,
	}
}

// Update 检查便便计时器并在触发时生成
func (s *SpawnSystem) Update(deltaTime float64) {
	comp, ok := s.entityManager.GetComponent(s.timerID, reflect.TypeOf(&components.TimerComponent{}))
	if !ok {
		return
	}
	timer := comp.(*components.TimerComponent)
	if !timer.IsReady {
		return
	}
	timer.Restart(s.cfg.PoopSpawnInterval)

	if !s.resourceManager.PoopAvailable() {
		return
	}
	s.spawnAtPetFeet()
}

// spawnAtPetFeet 在宠物脚下附近随机位置生成一份便便
func (s *SpawnSystem) spawnAtPetFeet() {
	pets := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.PetComponent{}),
		reflect.TypeOf(&components.PositionComponent{}),
		reflect.TypeOf(&components.SpriteComponent{}),
	)
	for _, id := range pets {
		petComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PetComponent{}))
		pet := petComp.(*components.PetComponent)
		if pet.IsDead() || pet.Hidden {
			continue
		}
		posComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.PositionComponent{}))
		spriteComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.SpriteComponent{}))
		pos := posComp.(*components.PositionComponent)
		sprite := spriteComp.(*components.SpriteComponent)

		// 脚下附近带随机偏移
		x := pos.X + sprite.Width/2 - config.PoopSize/2 + (s.rng.Float64()*2-1)*30
		y := pos.Y + sprite.Height - config.PoopSize + s.rng.Float64()*10
		x = utils.Clamp(x, 0, s.screenWidth-config.PoopSize)
		y = utils.Clamp(y, 0, s.screenHeight-config.PoopSize)

		img := s.resourceManager.RandomPoopImage(s.rng)
		entities.NewPoopEntity(s.entityManager, img, x, y)
		log.Printf("[SpawnSystem] 宠物留下了便便 (%.0f, %.0f)", x, y)
	}
}
