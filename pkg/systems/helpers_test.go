package systems

import (
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/entities"
	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// newTestFrameSet 为每个状态生成 n 帧占位图片
func newTestFrameSet(n int) game.PetFrameSet {
	frameSet := make(game.PetFrameSet, len(types.AllPetStates))
	for _, state := range types.AllPetStates {
		frames := make([]*ebiten.Image, n)
		for i := range frames {
			frames[i] = ebiten.NewImage(10, 10)
		}
		frameSet[state] = frames
	}
	return frameSet
}

// newTestPet 创建带默认组件的测试宠物
func newTestPet(em *ecs.EntityManager, cfg *config.BehaviorConfig, x, y float64) ecs.EntityID {
	return entities.NewPetEntity(em, cfg, types.SpeciesCat, newTestFrameSet(2), x, y)
}

// newTestPetWithFrames 使用指定帧集合创建测试宠物
func newTestPetWithFrames(em *ecs.EntityManager, cfg *config.BehaviorConfig, frameSet game.PetFrameSet) ecs.EntityID {
	return entities.NewPetEntity(em, cfg, types.SpeciesCat, frameSet, 100, 100)
}
