package systems

import (
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/ecs"
)

// LifetimeSystem 管理有生命周期上限的实体（屏幕提示信息）
// 超时的实体被标记删除，实际清理由场景在 tick 末尾完成
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{entityManager: em}
}

// Update 推进生命周期并清理过期实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.LifetimeComponent{}),
	)

	for _, id := range entities {
		comp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.LifetimeComponent{}))
		lifetime := comp.(*components.LifetimeComponent)

		if lifetime.IsExpired {
			continue
		}
		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
		}
	}
}
