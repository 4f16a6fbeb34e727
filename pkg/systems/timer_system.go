// Package systems 实现所有实体系统
// 系统按固定顺序在每个 tick 被场景调用，共享同一个 EntityManager，
// 没有任何并发：所有状态变更都发生在事件循环线程上
package systems

import (
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/ecs"
)

// TimerSystem 推进所有计时器组件
// 计时器到达目标时间后置位 IsReady，由各消费方检查并 Restart
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// Update 推进所有计时器
func (s *TimerSystem) Update(deltaTime float64) {
	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.TimerComponent{}),
	)

	for _, id := range entities {
		comp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.TimerComponent{}))
		timer := comp.(*components.TimerComponent)
		timer.Tick(deltaTime)
	}
}
