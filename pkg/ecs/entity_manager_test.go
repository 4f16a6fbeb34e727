package ecs

import (
	"reflect"
	"testing"
)

type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Errorf("Expected unique entity IDs, got %d and %d", id1, id2)
	}
	if id1 == InvalidEntity || id2 == InvalidEntity {
		t.Error("CreateEntity should never return InvalidEntity")
	}
	if !em.Exists(id1) || !em.Exists(id2) {
		t.Error("Created entities should exist")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 10, Y: 20})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Expected to find PositionComponent")
	}
	pos := comp.(*testPositionComponent)
	if pos.X != 10 || pos.Y != 20 {
		t.Errorf("Expected (10, 20), got (%f, %f)", pos.X, pos.Y)
	}

	// 未添加的组件类型不应存在
	if em.HasComponent(id, reflect.TypeOf(&testVelocityComponent{})) {
		t.Error("Entity should not have VelocityComponent")
	}
}

func TestDeferredDestroy(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	// 标记删除后、清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after RemoveMarkedEntities")
	}
	if _, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{})); found {
		t.Error("Components of destroyed entity should be gone")
	}
}

func TestGetEntitiesWithIsSortedAndFiltered(t *testing.T) {
	em := NewEntityManager()

	// 创建多个实体，部分只有位置，部分有位置+速度
	var withBoth []EntityID
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testVelocityComponent{VX: 1})
			withBoth = append(withBoth, id)
		}
	}

	result := em.GetEntitiesWith(
		reflect.TypeOf(&testPositionComponent{}),
		reflect.TypeOf(&testVelocityComponent{}),
	)

	if len(result) != len(withBoth) {
		t.Fatalf("Expected %d entities, got %d", len(withBoth), len(result))
	}
	for i := 1; i < len(result); i++ {
		if result[i-1] >= result[i] {
			t.Errorf("Query result not sorted: %v", result)
		}
	}
}

func TestDestroyEntitiesWith(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 3; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testVelocityComponent{})
	}
	keep := em.CreateEntity()
	em.AddComponent(keep, &testPositionComponent{})

	n := em.DestroyEntitiesWith(reflect.TypeOf(&testVelocityComponent{}))
	if n != 3 {
		t.Errorf("Expected 3 entities marked, got %d", n)
	}
	em.RemoveMarkedEntities()

	if em.CountEntitiesWith(reflect.TypeOf(&testVelocityComponent{})) != 0 {
		t.Error("All velocity entities should be destroyed")
	}
	if !em.Exists(keep) {
		t.Error("Unrelated entity should survive")
	}
}
