package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testKindComponent struct {
	Kind int
}

type testLabelComponent struct {
	Label string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始，0 保留为空格子
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testKindComponent{Kind: 3})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testKindComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	if comp.(*testKindComponent).Kind != 3 {
		t.Errorf("Kind mismatch, got %d", comp.(*testKindComponent).Kind)
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testLabelComponent{Label: "apple"})

	label, ok := GetComponent[*testLabelComponent](em, id)
	if !ok {
		t.Fatal("generic GetComponent should find the component")
	}
	if label.Label != "apple" {
		t.Errorf("Label = %q, want apple", label.Label)
	}

	if _, ok := GetComponent[*testKindComponent](em, id); ok {
		t.Error("GetComponent should not find a component that was never added")
	}

	if _, ok := GetComponent[*testLabelComponent](em, 999); ok {
		t.Error("GetComponent on unknown entity should fail")
	}
}

// TestDestroyEntity 销毁是延迟的，清理前仍可查询
func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testKindComponent{})

	em.DestroyEntity(id)

	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("RemoveMarkedEntities removed %d, want 1", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", em.EntityCount())
	}
}

// TestDestroyEntityTwice 重复标记只删除一次
func TestDestroyEntityTwice(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.DestroyEntity(12345)

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("RemoveMarkedEntities removed %d, want 1", removed)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testKindComponent{})
	em.AddComponent(id1, &testLabelComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testKindComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testLabelComponent{})

	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testKindComponent{}),
		reflect.TypeOf(&testLabelComponent{}),
	)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Expected only id1, got %v", entities)
	}

	if kinds := GetEntitiesWith1[*testKindComponent](em); len(kinds) != 2 {
		t.Errorf("Expected 2 entities with kind component, got %d", len(kinds))
	}
}
