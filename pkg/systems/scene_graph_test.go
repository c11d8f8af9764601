package systems

import (
	"errors"
	"testing"

	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/ecs"
)

func newSpriteNode(em *ecs.EntityManager, x float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.SpriteComponent{Alpha: 1})
	em.AddComponent(id, &components.PositionComponent{X: x})
	return id
}

func TestAddChild_Reparents(t *testing.T) {
	em := ecs.NewEntityManager()
	a := NewContainer(em)
	b := NewContainer(em)
	child := newSpriteNode(em, 0)

	if err := AddChild(em, a, child); err != nil {
		t.Fatalf("AddChild a: %v", err)
	}
	if err := AddChild(em, a, child); err != nil {
		t.Fatalf("AddChild a again: %v", err)
	}
	if err := AddChild(em, b, child); err != nil {
		t.Fatalf("AddChild b: %v", err)
	}

	ca, _ := ecs.GetComponent[*components.ContainerComponent](em, a)
	cb, _ := ecs.GetComponent[*components.ContainerComponent](em, b)
	if len(ca.Children) != 0 {
		t.Errorf("old parent children: %v", ca.Children)
	}
	if len(cb.Children) != 1 || cb.Children[0] != child {
		t.Errorf("new parent children: %v", cb.Children)
	}
	parent, _ := ecs.GetComponent[*components.ParentComponent](em, child)
	if parent.Parent != b {
		t.Errorf("ParentComponent: got %d, want %d", parent.Parent, b)
	}
}

func TestAddChild_Errors(t *testing.T) {
	em := ecs.NewEntityManager()
	root := NewContainer(em)
	inner := NewContainer(em)
	leaf := newSpriteNode(em, 0)

	if err := AddChild(em, leaf, root); !errors.Is(err, ErrNotContainer) {
		t.Errorf("leaf parent: got %v, want ErrNotContainer", err)
	}
	if err := AddChild(em, root, root); err == nil {
		t.Error("self parent should fail")
	}
	if err := AddChild(em, root, inner); err != nil {
		t.Fatal(err)
	}
	if err := AddChild(em, inner, root); err == nil {
		t.Error("cycle should fail")
	}
}

func TestRemoveChild(t *testing.T) {
	em := ecs.NewEntityManager()
	root := NewContainer(em)
	child := newSpriteNode(em, 0)
	_ = AddChild(em, root, child)

	RemoveChild(em, root, child)
	RemoveChild(em, root, child) // 重复移除无效果

	c, _ := ecs.GetComponent[*components.ContainerComponent](em, root)
	if len(c.Children) != 0 {
		t.Errorf("children: %v", c.Children)
	}
	if ecs.HasComponent[*components.ParentComponent](em, child) {
		t.Error("ParentComponent should be removed")
	}
}

func TestWalkSprites_DepthFirstOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	stage := NewContainer(em)
	first := NewContainer(em)
	second := NewContainer(em)
	_ = AddChild(em, stage, first)
	_ = AddChild(em, stage, second)

	// 期望顺序: 1, 2 (first), 3 (second)
	_ = AddChild(em, second, newSpriteNode(em, 3))
	_ = AddChild(em, first, newSpriteNode(em, 1))
	_ = AddChild(em, first, newSpriteNode(em, 2))

	var order []float64
	WalkSprites(em, stage, func(_ ecs.EntityID, _ *components.SpriteComponent, pos *components.PositionComponent) {
		order = append(order, pos.X)
	})

	want := []float64{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("visited: got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("visit %d: got %v, want %v", i, order[i], want[i])
		}
	}
}
