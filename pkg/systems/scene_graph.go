package systems

import (
	"errors"
	"fmt"

	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/ecs"
)

// ErrNotContainer 目标实体没有 ContainerComponent
var ErrNotContainer = errors.New("entity is not a container")

// NewContainer 创建一个空容器实体（舞台或发射器根节点）
func NewContainer(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.ContainerComponent{})
	return id
}

// AddChild 将 child 挂到 parent 容器末尾
//
// child 如果已经挂在其他容器下，会先从原容器移除，保证一个节点只属于一个容器。
func AddChild(em *ecs.EntityManager, parent, child ecs.EntityID) error {
	container, ok := ecs.GetComponent[*components.ContainerComponent](em, parent)
	if !ok {
		return fmt.Errorf("add child %d: %w: %d", child, ErrNotContainer, parent)
	}
	if parent == child || isAncestor(em, child, parent) {
		return fmt.Errorf("add child %d to %d: would create a cycle", child, parent)
	}

	if old, ok := ecs.GetComponent[*components.ParentComponent](em, child); ok {
		if old.Parent == parent {
			return nil
		}
		RemoveChild(em, old.Parent, child)
	}

	container.Children = append(container.Children, child)
	em.AddComponent(child, &components.ParentComponent{Parent: parent})
	return nil
}

// RemoveChild 从 parent 容器中移除 child；不存在时无效果
func RemoveChild(em *ecs.EntityManager, parent, child ecs.EntityID) {
	container, ok := ecs.GetComponent[*components.ContainerComponent](em, parent)
	if ok {
		for i, id := range container.Children {
			if id == child {
				container.Children = append(container.Children[:i], container.Children[i+1:]...)
				break
			}
		}
	}
	if p, ok := ecs.GetComponent[*components.ParentComponent](em, child); ok && p.Parent == parent {
		ecs.RemoveComponent[*components.ParentComponent](em, child)
	}
}

// isAncestor 判断 a 是否是 node 的祖先（含 node 自身的父链）
func isAncestor(em *ecs.EntityManager, a, node ecs.EntityID) bool {
	for {
		p, ok := ecs.GetComponent[*components.ParentComponent](em, node)
		if !ok {
			return false
		}
		if p.Parent == a {
			return true
		}
		node = p.Parent
	}
}

// SpriteVisitor 遍历回调
type SpriteVisitor func(id ecs.EntityID, sprite *components.SpriteComponent, pos *components.PositionComponent)

// WalkSprites 深度优先按子节点顺序访问 root 下所有带 Sprite 和 Position 的节点
func WalkSprites(em *ecs.EntityManager, root ecs.EntityID, visit SpriteVisitor) {
	container, ok := ecs.GetComponent[*components.ContainerComponent](em, root)
	if !ok {
		return
	}
	for _, child := range container.Children {
		if !em.Exists(child) {
			continue
		}
		sprite, hasSprite := ecs.GetComponent[*components.SpriteComponent](em, child)
		pos, hasPos := ecs.GetComponent[*components.PositionComponent](em, child)
		if hasSprite && hasPos {
			visit(child, sprite, pos)
		}
		WalkSprites(em, child, visit)
	}
}
