package components

import "github.com/decker502/coinburst/pkg/ecs"

// ContainerComponent 场景图容器：按顺序持有子节点
//
// 舞台（stage）是根容器；每个发射器自身也是容器，拥有其全部粒子精灵。
// 子节点按 Children 顺序绘制。
type ContainerComponent struct {
	Children []ecs.EntityID
}

// ParentComponent 记录节点所属容器，保证一个节点只挂在一个容器下
type ParentComponent struct {
	Parent ecs.EntityID
}
