package components

import "github.com/decker502/coinburst/pkg/ecs"

// ParticleComponent represents a single coin particle owned by one emitter.
//
// Position lives in PositionComponent and the visual state (alpha, scale,
// rotation, texture) lives in the particle's SpriteComponent; this component
// only holds the physics accumulators that the ParticleSystem advances each
// frame.
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	// Emitter 所属发射器（唯一所有者）
	Emitter ecs.EntityID

	// Gravity (重力累加器)
	// GravityAmount 每帧增加 nt/25，直到回收时重新随机
	GravityAmount float64
	// DefaultGravityAmount 最近一次随机得到的初始重力（回收时重置到新的随机值）
	DefaultGravityAmount float64

	// RotationDelta 每帧旋转增量（除以 25 后累加到 Sprite.Rotation），只在创建/回收时重新随机
	RotationDelta float64

	// XVelocity 水平速度（像素/帧），只在创建/回收时重新随机
	XVelocity float64

	// FrameIndex 最近一帧使用的动画帧号 floor(nt*8)
	FrameIndex int

	// Recycles 被回收的次数（调试与图表工具使用）
	Recycles int
}
