package components

import (
	"time"

	"github.com/decker502/coinburst/pkg/ecs"
)

// EmitterComponent represents a coin burst effect: a fixed set of particles
// driven by the Clock inside the time window [Start, Start+Duration).
//
// The emitter entity also carries a ContainerComponent whose children are the
// particle sprites, so that drawing the stage draws every particle.
//
// This is a pure data component following ECS principles - it contains no methods.
type EmitterComponent struct {
	Name string

	// 时间窗口（相对于时间线起点）
	Start    time.Duration
	Duration time.Duration

	// Particles 该发射器拥有的粒子实体（顺序与行为无关）
	Particles []ecs.EntityID

	// 最近一次 AnimTick 的时间参数（HUD 与调试使用）
	Ticks              uint64
	LastNormalizedTime float64
	LastLocalTime      time.Duration
	LastGlobalTime     time.Time
}
