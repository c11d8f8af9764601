package particle

import (
	"math"
	"math/rand/v2"
)

// Source is a uniform random source producing values in [0, 1).
//
// *rand.Rand from math/rand/v2 satisfies this interface.
type Source interface {
	Float64() float64
}

// globalSource 使用 math/rand/v2 的全局随机源（进程级共享）
type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// DefaultSource returns the process-wide uniform random source.
func DefaultSource() Source {
	return globalSource{}
}

// NewSeededSource returns a deterministic source, used by tests and the
// headless tools so that runs can be reproduced.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// MinMaxRandom returns a value drawn uniformly from [min, max).
//
// When min >= max the range is degenerate and min is returned.
func MinMaxRandom(src Source, min, max float64) float64 {
	if min >= max {
		return min
	}
	v := src.Float64()*(max-min) + min
	// 浮点舍入可能让结果恰好等于 max，收回到区间内
	if v >= max {
		v = math.Nextafter(max, min)
	}
	return v
}

// RandomInRange draws from r using src.
func RandomInRange(src Source, r Range) float64 {
	return MinMaxRandom(src, r.Min, r.Max)
}
