// Package particle provides the small value types and random helpers used by
// the coin burst particle system.
//
// It imports neither the ECS nor ebiten; the terminal front end and the chart
// tool share it with the graphical build.
package particle

import "fmt"

// Range 描述一个半开区间 [Min, Max)
//
// 用于配置文件中的随机范围（重力、尺寸、旋转、水平速度）。
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies inside [Min, Max).
// A degenerate range (Min == Max) contains only Min.
func (r Range) Contains(v float64) bool {
	if r.Min == r.Max {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}

// Validate 检查 Min <= Max
func (r Range) Validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range invalid: min(%.3f) > max(%.3f)", name, r.Min, r.Max)
	}
	return nil
}

// String 以 "[min max)" 形式输出区间，便于日志
func (r Range) String() string {
	return fmt.Sprintf("[%g %g)", r.Min, r.Max)
}
