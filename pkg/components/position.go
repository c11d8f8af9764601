package components

// PositionComponent 屏幕坐标（渲染表面 800x450 的逻辑像素）
type PositionComponent struct {
	X, Y float64
}
