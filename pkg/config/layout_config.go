package config

// 布局配置常量
// 渲染表面固定为 800x450 逻辑像素，粒子位置都相对于它计算

const (
	// RenderWidth 渲染表面宽度（逻辑像素）
	RenderWidth = 800

	// RenderHeight 渲染表面高度（逻辑像素）
	RenderHeight = 450

	// WindowTitle 窗口标题
	WindowTitle = "Coin Burst"
)

// ScreenCenter 返回渲染表面中心点，粒子创建与回收时都重置到这里
func ScreenCenter() (float64, float64) {
	return RenderWidth / 2.0, RenderHeight / 2.0
}
