package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像及变换)
//
// 一个粒子对应且仅对应一个 SpriteComponent。
// Pivot 是图像局部坐标中的旋转/缩放中心；Rotation 单位为弧度。
type SpriteComponent struct {
	Image       *ebiten.Image // 当前贴图，贴图缺失时可能为 nil
	TextureName string        // 当前贴图名（如 "CoinsGold003"）

	PivotX, PivotY float64
	ScaleX, ScaleY float64
	Rotation       float64

	// Alpha 透明度 0-1
	Alpha float64

	// Hidden 为 true 时渲染系统跳过该精灵
	Hidden bool
}
