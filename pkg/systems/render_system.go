package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/ecs"
	"github.com/decker502/coinburst/pkg/logging"
)

// RenderSystem 绘制场景图
//
// 从根容器（舞台）开始深度优先遍历，按子节点顺序绘制每个可见精灵，
// 后绘制的覆盖先绘制的。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	log           *zap.SugaredLogger
	op            ebiten.DrawImageOptions // 复用，避免每帧分配
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager, log *zap.SugaredLogger) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		log:           logging.OrNop(log),
	}
}

// Draw 绘制 rootID 下的全部精灵，返回绘制数量
func (s *RenderSystem) Draw(screen *ebiten.Image, rootID ecs.EntityID) int {
	drawn := 0
	WalkSprites(s.entityManager, rootID, func(_ ecs.EntityID, sprite *components.SpriteComponent, pos *components.PositionComponent) {
		if !spriteVisible(sprite) {
			return
		}
		s.op = ebiten.DrawImageOptions{}
		applySpriteTransform(&s.op, sprite, pos)
		screen.DrawImage(sprite.Image, &s.op)
		drawn++
	})
	return drawn
}

// spriteVisible 贴图存在、未隐藏且不完全透明
func spriteVisible(sprite *components.SpriteComponent) bool {
	return sprite.Image != nil && !sprite.Hidden && sprite.Alpha > 0
}

// applySpriteTransform 填充绘制选项：
// 平移 -pivot → 缩放 → 旋转 → 平移到位置，alpha 作用于颜色
func applySpriteTransform(op *ebiten.DrawImageOptions, sprite *components.SpriteComponent, pos *components.PositionComponent) {
	op.GeoM.Translate(-sprite.PivotX, -sprite.PivotY)
	op.GeoM.Scale(sprite.ScaleX, sprite.ScaleY)
	op.GeoM.Rotate(sprite.Rotation)
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleAlpha(float32(sprite.Alpha))
	op.Filter = ebiten.FilterLinear
}
