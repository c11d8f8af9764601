package systems

import (
	"github.com/gdamore/tcell/v2"

	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
)

// CellScreen 终端渲染所需的最小屏幕接口，tcell.Screen 满足该接口
type CellScreen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// coinGlyphs 金币旋转动画的字符帧，索引为动画帧号
var coinGlyphs = []rune{'O', '0', 'o', '|', 'o', '0', 'O', '@', '*'}

// TerminalRenderSystem 以字符形式绘制场景图
//
// 800x450 的逻辑渲染表面按比例映射到终端单元格；
// 动画帧决定字符，alpha 决定亮度。
type TerminalRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewTerminalRenderSystem 创建终端渲染系统
func NewTerminalRenderSystem(em *ecs.EntityManager) *TerminalRenderSystem {
	return &TerminalRenderSystem{entityManager: em}
}

// Draw 绘制 rootID 下全部可见精灵，返回落在屏幕内的数量
func (s *TerminalRenderSystem) Draw(screen CellScreen, rootID ecs.EntityID) int {
	cols, rows := screen.Size()
	drawn := 0
	WalkSprites(s.entityManager, rootID, func(id ecs.EntityID, sprite *components.SpriteComponent, pos *components.PositionComponent) {
		if sprite.Hidden || sprite.Alpha <= 0 {
			return
		}
		x, y, ok := CellFor(pos.X, pos.Y, cols, rows)
		if !ok {
			return
		}
		frame := 0
		if p, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id); ok {
			frame = p.FrameIndex
		}
		screen.SetContent(x, y, GlyphForFrame(frame), nil, StyleForAlpha(sprite.Alpha))
		drawn++
	})
	return drawn
}

// CellFor 将逻辑坐标映射到终端单元格；超出屏幕返回 ok=false
func CellFor(x, y float64, cols, rows int) (int, int, bool) {
	if cols <= 0 || rows <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	cx := int(x / config.RenderWidth * float64(cols))
	cy := int(y / config.RenderHeight * float64(rows))
	if cx >= cols || cy >= rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// GlyphForFrame 动画帧对应的字符
func GlyphForFrame(frame int) rune {
	if frame < 0 {
		frame = 0
	}
	return coinGlyphs[frame%len(coinGlyphs)]
}

// StyleForAlpha 金色前景，亮度随 alpha 变化
func StyleForAlpha(alpha float64) tcell.Style {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	color := tcell.NewRGBColor(int32(255*alpha), int32(200*alpha), int32(40*alpha))
	return tcell.StyleDefault.Foreground(color)
}
