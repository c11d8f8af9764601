package scenes

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUDStats HUD 显示的数据
type HUDStats struct {
	NormalizedTime float64
	LocalTime      time.Duration
	TotalDuration  time.Duration
	Particles      int
	Effects        int
	TPS            float64
	Paused         bool
}

// FormatHUD 生成 HUD 文本
func FormatHUD(s HUDStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "nt %.3f  lt %4dms / %dms\n", s.NormalizedTime, s.LocalTime.Milliseconds(), s.TotalDuration.Milliseconds())
	fmt.Fprintf(&b, "effects %d  particles %d\n", s.Effects, s.Particles)
	fmt.Fprintf(&b, "TPS %.1f", s.TPS)
	if s.Paused {
		b.WriteString("  [paused]")
	}
	b.WriteString("\nH hud  P pause  R respawn  F11 fullscreen")
	return b.String()
}

// HUD 左上角调试信息
type HUD struct {
	face text.Face
}

// NewHUD 使用内置 7x13 点阵字体
func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Face HUD 字体
func (h *HUD) Face() text.Face {
	return h.face
}

// Draw 绘制 HUD
func (h *HUD) Draw(screen *ebiten.Image, stats HUDStats) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 0xff, G: 0xe0, B: 0x80, A: 0xff})
	op.LineSpacing = 16
	text.Draw(screen, FormatHUD(stats), h.face, op)
}
