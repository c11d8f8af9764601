package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/game"
)

// LoadingScene 显示纹理加载进度，加载完成后切换到 next 创建的场景
type LoadingScene struct {
	env          *Env
	sceneManager *game.SceneManager
	done         <-chan error
	next         func() (game.Scene, error)

	face text.Face
	err  error
}

// NewLoadingScene 创建加载场景。done 由 ResourceManager.LoadResourceGroupAsync 返回。
func NewLoadingScene(env *Env, sm *game.SceneManager, done <-chan error, next func() (game.Scene, error)) *LoadingScene {
	return &LoadingScene{
		env:          env,
		sceneManager: sm,
		done:         done,
		next:         next,
		face:         NewHUD().Face(),
	}
}

// Err 加载或创建下一场景失败的错误
func (s *LoadingScene) Err() error {
	return s.err
}

// Update 非阻塞地检查加载结果
func (s *LoadingScene) Update(deltaTime float64) {
	if s.err != nil || s.done == nil {
		return
	}

	select {
	case err := <-s.done:
		s.done = nil
		if err != nil {
			s.err = err
			s.env.Log.Errorw("failed to load textures", "error", err)
			return
		}
		scene, err := s.next()
		if err != nil {
			s.err = err
			s.env.Log.Errorw("failed to create scene", "error", err)
			return
		}
		s.env.Log.Infow("textures loaded", "count", len(s.env.Resources.TextureNames()))
		s.sceneManager.SwitchTo(scene)
	default:
	}
}

// StatusText 当前显示的文字
func (s *LoadingScene) StatusText() string {
	if s.err != nil {
		return fmt.Sprintf("Loading failed: %v", s.err)
	}
	loaded, total := s.env.Resources.Progress()
	return fmt.Sprintf("Loading %d/%d", loaded, total)
}

// Draw 居中绘制进度文字
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	msg := s.StatusText()
	w, h := text.Measure(msg, s.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((config.RenderWidth-w)/2, (config.RenderHeight-h)/2)
	if s.err != nil {
		op.ColorScale.ScaleWithColor(color.RGBA{R: 0xff, G: 0x60, B: 0x60, A: 0xff})
	}
	text.Draw(screen, msg, s.face, op)
}
