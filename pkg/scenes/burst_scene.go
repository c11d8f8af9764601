package scenes

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/ecs"
	"github.com/decker502/coinburst/pkg/systems"
)

var backgroundColor = color.RGBA{R: 0x1a, G: 0x12, B: 0x2e, A: 0xff}

// BurstScene 金币爆发场景
//
// 场景持有舞台容器和若干发射器；每个发射器作为一个效果注册到 Clock，
// 第 i 个效果的窗口从 i*duration 开始，所以多个效果在时间线上依次播放。
type BurstScene struct {
	env *Env

	stageID  ecs.EntityID
	emitters []ecs.EntityID

	hud     *HUD
	pauseUI *ebitenui.UI
	paused  bool
}

// NewBurstScene 创建舞台与发射器并启动时钟
func NewBurstScene(env *Env) (*BurstScene, error) {
	s := &BurstScene{
		env:     env,
		stageID: systems.NewContainer(env.Entities),
		hud:     NewHUD(),
	}

	count := env.Effects
	if count < 1 {
		count = 1
	}
	duration := env.Particles.Tuning().EffectDuration()
	base := env.Particles.Tuning().EffectStart()
	for i := 0; i < count; i++ {
		start := base + time.Duration(i)*duration
		id, err := env.Particles.NewCoinBurstAt(s.stageID, start)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to create coin burst %d: %w", i, err)
		}
		s.emitters = append(s.emitters, id)
		env.Clock.AddEffect(env.Particles.Effect(id))
	}

	s.pauseUI = NewPauseUI(s.hud.Face(), s.Resume, env.Quit)

	env.Clock.Start()
	env.Log.Infow("coin burst scene ready", "effects", count, "timeline", env.Clock.TotalDuration())
	return s, nil
}

// StageID 舞台容器实体
func (s *BurstScene) StageID() ecs.EntityID {
	return s.stageID
}

// Emitters 场景创建的发射器
func (s *BurstScene) Emitters() []ecs.EntityID {
	return append([]ecs.EntityID(nil), s.emitters...)
}

// Paused 是否暂停
func (s *BurstScene) Paused() bool {
	return s.paused
}

// Pause 冻结时间并显示暂停菜单
func (s *BurstScene) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.env.Time.Pause()
	s.env.Log.Debug("paused")
}

// Resume 恢复时间
func (s *BurstScene) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	s.env.Time.Resume()
	s.env.Log.Debug("resumed")
}

// TogglePause 切换暂停状态
func (s *BurstScene) TogglePause() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// ToggleHUD 切换 HUD 并保存设置
func (s *BurstScene) ToggleHUD() {
	settings := s.env.Settings.GetSettings()
	s.env.Settings.SetShowHUD(!settings.ShowHUD)
	if err := s.env.Settings.Save(); err != nil {
		s.env.Log.Warnw("failed to save settings", "error", err)
	}
}

// Respawn 把所有粒子放回中心并从头播放时间线
func (s *BurstScene) Respawn() {
	for _, id := range s.emitters {
		s.env.Particles.ResetEmitter(id)
	}
	if err := s.env.Clock.Stop(); err != nil {
		s.env.Log.Warnw("failed to stop clock", "error", err)
	}
	s.env.Clock.Start()
}

func (s *BurstScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.TogglePause()
	}
	if s.paused {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.ToggleHUD()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Respawn()
	}
}

// Update 处理输入后推进一帧
func (s *BurstScene) Update(deltaTime float64) {
	s.handleInput()
	if s.paused {
		s.pauseUI.Update()
		return
	}
	s.Step()
}

// Step 应用热重载的调参并驱动时钟，返回本帧更新的效果数量
func (s *BurstScene) Step() int {
	if s.env.Tuning != nil {
		if cfg := s.env.Tuning.Poll(); cfg != nil {
			s.env.Particles.SetTuning(cfg)
			s.env.Log.Infow("tuning reloaded", "particles", cfg.ParticleCount, "maxGravity", cfg.MaxGravity)
		}
	}
	n := s.env.Clock.Tick()
	s.env.Entities.RemoveMarkedEntities()
	return n
}

// Stats 汇总 HUD 数据
func (s *BurstScene) Stats() HUDStats {
	stats := HUDStats{
		TotalDuration: s.env.Clock.TotalDuration(),
		Particles:     s.env.Particles.ParticleCount(),
		Effects:       len(s.emitters),
		TPS:           ebiten.ActualTPS(),
		Paused:        s.paused,
	}
	if lt, err := s.env.Clock.LocalTime(); err == nil {
		stats.LocalTime = lt
	}
	// 显示当前窗口内的发射器的归一化时间
	for _, id := range s.emitters {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.env.Entities, id)
		if !ok {
			continue
		}
		if stats.LocalTime >= emitter.Start && stats.LocalTime < emitter.Start+emitter.Duration {
			stats.NormalizedTime = emitter.LastNormalizedTime
			break
		}
	}
	return stats
}

// Draw 绘制舞台、HUD 和暂停菜单
func (s *BurstScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.env.Renderer.Draw(screen, s.stageID)

	if s.env.Settings.GetSettings().ShowHUD {
		s.hud.Draw(screen, s.Stats())
	}
	if s.paused {
		s.pauseUI.Draw(screen)
	}
}

// Close 销毁发射器和舞台
func (s *BurstScene) Close() {
	for _, id := range s.emitters {
		s.env.Particles.DestroyEmitter(id)
	}
	s.emitters = nil
	s.env.Entities.DestroyEntity(s.stageID)
	s.env.Entities.RemoveMarkedEntities()
	if s.paused {
		s.env.Time.Resume()
		s.paused = false
	}
}
