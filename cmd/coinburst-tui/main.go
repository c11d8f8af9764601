// coinburst-tui 在终端里播放金币爆发效果
//
// 使用与图形版相同的粒子系统和时钟，把 800x450 的逻辑坐标映射到终端单元格。
//
//	go run ./cmd/coinburst-tui -effects 2 -seed 42
//
// 按键：q/Esc/Ctrl-C 退出，p 暂停，r 重新开始
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/decker502/coinburst/internal/particle"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
	"github.com/decker502/coinburst/pkg/game"
	"github.com/decker502/coinburst/pkg/logging"
	"github.com/decker502/coinburst/pkg/systems"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "coinburst-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 终端被 tcell 占用，只在指定文件时输出日志
	log := logging.Nop()
	if cfg.LogFile != "" {
		if log, err = logging.New(logging.Options{Level: cfg.EffectiveLogLevel(), File: cfg.LogFile}); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	tuning := config.DefaultCoinBurstConfig()
	if cfg.TuningPath != "" {
		if tuning, err = config.LoadCoinBurstConfig(cfg.TuningPath); err != nil {
			return err
		}
	}

	var reloader *config.TuningReloader
	if cfg.Watch {
		reloader, err = config.NewTuningReloader(cfg.TuningPath, func(err error) {
			log.Warnw("tuning reload failed", "error", err)
		})
		if err != nil {
			return err
		}
		defer reloader.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := newViewer(cfg, tuning, log)
	if err := v.build(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	interval := time.Second / time.Duration(cfg.TPS)
	err = game.RunLoop(ctx, v.clock, interval, func() bool {
		if !v.drainEvents(events, screen) {
			return false
		}
		if reloader != nil {
			if next := reloader.Poll(); next != nil {
				v.particles.SetTuning(next)
			}
		}
		v.em.RemoveMarkedEntities()
		v.draw(screen)
		return true
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type viewer struct {
	cfg       *config.AppConfig
	log       *zap.SugaredLogger
	em        *ecs.EntityManager
	time      *game.PausableTimeProvider
	clock     *game.Clock
	particles *systems.ParticleSystem
	terminal  *systems.TerminalRenderSystem

	stageID  ecs.EntityID
	emitters []ecs.EntityID
}

func newViewer(cfg *config.AppConfig, tuning *config.CoinBurstConfig, log *zap.SugaredLogger) *viewer {
	var src particle.Source
	if cfg.Seed != 0 {
		src = particle.NewSeededSource(cfg.Seed)
	}

	// 终端不需要真实贴图，只需要知道哪些名字存在
	group := game.BuildCoinManifest(tuning.TexturePrefix, "gfx/"+game.CoinGroupName, tuning.TextureCount)
	textures := game.NameRegistryFromGroup(group)

	em := ecs.NewEntityManager()
	tp := game.NewPausableTimeProvider(nil)
	return &viewer{
		cfg:       cfg,
		log:       log,
		em:        em,
		time:      tp,
		clock:     game.NewClock(tp, log.Named("Clock")),
		particles: systems.NewParticleSystem(em, textures, tuning, src, log.Named("Particles")),
		terminal:  systems.NewTerminalRenderSystem(em),
	}
}

func (v *viewer) build() error {
	v.stageID = systems.NewContainer(v.em)
	tuning := v.particles.Tuning()
	for i := 0; i < v.cfg.Effects; i++ {
		start := tuning.EffectStart() + time.Duration(i)*tuning.EffectDuration()
		id, err := v.particles.NewCoinBurstAt(v.stageID, start)
		if err != nil {
			return err
		}
		v.emitters = append(v.emitters, id)
		v.clock.AddEffect(v.particles.Effect(id))
	}
	v.clock.Start()
	return nil
}

// drainEvents 处理所有待处理事件，返回 false 表示退出
func (v *viewer) drainEvents(events <-chan tcell.Event, screen tcell.Screen) bool {
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if !v.handleKey(ev.Key(), ev.Rune()) {
					return false
				}
			}
		default:
			return true
		}
	}
}

// handleKey 返回 false 表示退出
func (v *viewer) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'p':
			v.time.Toggle()
		case 'r':
			v.restart()
		}
	}
	return true
}

// restart 粒子回到中心，时间线从头开始
func (v *viewer) restart() {
	for _, id := range v.emitters {
		v.particles.ResetEmitter(id)
	}
	if err := v.clock.Stop(); err != nil {
		v.log.Warnw("failed to stop clock", "error", err)
	}
	v.clock.Start()
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()
	drawn := v.terminal.Draw(screen, v.stageID)

	lt, _ := v.clock.LocalTime()
	status := fmt.Sprintf(" lt %4dms/%dms  particles %d/%d ", lt.Milliseconds(), v.clock.TotalDuration().Milliseconds(), drawn, v.particles.ParticleCount())
	if v.time.IsPaused() {
		status += "[paused] "
	}
	status += " q quit  p pause  r restart"
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold)
	for i, r := range status {
		screen.SetContent(i, 0, r, nil, style)
	}
	screen.Show()
}
