package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	ecomponents "github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"

	"github.com/decker502/coinburst/internal/particle"
	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
	"github.com/decker502/coinburst/pkg/game"
	"github.com/decker502/coinburst/pkg/systems"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Frame 一帧的采样，切片按粒子创建顺序排列
type Frame struct {
	LocalTime time.Duration
	Y         []float64
	Gravity   []float64
	Alpha     []float64
}

// Report 无窗口模拟的结果
type Report struct {
	Step     time.Duration
	Frames   []Frame
	Recycles int
}

// Simulate 用 mock 时间驱动一个发射器 frames 帧，每帧前进 step
func Simulate(tuning *config.CoinBurstConfig, seed uint64, frames int, step time.Duration, log *zap.SugaredLogger) (*Report, error) {
	group := game.BuildCoinManifest(tuning.TexturePrefix, "gfx/"+game.CoinGroupName, tuning.TextureCount)
	em := ecs.NewEntityManager()
	ps := systems.NewParticleSystem(em, game.NameRegistryFromGroup(group), tuning, particle.NewSeededSource(seed), log)

	mock := game.NewMockTimeProvider(epoch)
	clock := game.NewClock(mock, log)

	stage := systems.NewContainer(em)
	emitterID, err := ps.NewCoinBurst(stage)
	if err != nil {
		return nil, err
	}
	clock.AddEffect(ps.Effect(emitterID))
	clock.Start()

	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, emitterID)
	report := &Report{Step: step, Frames: make([]Frame, 0, frames)}
	for i := 0; i < frames; i++ {
		clock.Tick()
		f := Frame{LocalTime: clock.Frame()}
		for _, id := range emitter.Particles {
			p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
			sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			f.Y = append(f.Y, pos.Y)
			f.Gravity = append(f.Gravity, p.GravityAmount)
			f.Alpha = append(f.Alpha, sprite.Alpha)
		}
		report.Frames = append(report.Frames, f)
		mock.Advance(step)
	}

	for _, id := range emitter.Particles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		report.Recycles += p.Recycles
	}
	return report, nil
}

// series 取第 idx 个粒子在每帧的值
func (r *Report) series(idx int, pick func(Frame) []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(r.Frames))
	for _, f := range r.Frames {
		values := pick(f)
		if idx >= len(values) {
			continue
		}
		data = append(data, opts.LineData{Value: values[idx]})
	}
	return data
}

func (r *Report) particleCount() int {
	if len(r.Frames) == 0 {
		return 0
	}
	return len(r.Frames[0].Y)
}

func (r *Report) lineChart(title, yName string, pick func(Frame) []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d frames, step %v, %d recycles", len(r.Frames), r.Step, r.Recycles)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)

	xs := make([]int, len(r.Frames))
	for i := range xs {
		xs[i] = i
	}
	line.SetXAxis(xs)
	for i := 0; i < r.particleCount(); i++ {
		line.AddSeries(fmt.Sprintf("p%d", i), r.series(i, pick))
	}
	return line
}

// Render 输出 y、重力和 alpha 三张折线图的 HTML 页面
func (r *Report) Render(w io.Writer) error {
	page := ecomponents.NewPage()
	page.PageTitle = "coin burst"
	page.AddCharts(
		r.lineChart("Particle y", "y", func(f Frame) []float64 { return f.Y }),
		r.lineChart("Gravity amount", "gravity", func(f Frame) []float64 { return f.Gravity }),
		r.lineChart("Alpha", "alpha", func(f Frame) []float64 { return f.Alpha }),
	)
	return page.Render(w)
}
