// Package app 提供应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：组装资源、ECS、时钟和场景，
// 并实现 ebiten.Game 接口。
package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/coinburst/internal/particle"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
	"github.com/decker502/coinburst/pkg/embedded"
	"github.com/decker502/coinburst/pkg/game"
	"github.com/decker502/coinburst/pkg/logging"
	"github.com/decker502/coinburst/pkg/scenes"
	"github.com/decker502/coinburst/pkg/systems"
)

const (
	// ResourceConfigPath 资源清单路径（相对于资源文件系统）
	ResourceConfigPath = "assets/config/resources.yaml"
	// TuningConfigPath 嵌入的调参文件路径
	TuningConfigPath = "assets/config/coin_burst.yaml"
	// defaultBasePath 没有资源清单时使用的根目录
	defaultBasePath = "assets"
)

// Options 定义应用启动参数
type Options struct {
	Config   *config.AppConfig
	Assets   *embedded.Assets
	Tuning   *config.CoinBurstConfig
	Log      *zap.SugaredLogger
	Settings *game.SettingsManager
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	env          *scenes.Env
	sceneManager *game.SceneManager
	log          *zap.SugaredLogger
	cancel       context.CancelFunc
	reloader     *config.TuningReloader

	tps  int
	quit bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadTuning 读取调参：优先磁盘文件，其次嵌入的 coin_burst.yaml，都没有时使用默认值
func LoadTuning(cfg *config.AppConfig, assets *embedded.Assets) (*config.CoinBurstConfig, error) {
	if cfg != nil && cfg.TuningPath != "" {
		return config.LoadCoinBurstConfig(cfg.TuningPath)
	}
	if assets != nil && assets.Exists(TuningConfigPath) {
		return config.LoadCoinBurstConfigFS(assets.FS(), TuningConfigPath)
	}
	return config.DefaultCoinBurstConfig(), nil
}

// prepareResources 创建资源管理器并确保金币贴图组存在
//
// 资源清单缺失时按命名约定生成；清单存在但没有金币组时补上该组。
func prepareResources(fsys fs.FS, tuning *config.CoinBurstConfig, log *zap.SugaredLogger) (*game.ResourceManager, error) {
	rm := game.NewResourceManager(fsys, log)
	manifest := game.BuildCoinManifest(tuning.TexturePrefix, "gfx/"+game.CoinGroupName, tuning.TextureCount)

	err := rm.LoadResourceConfig(ResourceConfigPath)
	switch {
	case err == nil:
		if _, gerr := rm.Group(game.CoinGroupName); gerr != nil {
			log.Warnw("resource config has no coin group, using naming convention", "group", game.CoinGroupName)
			rm.AddGroup(defaultBasePath, game.CoinGroupName, manifest)
		}
	case errors.Is(err, fs.ErrNotExist):
		log.Infow("no resource config, using naming convention", "path", ResourceConfigPath)
		rm.AddGroup(defaultBasePath, game.CoinGroupName, manifest)
	default:
		return nil, err
	}
	return rm, nil
}

// NewApp 创建并初始化应用
func NewApp(opts Options) (*App, error) {
	log := logging.OrNop(opts.Log)
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("app config is required")
	}
	if opts.Assets == nil {
		return nil, fmt.Errorf("assets are required")
	}
	tuning := opts.Tuning
	if tuning == nil {
		tuning = config.DefaultCoinBurstConfig()
	}
	settings := opts.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil, log.Named("Settings"))
	}

	rm, err := prepareResources(opts.Assets.FS(), tuning, log.Named("Resources"))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare resources: %w", err)
	}

	var src particle.Source
	if cfg.Seed != 0 {
		src = particle.NewSeededSource(cfg.Seed)
	}

	em := ecs.NewEntityManager()
	tp := game.NewPausableTimeProvider(nil)

	a := &App{
		sceneManager: game.NewSceneManager(),
		log:          log,
		tps:          cfg.TPS,
	}
	if a.tps <= 0 {
		a.tps = 60
	}

	env := &scenes.Env{
		Log:       log.Named("Scene"),
		Entities:  em,
		Particles: systems.NewParticleSystem(em, rm, tuning, src, log.Named("Particles")),
		Renderer:  systems.NewRenderSystem(em, log.Named("Render")),
		Clock:     game.NewClock(tp, log.Named("Clock")),
		Time:      tp,
		Resources: rm,
		Settings:  settings,
		Effects:   cfg.Effects,
		Quit:      a.Quit,
	}

	if cfg.Watch {
		reloader, err := config.NewTuningReloader(cfg.TuningPath, func(err error) {
			log.Warnw("tuning reload failed", "error", err)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to watch tuning file: %w", err)
		}
		a.reloader = reloader
		env.Tuning = reloader
		log.Infow("watching tuning file", "path", cfg.TuningPath)
	}
	a.env = env

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	done := rm.LoadResourceGroupAsync(ctx, game.CoinGroupName)

	loading := scenes.NewLoadingScene(env, a.sceneManager, done, func() (game.Scene, error) {
		return scenes.NewBurstScene(env)
	})
	a.sceneManager.SwitchTo(loading)

	log.Infow("app initialized", "assets", opts.Assets.Source(), "effects", cfg.Effects, "tps", cfg.TPS)
	return a, nil
}

// Quit 停止时钟，并在下一次 Update 时退出
func (a *App) Quit() {
	a.quit = true
	if a.env == nil {
		return
	}
	if err := a.env.Clock.Stop(); err != nil && !errors.Is(err, game.ErrClockNotStarted) {
		a.log.Warnw("failed to stop clock", "error", err)
	}
}

// Env 场景共享的运行时对象
func (a *App) Env() *scenes.Env {
	return a.env
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Update 更新逻辑，每个 tick 调用一次
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.RenderWidth, config.RenderHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(a.tps))
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	a.env.Settings.SetFullscreen(fullscreen)
	if err := a.env.Settings.Save(); err != nil {
		a.log.Warnw("failed to save settings", "error", err)
	}
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时 letterbox 填充黑色，并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.RenderWidth, config.RenderHeight
}

// Close 取消未完成的加载、关闭当前场景和文件监听
func (a *App) Close() {
	a.cancel()
	a.sceneManager.Close()
	if a.reloader != nil {
		if err := a.reloader.Close(); err != nil {
			a.log.Warnw("failed to close tuning watcher", "error", err)
		}
	}
}
