package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/coinburst/pkg/app"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/embedded"
	"github.com/decker502/coinburst/pkg/game"
	"github.com/decker502/coinburst/pkg/logging"
)

const appName = "coinburst"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
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

	log, err := logging.New(logging.Options{
		Level:      cfg.EffectiveLogLevel(),
		ShowCaller: cfg.Verbose,
		File:       cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	assets := embedded.New(assetsFS)
	if cfg.AssetRoot != "" {
		if assets, err = embedded.FromDir(cfg.AssetRoot); err != nil {
			return err
		}
	}

	tuning, err := app.LoadTuning(cfg, assets)
	if err != nil {
		return err
	}

	settings := openSettings(log)

	gameApp, err := app.NewApp(app.Options{
		Config:   cfg,
		Assets:   assets,
		Tuning:   tuning,
		Log:      log,
		Settings: settings,
	})
	if err != nil {
		return err
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.RenderWidth, config.RenderHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// openSettings 打开设置存储；失败时降级为不持久化
func openSettings(log *zap.SugaredLogger) *game.SettingsManager {
	storage, err := game.OpenSettingsStorage(appName)
	if err != nil {
		log.Warnw("settings will not be saved", "error", err)
		storage = nil
	}
	return game.NewSettingsManager(storage, log.Named("Settings"))
}
