//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前先把资源复制到本目录：
//
//	cp -r assets mobile/
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.coinburst -o build/android/coinburst.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/CoinBurst.xcframework -v ./mobile
package mobile

import (
	stdlog "log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/coinburst/pkg/app"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/embedded"
	"github.com/decker502/coinburst/pkg/game"
	"github.com/decker502/coinburst/pkg/logging"
)

func init() {
	cfg := &config.AppConfig{LogLevel: "info", TPS: 60, Effects: 1}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel})
	if err != nil {
		stdlog.Fatalf("logger init failed: %v", err)
	}

	assets := embedded.New(assetsFS)
	tuning, err := app.LoadTuning(cfg, assets)
	if err != nil {
		log.Fatalw("failed to load tuning", "error", err)
	}

	storage, err := game.OpenSettingsStorage("coinburst")
	if err != nil {
		log.Warnw("settings will not be saved", "error", err)
		storage = nil
	}

	gameApp, err := app.NewApp(app.Options{
		Config:   cfg,
		Assets:   assets,
		Tuning:   tuning,
		Log:      log,
		Settings: game.NewSettingsManager(storage, log.Named("Settings")),
	})
	if err != nil {
		log.Fatalw("app init failed", "error", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
