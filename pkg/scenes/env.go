// Package scenes contains the loading and coin burst screens.
package scenes

import (
	"go.uber.org/zap"

	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
	"github.com/decker502/coinburst/pkg/game"
	"github.com/decker502/coinburst/pkg/systems"
)

// TuningSource 提供热重载后的调参；没有新配置时 Poll 返回 nil
type TuningSource interface {
	Poll() *config.CoinBurstConfig
}

// Env 场景共享的运行时对象，由 app.App 创建并持有
type Env struct {
	Log       *zap.SugaredLogger
	Entities  *ecs.EntityManager
	Particles *systems.ParticleSystem
	Renderer  *systems.RenderSystem
	Clock     *game.Clock
	Time      *game.PausableTimeProvider
	Resources *game.ResourceManager
	Settings  *game.SettingsManager

	// Tuning 热重载来源，可为 nil
	Tuning TuningSource

	// Effects 时间线上依次排列的金币效果数量
	Effects int

	// Quit 请求退出程序
	Quit func()
}
