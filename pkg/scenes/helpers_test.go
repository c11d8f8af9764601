package scenes

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/decker502/coinburst/internal/particle"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
	"github.com/decker502/coinburst/pkg/game"
	"github.com/decker502/coinburst/pkg/logging"
	"github.com/decker502/coinburst/pkg/systems"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeTuning struct {
	pending []*config.CoinBurstConfig
	polls   int
}

func (f *fakeTuning) Poll() *config.CoinBurstConfig {
	f.polls++
	if len(f.pending) == 0 {
		return nil
	}
	cfg := f.pending[0]
	f.pending = f.pending[1:]
	return cfg
}

// newTestEnv 使用 mock 时间和名字注册表（无真实贴图）构建场景环境
func newTestEnv(t *testing.T, effects int) (*Env, *game.MockTimeProvider) {
	t.Helper()

	log := logging.Nop()
	tuning := config.DefaultCoinBurstConfig()
	group := game.BuildCoinManifest(tuning.TexturePrefix, "gfx/CoinsGold", tuning.TextureCount)
	textures := game.NameRegistryFromGroup(group)

	mock := game.NewMockTimeProvider(epoch)
	pausable := game.NewPausableTimeProvider(mock)
	em := ecs.NewEntityManager()

	env := &Env{
		Log:       log,
		Entities:  em,
		Particles: systems.NewParticleSystem(em, textures, tuning, particle.NewSeededSource(7), log),
		Renderer:  systems.NewRenderSystem(em, log),
		Clock:     game.NewClock(pausable, log),
		Time:      pausable,
		Resources: game.NewResourceManager(fstest.MapFS{}, log),
		Settings:  game.NewSettingsManager(nil, log),
		Effects:   effects,
		Quit:      func() {},
	}
	return env, mock
}
