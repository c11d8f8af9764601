package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/decker502/coinburst/internal/particle"
	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
)

// testTextures 测试用贴图表
type testTextures map[string]*ebiten.Image

func (t testTextures) GetTexture(name string) (*ebiten.Image, bool) {
	img, ok := t[name]
	return img, ok
}

// newCoinTextures 创建 CoinsGold000 ~ CoinsGold(count-1)，每张 size x size
func newCoinTextures(count, size int) testTextures {
	tex := make(testTextures, count)
	for i := 0; i < count; i++ {
		tex[particle.TextureName("CoinsGold", i)] = ebiten.NewImage(size, size)
	}
	return tex
}

// burstFixture 一个舞台 + 一个金币发射器
type burstFixture struct {
	em      *ecs.EntityManager
	ps      *ParticleSystem
	stage   ecs.EntityID
	emitter ecs.EntityID
	logs    *observer.ObservedLogs
}

func newBurstFixture(t *testing.T, textures TextureLookup, cfg *config.CoinBurstConfig) *burstFixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, textures, cfg, particle.NewSeededSource(42), zap.New(core).Sugar())
	stage := NewContainer(em)
	emitter, err := ps.NewCoinBurst(stage)
	if err != nil {
		t.Fatalf("NewCoinBurst: %v", err)
	}
	return &burstFixture{em: em, ps: ps, stage: stage, emitter: emitter, logs: logs}
}

// particleState 粒子三个组件
type particleState struct {
	p      *components.ParticleComponent
	sprite *components.SpriteComponent
	pos    *components.PositionComponent
}

func (f *burstFixture) particles(t *testing.T) []particleState {
	t.Helper()
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](f.em, f.emitter)
	if !ok {
		t.Fatal("emitter component missing")
	}
	out := make([]particleState, 0, len(emitter.Particles))
	for _, id := range emitter.Particles {
		p, ok1 := ecs.GetComponent[*components.ParticleComponent](f.em, id)
		sprite, ok2 := ecs.GetComponent[*components.SpriteComponent](f.em, id)
		pos, ok3 := ecs.GetComponent[*components.PositionComponent](f.em, id)
		if !ok1 || !ok2 || !ok3 {
			t.Fatalf("particle %d missing components", id)
		}
		out = append(out, particleState{p: p, sprite: sprite, pos: pos})
	}
	return out
}
