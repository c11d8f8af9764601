package scenes

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
)

func TestNewBurstSceneStaggersEffects(t *testing.T) {
	env, _ := newTestEnv(t, 3)

	scene, err := NewBurstScene(env)
	if err != nil {
		t.Fatalf("NewBurstScene() error = %v", err)
	}

	if got := len(scene.Emitters()); got != 3 {
		t.Fatalf("emitters: got %d, want 3", got)
	}
	if got := env.Particles.ParticleCount(); got != 30 {
		t.Errorf("ParticleCount() = %d, want 30", got)
	}
	if got := env.Clock.TotalDuration(); got != 1500*time.Millisecond {
		t.Errorf("TotalDuration() = %v, want 1.5s", got)
	}
	if !env.Clock.Running() {
		t.Error("clock should be running after scene creation")
	}

	for i, id := range scene.Emitters() {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](env.Entities, id)
		if !ok {
			t.Fatalf("emitter %d missing component", i)
		}
		want := time.Duration(i) * 500 * time.Millisecond
		if emitter.Start != want {
			t.Errorf("emitter %d start: got %v, want %v", i, emitter.Start, want)
		}
	}
}

func TestNewBurstSceneAtLeastOneEffect(t *testing.T) {
	env, _ := newTestEnv(t, 0)

	scene, err := NewBurstScene(env)
	if err != nil {
		t.Fatalf("NewBurstScene() error = %v", err)
	}
	if got := len(scene.Emitters()); got != 1 {
		t.Errorf("emitters: got %d, want 1", got)
	}
}

func TestBurstSceneStep(t *testing.T) {
	env, mock := newTestEnv(t, 2)
	scene, err := NewBurstScene(env)
	if err != nil {
		t.Fatalf("NewBurstScene() error = %v", err)
	}

	mock.Advance(250 * time.Millisecond)
	if got := scene.Step(); got != 1 {
		t.Fatalf("Step() dispatched %d effects, want 1", got)
	}

	stats := scene.Stats()
	if stats.LocalTime != 250*time.Millisecond {
		t.Errorf("LocalTime: got %v, want 250ms", stats.LocalTime)
	}
	if math.Abs(stats.NormalizedTime-0.5) > 1e-9 {
		t.Errorf("NormalizedTime: got %v, want 0.5", stats.NormalizedTime)
	}
	if stats.Particles != 20 || stats.Effects != 2 {
		t.Errorf("Stats() = %+v, want 20 particles and 2 effects", stats)
	}

	// 第二个效果的窗口
	mock.Advance(500 * time.Millisecond)
	scene.Step()
	second, _ := ecs.GetComponent[*components.EmitterComponent](env.Entities, scene.Emitters()[1])
	if second.Ticks != 1 {
		t.Errorf("second emitter ticks: got %d, want 1", second.Ticks)
	}
}

func TestBurstScenePauseFreezesTimeline(t *testing.T) {
	env, mock := newTestEnv(t, 1)
	scene, err := NewBurstScene(env)
	if err != nil {
		t.Fatalf("NewBurstScene() error = %v", err)
	}

	mock.Advance(100 * time.Millisecond)
	scene.Step()

	scene.TogglePause()
	if !scene.Paused() || !env.Time.IsPaused() {
		t.Fatal("scene should be paused")
	}
	mock.Advance(time.Second)

	lt, err := env.Clock.LocalTime()
	if err != nil {
		t.Fatalf("LocalTime() error = %v", err)
	}
	if lt != 100*time.Millisecond {
		t.Errorf("LocalTime while paused: got %v, want 100ms", lt)
	}

	scene.TogglePause()
	mock.Advance(50 * time.Millisecond)
	lt, _ = env.Clock.LocalTime()
	if lt != 150*time.Millisecond {
		t.Errorf("LocalTime after resume: got %v, want 150ms", lt)
	}
}

func TestBurstSceneAppliesReloadedTuning(t *testing.T) {
	env, _ := newTestEnv(t, 1)
	reloaded := config.DefaultCoinBurstConfig()
	reloaded.MaxGravity = 2
	source := &fakeTuning{pending: []*config.CoinBurstConfig{reloaded}}
	env.Tuning = source

	scene, err := NewBurstScene(env)
	if err != nil {
		t.Fatalf("NewBurstScene() error = %v", err)
	}

	scene.Step()
	if env.Particles.Tuning() != reloaded {
		t.Error("tuning was not applied after Step")
	}
	scene.Step()
	if source.polls != 2 {
		t.Errorf("polls: got %d, want 2", source.polls)
	}
	if env.Particles.Tuning() != reloaded {
		t.Error("nil poll result should keep the current tuning")
	}
}

func TestBurstSceneRespawn(t *testing.T) {
	env, mock := newTestEnv(t, 1)
	scene, err := NewBurstScene(env)
	if err != nil {
		t.Fatalf("NewBurstScene() error = %v", err)
	}

	for i := 0; i < 20; i++ {
		mock.Advance(16 * time.Millisecond)
		scene.Step()
	}

	scene.Respawn()

	lt, err := env.Clock.LocalTime()
	if err != nil {
		t.Fatalf("LocalTime() error = %v", err)
	}
	if lt != 0 {
		t.Errorf("LocalTime after respawn: got %v, want 0", lt)
	}

	cx, cy := config.ScreenCenter()
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](env.Entities, scene.Emitters()[0])
	for _, id := range emitter.Particles {
		pos, _ := ecs.GetComponent[*components.PositionComponent](env.Entities, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](env.Entities, id)
		if pos.X != cx || pos.Y != cy {
			t.Errorf("particle %d position: got (%v, %v), want center", id, pos.X, pos.Y)
		}
		if sprite.Alpha != 0 {
			t.Errorf("particle %d alpha: got %v, want 0", id, sprite.Alpha)
		}
	}
}

func TestBurstSceneToggleHUD(t *testing.T) {
	env, _ := newTestEnv(t, 1)
	scene, err := NewBurstScene(env)
	if err != nil {
		t.Fatalf("NewBurstScene() error = %v", err)
	}

	before := env.Settings.GetSettings().ShowHUD
	scene.ToggleHUD()
	if got := env.Settings.GetSettings().ShowHUD; got == before {
		t.Errorf("ShowHUD: got %v after toggle", got)
	}
}

func TestBurstSceneClose(t *testing.T) {
	env, _ := newTestEnv(t, 2)
	scene, err := NewBurstScene(env)
	if err != nil {
		t.Fatalf("NewBurstScene() error = %v", err)
	}
	scene.Pause()

	scene.Close()

	if got := len(env.Particles.Emitters()); got != 0 {
		t.Errorf("emitters after Close: got %d, want 0", got)
	}
	if got := env.Entities.EntityCount(); got != 0 {
		t.Errorf("entities after Close: got %d, want 0", got)
	}
	if env.Time.IsPaused() {
		t.Error("time should be resumed after Close")
	}
	// 已销毁的效果不再被时钟分发
	if got := env.Clock.Tick(); got != 0 {
		t.Errorf("Tick() after Close dispatched %d effects", got)
	}
}
