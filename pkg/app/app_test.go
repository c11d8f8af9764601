package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/embedded"
	"github.com/decker502/coinburst/pkg/game"
	"github.com/decker502/coinburst/pkg/logging"
	"github.com/decker502/coinburst/pkg/scenes"
)

const testManifest = `version: "1.0"
base_path: assets
groups:
  CoinsGold:
    images:
      - id: CoinsGold000
        path: gfx/coins/a
      - id: CoinsGold001
        path: gfx/coins/b.png
`

func TestPrepareResources(t *testing.T) {
	tuning := config.DefaultCoinBurstConfig()

	tests := []struct {
		name     string
		fsys     fstest.MapFS
		wantErr  bool
		wantID   string
		wantPath string
		wantSize int
	}{
		{
			name:     "no manifest uses naming convention",
			fsys:     fstest.MapFS{},
			wantID:   "CoinsGold008",
			wantPath: "assets/gfx/CoinsGold/008.png",
			wantSize: 9,
		},
		{
			name:     "manifest from file",
			fsys:     fstest.MapFS{ResourceConfigPath: {Data: []byte(testManifest)}},
			wantID:   "CoinsGold000",
			wantPath: "assets/gfx/coins/a.png",
			wantSize: 2,
		},
		{
			name: "manifest without coin group",
			fsys: fstest.MapFS{ResourceConfigPath: {Data: []byte(`version: "1.0"
base_path: assets
groups:
  Other:
    images:
      - id: x
        path: x.png
`)}},
			wantID:   "CoinsGold003",
			wantPath: "assets/gfx/CoinsGold/003.png",
			wantSize: 9,
		},
		{
			name:    "malformed manifest",
			fsys:    fstest.MapFS{ResourceConfigPath: {Data: []byte("groups: [")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm, err := prepareResources(tt.fsys, tuning, logging.Nop())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("prepareResources() error = %v", err)
			}

			got, ok := rm.ResolvePath(tt.wantID)
			if !ok || got != tt.wantPath {
				t.Errorf("ResolvePath(%q) = %q, %v; want %q", tt.wantID, got, ok, tt.wantPath)
			}
			group, err := rm.Group(game.CoinGroupName)
			if err != nil {
				t.Fatalf("Group() error = %v", err)
			}
			if len(group.Images) != tt.wantSize {
				t.Errorf("group size: got %d, want %d", len(group.Images), tt.wantSize)
			}
		})
	}
}

func TestLoadTuning(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadTuning(&config.AppConfig{}, embedded.New(fstest.MapFS{}))
		if err != nil {
			t.Fatalf("LoadTuning() error = %v", err)
		}
		if cfg.ParticleCount != config.DefaultCoinBurstConfig().ParticleCount {
			t.Errorf("ParticleCount: got %d", cfg.ParticleCount)
		}
	})

	t.Run("embedded file", func(t *testing.T) {
		assets := embedded.New(fstest.MapFS{TuningConfigPath: {Data: []byte("particleCount: 4\n")}})
		cfg, err := LoadTuning(&config.AppConfig{}, assets)
		if err != nil {
			t.Fatalf("LoadTuning() error = %v", err)
		}
		if cfg.ParticleCount != 4 {
			t.Errorf("ParticleCount: got %d, want 4", cfg.ParticleCount)
		}
	})

	t.Run("disk file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		if err := os.WriteFile(path, []byte("particleCount: 12\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		assets := embedded.New(fstest.MapFS{TuningConfigPath: {Data: []byte("particleCount: 4\n")}})
		cfg, err := LoadTuning(&config.AppConfig{TuningPath: path}, assets)
		if err != nil {
			t.Fatalf("LoadTuning() error = %v", err)
		}
		if cfg.ParticleCount != 12 {
			t.Errorf("ParticleCount: got %d, want 12", cfg.ParticleCount)
		}
	})
}

func TestNewAppRequiresConfig(t *testing.T) {
	if _, err := NewApp(Options{Assets: embedded.New(fstest.MapFS{})}); err == nil {
		t.Error("expected error without config")
	}
	if _, err := NewApp(Options{Config: &config.AppConfig{TPS: 60, Effects: 1}}); err == nil {
		t.Error("expected error without assets")
	}
}

func TestNewAppStartsWithLoadingScene(t *testing.T) {
	a, err := NewApp(Options{
		Config: &config.AppConfig{TPS: 60, Effects: 2},
		Assets: embedded.New(fstest.MapFS{}),
		Log:    logging.Nop(),
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	defer a.Close()

	if _, ok := a.GetSceneManager().GetCurrentScene().(*scenes.LoadingScene); !ok {
		t.Errorf("initial scene: got %T, want *scenes.LoadingScene", a.GetSceneManager().GetCurrentScene())
	}
	if a.Env().Effects != 2 {
		t.Errorf("Effects: got %d, want 2", a.Env().Effects)
	}
	if w, h := a.Layout(1920, 1080); w != config.RenderWidth || h != config.RenderHeight {
		t.Errorf("Layout() = %d, %d", w, h)
	}

	a.Quit()
	if err := a.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() after Quit = %v, want ebiten.Termination", err)
	}
}
