package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestDefaultCoinBurstConfig(t *testing.T) {
	cfg := DefaultCoinBurstConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if cfg.DefaultSprite != "CoinsGold000" {
		t.Errorf("DefaultSprite: got %q, want CoinsGold000", cfg.DefaultSprite)
	}
	if cfg.Gravity.Min != -1.5 || cfg.Gravity.Max != 3.5 {
		t.Errorf("Gravity: got %v", cfg.Gravity)
	}
	if cfg.Size.Min != 0.25 || cfg.Size.Max != 0.5 {
		t.Errorf("Size: got %v", cfg.Size)
	}
	if cfg.Rotation.Min != -1 || cfg.Rotation.Max != 1 {
		t.Errorf("Rotation: got %v", cfg.Rotation)
	}
	if cfg.XVelocity.Min != -5.5 || cfg.XVelocity.Max != 5.5 {
		t.Errorf("XVelocity: got %v", cfg.XVelocity)
	}
	if cfg.FadeStep() != 0.03 {
		t.Errorf("FadeStep: got %v, want 0.03", cfg.FadeStep())
	}
	if cfg.YLimit != 550 {
		t.Errorf("YLimit: got %v, want 550", cfg.YLimit)
	}
	if cfg.ParticleCount != 10 {
		t.Errorf("ParticleCount: got %d, want 10", cfg.ParticleCount)
	}
	if cfg.EffectStart() != 0 || cfg.EffectDuration() != 500*time.Millisecond {
		t.Errorf("window: got %v + %v", cfg.EffectStart(), cfg.EffectDuration())
	}
}

func TestParseCoinBurstConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *CoinBurstConfig)
	}{
		{
			name:        "empty file keeps defaults",
			yamlContent: "",
			validate: func(t *testing.T, cfg *CoinBurstConfig) {
				if cfg.ParticleCount != 10 {
					t.Errorf("ParticleCount: got %d, want 10", cfg.ParticleCount)
				}
			},
		},
		{
			name: "overrides",
			yamlContent: `
particleCount: 40
fadeAmount: 5
gravity:
  min: -2
  max: 4
maxGravity: 12
effectDurationMs: 800
`,
			validate: func(t *testing.T, cfg *CoinBurstConfig) {
				if cfg.ParticleCount != 40 {
					t.Errorf("ParticleCount: got %d, want 40", cfg.ParticleCount)
				}
				if cfg.FadeStep() != 0.05 {
					t.Errorf("FadeStep: got %v, want 0.05", cfg.FadeStep())
				}
				if cfg.Gravity.Min != -2 || cfg.Gravity.Max != 4 {
					t.Errorf("Gravity: got %v", cfg.Gravity)
				}
				if cfg.MaxGravity != 12 {
					t.Errorf("MaxGravity: got %v", cfg.MaxGravity)
				}
				if cfg.EffectDuration() != 800*time.Millisecond {
					t.Errorf("EffectDuration: got %v", cfg.EffectDuration())
				}
				// 未配置的字段保留默认值
				if cfg.YLimit != 550 {
					t.Errorf("YLimit: got %v, want 550", cfg.YLimit)
				}
			},
		},
		{
			name: "inverted size range",
			yamlContent: `
size:
  min: 0.6
  max: 0.5
`,
			wantErr:     true,
			errContains: "size range invalid",
		},
		{
			name:        "zero duration",
			yamlContent: "effectDurationMs: 0\n",
			wantErr:     true,
			errContains: "effectDurationMs",
		},
		{
			name:        "texture count must cover nt == 1",
			yamlContent: "textureCount: 8\n",
			wantErr:     true,
			errContains: "textureCount",
		},
		{
			name:        "negative cap",
			yamlContent: "maxGravity: -1\n",
			wantErr:     true,
			errContains: "maxGravity",
		},
		{
			name:        "malformed yaml",
			yamlContent: "particleCount: [1, 2\n",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseCoinBurstConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadCoinBurstConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coin_burst.yaml")
	if err := os.WriteFile(path, []byte("yLimit: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCoinBurstConfig(path)
	if err != nil {
		t.Fatalf("LoadCoinBurstConfig: %v", err)
	}
	if cfg.YLimit != 500 {
		t.Errorf("YLimit: got %v, want 500", cfg.YLimit)
	}

	if _, err := LoadCoinBurstConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadCoinBurstConfigFS(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/config/coin_burst.yaml": {Data: []byte("particleCount: 3\n")},
	}

	cfg, err := LoadCoinBurstConfigFS(fsys, "assets/config/coin_burst.yaml")
	if err != nil {
		t.Fatalf("LoadCoinBurstConfigFS: %v", err)
	}
	if cfg.ParticleCount != 3 {
		t.Errorf("ParticleCount: got %d, want 3", cfg.ParticleCount)
	}
}

func TestCoinBurstConfig_Clone(t *testing.T) {
	cfg := DefaultCoinBurstConfig()
	clone := cfg.Clone()
	clone.Gravity.Max = 9

	if cfg.Gravity.Max != 3.5 {
		t.Errorf("clone mutated original: %v", cfg.Gravity)
	}
}
