package config

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/decker502/coinburst/internal/particle"
	"gopkg.in/yaml.v3"
)

// CoinBurstConfig 金币爆发效果的可调参数
//
// 默认值与最初硬编码的常量一致；配置文件中缺省的字段保留默认值。
//
// 配置文件位置: assets/config/coin_burst.yaml
type CoinBurstConfig struct {
	// DefaultSprite 粒子创建时使用的贴图
	DefaultSprite string `yaml:"defaultSprite"`

	// TexturePrefix 动画贴图名前缀，帧号三位补零追加在后面
	TexturePrefix string `yaml:"texturePrefix"`

	// AnimationFrames 一个效果周期内循环的帧数，帧号 = floor(nt * AnimationFrames)
	AnimationFrames int `yaml:"animationFrames"`

	// TextureCount 需要加载的贴图数量（000 ~ TextureCount-1）
	TextureCount int `yaml:"textureCount"`

	// ParticleCount 每个发射器的粒子数
	ParticleCount int `yaml:"particleCount"`

	// 随机范围 [min, max)
	Gravity   particle.Range `yaml:"gravity"`
	Size      particle.Range `yaml:"size"`
	Rotation  particle.Range `yaml:"rotation"`
	XVelocity particle.Range `yaml:"xVelocity"`

	// FadeAmount 淡入速度，每帧 alpha 增加 FadeAmount/100
	FadeAmount float64 `yaml:"fadeAmount"`

	// YLimit 粒子 y >= YLimit 时回收
	YLimit float64 `yaml:"yLimit"`

	// GravityScale 每帧 y += GravityAmount * GravityScale
	GravityScale float64 `yaml:"gravityScale"`

	// RotationDivisor 每帧 rotation += RotationDelta / RotationDivisor
	RotationDivisor float64 `yaml:"rotationDivisor"`

	// GravityStepDivisor 每帧 GravityAmount += nt / GravityStepDivisor
	GravityStepDivisor float64 `yaml:"gravityStepDivisor"`

	// MaxGravity 重力累加上限，0 表示不设上限
	MaxGravity float64 `yaml:"maxGravity"`

	// 效果时间窗口（毫秒）
	EffectStartMs    int `yaml:"effectStartMs"`
	EffectDurationMs int `yaml:"effectDurationMs"`
}

// DefaultCoinBurstConfig 返回默认配置
func DefaultCoinBurstConfig() *CoinBurstConfig {
	return &CoinBurstConfig{
		DefaultSprite:      "CoinsGold000",
		TexturePrefix:      "CoinsGold",
		AnimationFrames:    8,
		TextureCount:       9,
		ParticleCount:      10,
		Gravity:            particle.Range{Min: -1.5, Max: 3.5},
		Size:               particle.Range{Min: 0.25, Max: 0.5},
		Rotation:           particle.Range{Min: -1.0, Max: 1.0},
		XVelocity:          particle.Range{Min: -5.5, Max: 5.5},
		FadeAmount:         3,
		YLimit:             550,
		GravityScale:       4.0,
		RotationDivisor:    25,
		GravityStepDivisor: 25,
		MaxGravity:         0,
		EffectStartMs:      0,
		EffectDurationMs:   500,
	}
}

// LoadCoinBurstConfig 从磁盘加载配置
func LoadCoinBurstConfig(path string) (*CoinBurstConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coin burst config: %w", err)
	}
	return ParseCoinBurstConfig(data)
}

// LoadCoinBurstConfigFS 从文件系统（通常是嵌入资源）加载配置
func LoadCoinBurstConfigFS(fsys fs.FS, name string) (*CoinBurstConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read coin burst config %s: %w", name, err)
	}
	return ParseCoinBurstConfig(data)
}

// ParseCoinBurstConfig 解析 YAML，以默认配置为底
func ParseCoinBurstConfig(data []byte) (*CoinBurstConfig, error) {
	cfg := DefaultCoinBurstConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse coin burst config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid coin burst config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *CoinBurstConfig) Validate() error {
	ranges := []struct {
		name string
		r    particle.Range
	}{
		{"gravity", c.Gravity},
		{"size", c.Size},
		{"rotation", c.Rotation},
		{"xVelocity", c.XVelocity},
	}
	for _, item := range ranges {
		if err := item.r.Validate(item.name); err != nil {
			return err
		}
	}

	if c.Size.Min <= 0 {
		return fmt.Errorf("size min must be > 0, got %.3f", c.Size.Min)
	}
	if c.TexturePrefix == "" {
		return fmt.Errorf("texturePrefix must not be empty")
	}
	if c.AnimationFrames <= 0 {
		return fmt.Errorf("animationFrames must be > 0, got %d", c.AnimationFrames)
	}
	if c.TextureCount <= c.AnimationFrames {
		return fmt.Errorf("textureCount(%d) must exceed animationFrames(%d)", c.TextureCount, c.AnimationFrames)
	}
	if c.ParticleCount < 0 {
		return fmt.Errorf("particleCount must be >= 0, got %d", c.ParticleCount)
	}
	if c.FadeAmount < 0 {
		return fmt.Errorf("fadeAmount must be >= 0, got %.3f", c.FadeAmount)
	}
	if c.RotationDivisor == 0 || c.GravityStepDivisor == 0 {
		return fmt.Errorf("rotationDivisor and gravityStepDivisor must be non-zero")
	}
	if c.MaxGravity < 0 {
		return fmt.Errorf("maxGravity must be >= 0 (0 = unbounded), got %.3f", c.MaxGravity)
	}
	if c.EffectStartMs < 0 {
		return fmt.Errorf("effectStartMs must be >= 0, got %d", c.EffectStartMs)
	}
	if c.EffectDurationMs <= 0 {
		return fmt.Errorf("effectDurationMs must be > 0, got %d", c.EffectDurationMs)
	}
	return nil
}

// FadeStep 每帧 alpha 增量
func (c *CoinBurstConfig) FadeStep() float64 {
	return c.FadeAmount / 100
}

// EffectStart 效果起始偏移
func (c *CoinBurstConfig) EffectStart() time.Duration {
	return time.Duration(c.EffectStartMs) * time.Millisecond
}

// EffectDuration 效果持续时间
func (c *CoinBurstConfig) EffectDuration() time.Duration {
	return time.Duration(c.EffectDurationMs) * time.Millisecond
}

// Clone 返回深拷贝（热重载时旧配置保持不变）
func (c *CoinBurstConfig) Clone() *CoinBurstConfig {
	clone := *c
	return &clone
}
