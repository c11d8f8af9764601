package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig 应用启动配置
//
// 先从环境变量读取（COINBURST_*），再由命令行参数覆盖。
type AppConfig struct {
	// Verbose 启用详细日志输出（debug 级别）
	Verbose bool `env:"COINBURST_VERBOSE"`
	// LogLevel 日志级别：debug|info|warn|error
	LogLevel string `env:"COINBURST_LOG_LEVEL" envDefault:"warn"`
	// LogFile 日志输出文件，为空则输出到 stderr
	LogFile string `env:"COINBURST_LOG_FILE"`

	// AssetRoot 包含 assets/ 目录的磁盘路径，为空则使用嵌入资源
	AssetRoot string `env:"COINBURST_ASSET_ROOT"`
	// TuningPath 调参文件磁盘路径，为空则使用嵌入的 assets/config/coin_burst.yaml
	TuningPath string `env:"COINBURST_TUNING"`
	// Watch 监听调参文件变化并热重载（需要 TuningPath）
	Watch bool `env:"COINBURST_WATCH"`

	// TPS 每秒逻辑帧数
	TPS int `env:"COINBURST_TPS" envDefault:"60"`
	// Seed 随机种子，0 表示使用进程级随机源
	Seed uint64 `env:"COINBURST_SEED"`
	// Effects 同时注册的金币效果数量（依次错开一个周期）
	Effects int `env:"COINBURST_EFFECTS" envDefault:"1"`
}

// LoadAppConfig 从环境变量加载配置
func LoadAppConfig() (*AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// BindFlags 注册命令行参数，默认值取当前（环境变量）配置
func (c *AppConfig) BindFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "Enable verbose logging")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug|info|warn|error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Write logs to this file instead of stderr")
	fs.StringVar(&c.AssetRoot, "assets", c.AssetRoot, "Directory containing assets/ (default: embedded)")
	fs.StringVar(&c.TuningPath, "tuning", c.TuningPath, "Coin burst tuning YAML on disk (default: embedded)")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "Hot reload the tuning file when it changes")
	fs.IntVar(&c.TPS, "tps", c.TPS, "Logic ticks per second")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Random seed (0 = process random source)")
	fs.IntVar(&c.Effects, "effects", c.Effects, "Number of coin burst effects on the timeline")
}

// Validate 验证配置有效性
func (c *AppConfig) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be > 0, got %d", c.TPS)
	}
	if c.Effects <= 0 {
		return fmt.Errorf("effects must be > 0, got %d", c.Effects)
	}
	if c.Watch && c.TuningPath == "" {
		return fmt.Errorf("watch requires a tuning file on disk (-tuning)")
	}
	return nil
}

// EffectiveLogLevel Verbose 强制 debug
func (c *AppConfig) EffectiveLogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}
