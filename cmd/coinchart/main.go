// coinchart 无窗口运行金币爆发模拟，输出粒子轨迹的 HTML 图表
//
//	go run ./cmd/coinchart -frames 180 -seed 7 -o coinburst.html
//
// 用于调参：对比不同 coin_burst.yaml 下的下落速度、回收频率和淡入曲线。
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/logging"
)

func main() {
	var (
		tuningPath = flag.String("tuning", "", "Coin burst tuning YAML (default: built-in values)")
		frames     = flag.Int("frames", 180, "Number of frames to simulate")
		tps        = flag.Int("tps", 60, "Simulated ticks per second")
		seed       = flag.Uint64("seed", 1, "Random seed")
		output     = flag.String("o", "coinburst.html", "Output HTML file")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Options{Level: level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "coinchart: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if *frames <= 0 || *tps <= 0 {
		log.Fatalw("frames and tps must be > 0", "frames", *frames, "tps", *tps)
	}

	tuning := config.DefaultCoinBurstConfig()
	if *tuningPath != "" {
		if tuning, err = config.LoadCoinBurstConfig(*tuningPath); err != nil {
			log.Fatalw("failed to load tuning", "error", err)
		}
	}

	report, err := Simulate(tuning, *seed, *frames, time.Second/time.Duration(*tps), log.Named("Sim"))
	if err != nil {
		log.Fatalw("simulation failed", "error", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalw("failed to create output", "error", err)
	}
	if err := report.Render(f); err != nil {
		_ = f.Close()
		log.Fatalw("failed to render chart", "error", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalw("failed to write output", "error", err)
	}

	log.Infow("chart written", "path", *output, "frames", len(report.Frames), "recycles", report.Recycles)
	fmt.Println(*output)
}
