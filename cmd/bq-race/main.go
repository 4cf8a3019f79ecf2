// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// bq-race runs a producer/consumer experiment against a bq queue and
// verifies the per-producer sequencing contract. It exists to make the
// check-then-act race observable: run it with -lock split and nonzero
// processing delays, and the tolerated empty-queue misses appear in the
// final report while the sequencing contract keeps holding.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"gopkg.in/yaml.v3"

	"code.hybscloud.com/bq"
	"code.hybscloud.com/bq/harness"
)

// duration lets yaml.v3 decode Go duration strings such as "2s" or
// "10ms".
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// experimentConfig mirrors the YAML config file. Flags override the
// file for duration and lock mode.
type experimentConfig struct {
	Duration        duration   `yaml:"duration"`
	Lock            string     `yaml:"lock"` // split | unified | unlocked
	Capacity        int        `yaml:"capacity"`
	AutoShrink      bool       `yaml:"auto-shrink"`
	Starts          []int64    `yaml:"starts"`
	Consumers       int        `yaml:"consumers"`
	MaxBurst        int        `yaml:"max-burst"`
	ProducerPause   duration   `yaml:"producer-pause"`
	ProcessingTimes []duration `yaml:"processing-times"`
	Seed            int64      `yaml:"seed"`
}

func defaultConfig() experimentConfig {
	return experimentConfig{
		Duration:        duration(2 * time.Second),
		Lock:            "split",
		Capacity:        bq.DefaultGrowableCapacity,
		Starts:          []int64{10, 1},
		Consumers:       2,
		MaxBurst:        20,
		ProducerPause:   duration(10 * time.Millisecond),
		ProcessingTimes: []duration{duration(10 * time.Millisecond), duration(5 * time.Millisecond)},
	}
}

func loadConfig(path string) (experimentConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func buildQueue(cfg experimentConfig) (bq.Queue[int64], error) {
	b := bq.New(cfg.Capacity).Growable()
	switch cfg.Lock {
	case "split", "":
	case "unified":
		b.UnifiedLock()
	case "unlocked":
		b.Unlocked()
	default:
		return nil, fmt.Errorf("unknown lock mode %q (want split, unified or unlocked)", cfg.Lock)
	}
	if cfg.AutoShrink {
		b.AutoShrink()
	}
	return bq.BuildGrowable[int64](b), nil
}

func main() {
	var (
		configPath   string
		durationFlag time.Duration
		lock         string
		verbose      bool
	)
	flag.StringVar(&configPath, "config", "", "path to experiment YAML config")
	flag.DurationVar(&durationFlag, "duration", 0, "experiment duration (overrides config)")
	flag.StringVar(&lock, "lock", "", "lock mode: split, unified or unlocked (overrides config)")
	flag.BoolVar(&verbose, "v", false, "log every produce/consume event")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}
	if durationFlag > 0 {
		cfg.Duration = duration(durationFlag)
	}
	if lock != "" {
		cfg.Lock = lock
	}

	q, err := buildQueue(cfg)
	if err != nil {
		log.Error("building queue", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	processing := make([]time.Duration, len(cfg.ProcessingTimes))
	for i, d := range cfg.ProcessingTimes {
		processing[i] = time.Duration(d)
	}
	h := harness.New(q, harness.Config[int64]{
		Starts:          cfg.Starts,
		Consumers:       cfg.Consumers,
		MaxBurst:        cfg.MaxBurst,
		ProducerPause:   time.Duration(cfg.ProducerPause),
		ProcessingTimes: processing,
		Duration:        time.Duration(cfg.Duration),
		Seed:            cfg.Seed,
		Logger:          log,
	})

	log.Info("starting experiment",
		"lock", cfg.Lock,
		"producers", len(cfg.Starts),
		"consumers", cfg.Consumers,
		"duration", time.Duration(cfg.Duration),
	)

	report, err := h.Run(ctx)
	if err != nil {
		log.Error("experiment failed", "error", err)
		os.Exit(1)
	}

	log.Info("experiment finished",
		"produced", report.Produced,
		"consumed", report.Consumed,
		"empty-misses", report.EmptyMisses,
		"pending", report.Produced-report.Consumed,
	)

	if err := harness.VerifySequences(report.Values, cfg.Starts); err != nil {
		log.Error("sequencing contract violated", "error", err)
		os.Exit(1)
	}
	log.Info("sequencing contract holds")
}
