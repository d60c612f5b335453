// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config selects and assembles the allocator strategy an embedding
// program hands to delegate factories.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"code.hybscloud.com/deleg"
	"code.hybscloud.com/deleg/instrument"
)

// Strategy names an allocator strategy.
type Strategy string

const (
	StrategyHeap   Strategy = "heap"
	StrategyBypass Strategy = "bypass"
	StrategyPool   Strategy = "pool"
)

// Config describes the allocator chain.
type Config struct {
	Allocator Strategy `yaml:"allocator" toml:"allocator"`
	Log       bool     `yaml:"log" toml:"log"`
	Metrics   bool     `yaml:"metrics" toml:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Allocator: StrategyHeap}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file.
// Missing fields take their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config load failed (%s): unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate reports an unknown strategy. An empty strategy means heap.
func (c *Config) Validate() error {
	switch c.Allocator {
	case "":
		c.Allocator = StrategyHeap
	case StrategyHeap, StrategyBypass, StrategyPool:
	default:
		return fmt.Errorf("unknown allocator strategy %q", c.Allocator)
	}
	return nil
}

// Chain is the assembled allocator together with its counting stage.
type Chain struct {
	deleg.Allocator
	Counts *deleg.Counting
}

// Build assembles base → Counting → Logged → Metered.
// logger is used when Log is set, reg when Metrics is set.
func (c Config) Build(logger zerolog.Logger, reg prometheus.Registerer) (Chain, error) {
	if err := c.Validate(); err != nil {
		return Chain{}, err
	}
	var base deleg.Allocator
	switch c.Allocator {
	case StrategyBypass:
		base = deleg.Bypass{}
	case StrategyPool:
		base = deleg.NewPool()
	default:
		base = deleg.Heap{}
	}
	counts := deleg.NewCounting(base)
	var alloc deleg.Allocator = counts
	if c.Log {
		alloc = instrument.Logged(alloc, logger)
	}
	if c.Metrics {
		m, err := instrument.Metered(alloc, reg)
		if err != nil {
			return Chain{}, fmt.Errorf("register allocator metrics: %w", err)
		}
		alloc = m
	}
	return Chain{Allocator: alloc, Counts: counts}, nil
}
