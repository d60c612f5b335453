// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command wordcount counts generated words on local workers. The user
// functions of each worker are bound as delegates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"code.hybscloud.com/deleg/config"
)

var (
	app      = kingpin.New("wordcount", "Count generated words with delegate-bound user functions.")
	workers  = app.Flag("workers", "Create wordcount example with N workers").Short('n').Default("1").Uint()
	elements = app.Flag("elements", "Create wordcount example with S generated words").Short('s').Default("1").Uint()
	cfgPath  = app.Flag("config", "Allocator configuration file (yaml or toml)").Short('c').String()
	seed     = app.Flag("seed", "Seed of the word generator").Default("1").Uint64()
	top      = app.Flag("top", "Print the K most frequent words").Short('k').Default("10").Int()
	verbose  = app.Flag("verbose", "Log at debug level").Short('v').Bool()
)

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "wordcount").Logger()
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	logger := newLogger(*verbose)

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			logger.Fatal().Err(err).Msg("load configuration")
		}
	}
	chain, err := cfg.Build(logger, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal().Err(err).Msg("build allocator")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	input := generate(int(*elements), *seed)
	start := time.Now()
	counts, err := countWords(ctx, chain, input, int(*workers))
	if err != nil {
		logger.Fatal().Err(err).Msg("count words")
	}

	for _, wc := range topWords(counts, *top) {
		fmt.Printf("%s\t%d\n", wc.word, wc.count)
	}
	logger.Info().
		Str("allocator", string(cfg.Allocator)).
		Uint("workers", *workers).
		Int("distinct", len(counts)).
		Str("input", humanize.Bytes(inputBytes(input))).
		Int64("blocks", chain.Counts.Allocs()).
		Int64("live_blocks", chain.Counts.Live()).
		Dur("elapsed", time.Since(start)).
		Msg("word count done")
}
