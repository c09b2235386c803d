package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/newton/internal/config"
	"github.com/danmuck/newton/internal/logging"
	"github.com/danmuck/newton/internal/newton"
	"github.com/danmuck/newton/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "optional TOML config path")
	flag.Parse()

	logging.ConfigureRuntime()
	run(os.Stdin, os.Stdout, loadConfig(*configPath))
}

// loadConfig never fails the process; a bad file falls back to defaults.
func loadConfig(path string) config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		logging.Warnf("newton: %v; using defaults", err)
		return config.Default()
	}
	return cfg
}

// run reads one number, refines it and prints every step. Unreadable input
// is treated as zero.
func run(in io.Reader, out io.Writer, cfg config.Config) float64 {
	var value float64
	if _, err := fmt.Fscan(in, &value); err != nil {
		logging.Warnf("newton: read input: %v; continuing with 0", err)
		value = 0
	}
	logging.Debugf("newton: value=%v steps=%d", value, cfg.Steps)

	sink := newton.NewWriterSink(out)
	result := newton.Estimate(value, cfg.Steps, sink)
	if err := sink.Err(); err != nil {
		logging.Errf("newton: write diagnostics: %v", err)
	}
	if _, err := fmt.Fprintf(out, "\noutput: %s\n", newton.FormatFixed(result)); err != nil {
		logging.Errf("newton: write result: %v", err)
	}

	outcome := observability.RecordEstimate("cli", cfg.Steps, value, result)
	if outcome == observability.OutcomeNonFinite {
		logging.Warnf("newton: result for %v is not finite", value)
	}
	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logging.Errf("newton: %v", err)
		}
	}
	return result
}
