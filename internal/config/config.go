package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/newton/internal/newton"
)

var ErrInvalid = errors.New("invalid config")

// Config is shared by the newton CLI and the newtond service.
type Config struct {
	Steps           int          `toml:"steps"`
	MetricsTextfile string       `toml:"metrics_textfile"`
	Server          ServerConfig `toml:"server"`
}

type ServerConfig struct {
	Name        string   `toml:"name"`
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins"`
	MaxSteps    int      `toml:"max_steps"`
}

func Default() Config {
	return Config{
		Steps: newton.DefaultSteps,
		Server: ServerConfig{
			Name:        "newtond",
			Addr:        ":9200",
			CorsOrigins: []string{"http://localhost:3000"},
			MaxSteps:    1000,
		},
	}
}

type fileConfig struct {
	Steps           int        `toml:"steps"`
	MetricsTextfile string     `toml:"metrics_textfile"`
	Server          fileServer `toml:"server"`
}

type fileServer struct {
	Name        string   `toml:"name"`
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins"`
	MaxSteps    int      `toml:"max_steps"`
}

// Load reads path and overlays only the keys it defines onto Default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	cfg := overlay(Default(), raw, meta)
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for in-memory documents.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	cfg := overlay(Default(), raw, meta)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlay(cfg Config, raw fileConfig, meta toml.MetaData) Config {
	if meta.IsDefined("steps") {
		cfg.Steps = raw.Steps
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}
	if meta.IsDefined("server", "name") {
		cfg.Server.Name = strings.TrimSpace(raw.Server.Name)
	}
	if meta.IsDefined("server", "addr") {
		cfg.Server.Addr = strings.TrimSpace(raw.Server.Addr)
	}
	if meta.IsDefined("server", "cors_origins") {
		cfg.Server.CorsOrigins = normalizeOrigins(raw.Server.CorsOrigins)
	}
	if meta.IsDefined("server", "max_steps") {
		cfg.Server.MaxSteps = raw.Server.MaxSteps
	}
	return cfg
}

func Validate(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must be >= 0, got %d", ErrInvalid, cfg.Steps)
	}
	if strings.TrimSpace(cfg.Server.Name) == "" {
		return fmt.Errorf("%w: server.name is required", ErrInvalid)
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	}
	if cfg.Server.MaxSteps <= 0 {
		return fmt.Errorf("%w: server.max_steps must be > 0, got %d", ErrInvalid, cfg.Server.MaxSteps)
	}
	if cfg.Steps > cfg.Server.MaxSteps {
		return fmt.Errorf("%w: steps %d exceeds server.max_steps %d", ErrInvalid, cfg.Steps, cfg.Server.MaxSteps)
	}
	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
