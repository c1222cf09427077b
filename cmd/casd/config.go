package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/njchilds90/gocas"
)

// Duration reads "15s"-style strings from TOML and YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ServerConfig is the casd settings file.
type ServerConfig struct {
	Addr              string   `toml:"addr" yaml:"addr"`
	ReadHeaderTimeout Duration `toml:"read_header_timeout" yaml:"read_header_timeout"`
	ReadTimeout       Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout      Duration `toml:"write_timeout" yaml:"write_timeout"`
	IdleTimeout       Duration `toml:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log    LogConfig    `toml:"log" yaml:"log"`
	Engine gocas.Config `toml:"engine" yaml:"engine"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // json, text, or empty for auto
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:              ":8080",
		ReadHeaderTimeout: Duration{5 * time.Second},
		ReadTimeout:       Duration{15 * time.Second},
		WriteTimeout:      Duration{15 * time.Second},
		IdleTimeout:       Duration{60 * time.Second},
		ShutdownTimeout:   Duration{10 * time.Second},
		Log:               LogConfig{Level: "info"},
		Engine:            gocas.DefaultConfig(),
	}
}

func loadServerConfig(path string) (ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read config: %w", err)
	}
	return parseServerConfig(data, gocas.DetectFormat(path))
}

func parseServerConfig(data []byte, format gocas.Format) (ServerConfig, error) {
	cfg := defaultServerConfig()
	if err := gocas.DecodeInto(data, format, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.Addr == "" {
		return ServerConfig{}, fmt.Errorf("config: addr must not be empty")
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return ServerConfig{}, err
	}
	if err := cfg.Engine.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: unknown log level %q", s)
}

// newLogger writes text to a terminal and JSON everywhere else unless the
// format is set explicitly.
func newLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	level, _ := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}
	format := cfg.Format
	if format == "" {
		format = "json"
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "text"
		}
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
