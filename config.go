package pyast

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/pyast/interpreter"
	"gopkg.in/yaml.v3"
)

// Config configures a Parser.
type Config struct {
	// Python is the interpreter executable.
	Python string `yaml:"python"`
	// Timeout bounds a single interpreter run, zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
	// MaxProcesses bounds the interpreters running at once, zero uses the number of CPUs.
	MaxProcesses int `yaml:"maxProcesses"`
	// Mode is the default ast.parse mode of ParseMode.
	Mode         string      `yaml:"mode"`
	TypeComments bool        `yaml:"typeComments"`
	Cache        CacheConfig `yaml:"cache"`
	Log          LogConfig   `yaml:"log"`
}

type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"maxEntries"`
}

type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		Python:  interpreter.DefaultPython,
		Timeout: time.Minute,
		Mode:    string(interpreter.ModeExec),
		Cache:   CacheConfig{MaxEntries: interpreter.DefaultCacheEntries},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML configuration from URL on top of DefaultConfig.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}

// Validate checks the configured mode, log level and log format.
func (c *Config) Validate() error {
	if c.Mode != "" && !interpreter.Mode(c.Mode).Valid() {
		return fmt.Errorf("unsupported mode: %v", c.Mode)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %v", c.Log.Format)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %v", c.Timeout)
	}
	return nil
}

// NewLogger creates a logger writing to output as configured by Log.
func (c *Config) NewLogger(output io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(c.Log.Format, "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported log level: %v", level)
}
