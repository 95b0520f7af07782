package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/aretw0/ntmtrace/pkg/domain"
)

// FileName is the project config looked up in the working directory.
const FileName = "ntmtrace.toml"

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// StoreBackend selects where reports are persisted.
type StoreBackend string

const (
	StoreNone   StoreBackend = "none"
	StoreMemory StoreBackend = "memory"
	StoreFile   StoreBackend = "file"
	StoreRedis  StoreBackend = "redis"
)

// PathsConfig holds the batch layout.
type PathsConfig struct {
	InputDir  string `toml:"input_dir"`
	Machine   string `toml:"machine"`
	Params    string `toml:"params"`
	OutputDir string `toml:"output_dir"`
	Output    string `toml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string    `toml:"level"`
	Format LogFormat `toml:"format"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	Prefix   string        `toml:"prefix"`
	TTL      time.Duration `toml:"ttl"`
}

// StoreConfig holds report persistence settings.
type StoreConfig struct {
	Backend StoreBackend `toml:"backend"`
	Dir     string       `toml:"dir"`
	Redis   RedisConfig  `toml:"redis"`
}

// ServerConfig holds settings for the HTTP and MCP servers.
// MaxDepth and MaxSteps cap the limits of remote requests; a request asking
// for more, or for no limit, runs with the cap.
type ServerConfig struct {
	Port     int `toml:"port"`
	MaxDepth int `toml:"max_depth"`
	MaxSteps int `toml:"max_steps"`
}

// BatchConfig holds batch execution settings.
type BatchConfig struct {
	Parallelism int `toml:"parallelism"`
}

// Config is the project configuration.
type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	Logging LoggingConfig `toml:"logging"`
	Store   StoreConfig   `toml:"store"`
	Server  ServerConfig  `toml:"server"`
	Batch   BatchConfig   `toml:"batch"`
}

// Default returns the layout of a plain batch run:
// input/input.txt and input/NTM.csv in, output/output.txt out.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			InputDir:  "input",
			Machine:   "NTM.csv",
			Params:    "input.txt",
			OutputDir: "output",
			Output:    "output.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: LogFormatText,
		},
		Store: StoreConfig{
			Backend: StoreNone,
			Dir:     filepath.Join(".ntmtrace", "reports"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "ntmtrace:report:",
			},
		},
		Server: ServerConfig{
			Port:     8080,
			MaxDepth: 1000,
			MaxSteps: 100000,
		},
		Batch: BatchConfig{
			Parallelism: 1,
		},
	}
}

// Load loads configuration from path, merging with defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	switch c.Store.Backend {
	case StoreNone, StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Server.MaxDepth < 1 || c.Server.MaxSteps < 1 {
		return fmt.Errorf("server max_depth and max_steps must be positive")
	}
	if c.Batch.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1")
	}
	return nil
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Logging.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return level, nil
}

// ServerLimits returns the request ceilings of the servers.
func (c *Config) ServerLimits() (maxDepth, maxSteps domain.Limit) {
	return domain.Bounded(c.Server.MaxDepth), domain.Bounded(c.Server.MaxSteps)
}

// MachinePath returns the machine file path under baseDir.
func (c *Config) MachinePath(baseDir string) string {
	return c.resolve(baseDir, c.Paths.InputDir, c.Paths.Machine)
}

// ParamsPath returns the parameter file path under baseDir.
func (c *Config) ParamsPath(baseDir string) string {
	return c.resolve(baseDir, c.Paths.InputDir, c.Paths.Params)
}

// OutputPath returns the output file path under baseDir.
func (c *Config) OutputPath(baseDir string) string {
	return c.resolve(baseDir, c.Paths.OutputDir, c.Paths.Output)
}

func (c *Config) resolve(baseDir, dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	return filepath.Join(dir, name)
}
