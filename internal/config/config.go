// Package config loads wordgraph.yaml and applies defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "wordgraph.yaml"

// Trace store drivers.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config is the runtime configuration of the CLI and servers.
type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Seed     int64        `mapstructure:"seed"`

	// MaxSessions caps the walk sessions served over HTTP and MCP.
	MaxSessions int `mapstructure:"max_sessions"`

	Trace    TraceConfig  `mapstructure:"trace"`
	Server   ServerConfig `mapstructure:"server"`
	MCP      MCPConfig    `mapstructure:"mcp"`
}

// TraceConfig selects where walk traces go.
type TraceConfig struct {
	Driver  string      `mapstructure:"driver"`
	Dir     string      `mapstructure:"dir"`
	Session string      `mapstructure:"session"`
	Redis   RedisConfig `mapstructure:"redis"`

	// EncryptionKey, when set, is a base64 AES-256 key used to encrypt
	// traces at rest. FallbackKeys are older keys still accepted on read.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
}

// RedisConfig configures the redis driver.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPath string `mapstructure:"metrics_path"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Transport string `mapstructure:"transport"` // stdio or sse
	Port      int    `mapstructure:"port"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:    "info",
		MaxSessions: 1024,
		Trace: TraceConfig{
			Driver:  DriverFile,
			Dir:     ".",
			Session: "random_walk",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "wordgraph:trace:",
			},
		},
		Server: ServerConfig{
			Port:        8080,
			MetricsPath: "/metrics",
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8081,
		},
	}
}

// Load reads the file at path over the defaults. An empty path reads
// DefaultFile if it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode maps raw onto cfg. Scalars are weakly typed and durations accept
// strings such as "10m".
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Trace.Driver {
	case DriverFile, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown trace driver %q (want file, redis or memory)", c.Trace.Driver)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("max_sessions must be positive, got %d", c.MaxSessions)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q (want stdio or sse)", c.MCP.Transport)
	}
	return nil
}
