// Package config loads the server configuration from config.yml with
// environment-variable overrides, writing the defaults to disk on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file consulted when no --config flag is given.
const DefaultPath = "config.yml"

// ServerConfig holds the listen address and transport mode.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
	Mode string `mapstructure:"mode" yaml:"mode"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	File        string `mapstructure:"file" yaml:"file"`
	MaxFileSize string `mapstructure:"max_file_size" yaml:"max_file_size"`
	BackupCount int    `mapstructure:"backup_count" yaml:"backup_count"`
}

// ExecutorConfig holds script-executor settings.
type ExecutorConfig struct {
	AllowedModules []string      `mapstructure:"allowed_modules" yaml:"allowed_modules"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ContentsDir    string        `mapstructure:"contents_dir" yaml:"contents_dir"`
}

// AuditConfig holds the invocation-history store settings.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Executor ExecutorConfig `mapstructure:"executor" yaml:"executor"`
	Audit    AuditConfig    `mapstructure:"audit" yaml:"audit"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 6789,
			Mode: "auto",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "text",
			File:        "logs/mcp-server.log",
			MaxFileSize: "10MB",
			BackupCount: 5,
		},
		Executor: ExecutorConfig{
			AllowedModules: []string{"math", "datetime", "json", "random", "types", "base64", "cryptography"},
			Timeout:        10 * time.Second,
			ContentsDir:    "contents",
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    "data/invocations.db",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads the config file at path, falling back to DefaultPath.
// A missing file is not an error: the defaults are written to disk and
// returned. Environment variables MCP_HOST, MCP_PORT and MCP_MODE override
// the server section.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := writeDefault(path, cfg); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
		applyEnv(cfg)
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	cfg := Default()
	setDefaults(v, cfg)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyEnv(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.mode", cfg.Server.Mode)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.max_file_size", cfg.Logging.MaxFileSize)
	v.SetDefault("logging.backup_count", cfg.Logging.BackupCount)
	v.SetDefault("executor.allowed_modules", cfg.Executor.AllowedModules)
	v.SetDefault("executor.timeout", cfg.Executor.Timeout)
	v.SetDefault("executor.contents_dir", cfg.Executor.ContentsDir)
	v.SetDefault("audit.enabled", cfg.Audit.Enabled)
	v.SetDefault("audit.path", cfg.Audit.Path)
	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
}

// applyEnv applies the short-form env overrides used by the transport scripts.
func applyEnv(cfg *Config) {
	if h := os.Getenv("MCP_HOST"); h != "" {
		cfg.Server.Host = h
	}
	if p := os.Getenv("MCP_PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			cfg.Server.Port = port
		}
	}
	if m := os.Getenv("MCP_MODE"); m != "" {
		cfg.Server.Mode = m
	}
}

func writeDefault(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host must not be empty")
	}
	switch c.Server.Mode {
	case "auto", "stdio", "http", "streamable-http", "sse", "rest":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	return nil
}

// ParseFileSize converts a human size string ("10MB", "1GB") to bytes.
// Unparseable input falls back to 10MB.
func ParseFileSize(s string) int64 {
	const fallback = 10 * 1024 * 1024

	s = strings.ToUpper(strings.TrimSpace(s))
	units := []struct {
		suffix     string
		multiplier int64
	}{
		{"GB", 1024 * 1024 * 1024},
		{"MB", 1024 * 1024},
		{"KB", 1024},
		{"B", 1},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			num := strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			f, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return fallback
			}
			return int64(f * float64(u.multiplier))
		}
	}
	return fallback
}
