// internal/common/config/config.go
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig                  `mapstructure:"app"`
	Server     ServerConfig               `mapstructure:"server"`
	Logging    LoggingConfig              `mapstructure:"logging"`
	Generators map[string]GeneratorConfig `mapstructure:"generators"`
	Registry   RegistryConfig             `mapstructure:"registry"`
	Tracing    TracingConfig              `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host               string   `mapstructure:"host"`
	Port               int      `mapstructure:"port"`
	ReadTimeout        int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout       int      `mapstructure:"write_timeout"`    // milliseconds
	IdleTimeout        int      `mapstructure:"idle_timeout"`     // milliseconds
	ShutdownTimeout    int      `mapstructure:"shutdown_timeout"` // milliseconds
	MaxBodyBytes       int64    `mapstructure:"max_body_bytes"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Address returns host:port suitable for http.Server.Addr
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// GeneratorConfig holds the settings applicable to every entity generator.
type GeneratorConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RegistryConfig points at an optional generator registry override file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func (c *Config) String() string {
	return fmt.Sprintf("%s@%s (%s) on %s", c.App.Name, c.App.Version, c.App.Environment, c.Server.Address())
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
