package config

import (
	"os"
	"strconv"
	"time"

	"nvme-validator/pkg/types"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// DefaultTemperatureLimit is the composite temperature above which a
// drive fails the health check, in Celsius.
const DefaultTemperatureLimit = 70.0

// Config holds the application configuration
type Config struct {
	LogDir           string
	ProbeTimeout     time.Duration
	ListenAddr       string // empty disables the metrics listener
	TemperatureLimit float64
	Profiles         []types.BenchProfile
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogDir:           getEnv("LOG_DIR", "/var/log/nvme-validator"),
		ProbeTimeout:     getEnvDuration("PROBE_TIMEOUT", 30*time.Second),
		ListenAddr:       getEnv("LISTEN_ADDR", ""),
		TemperatureLimit: getEnvFloat("TEMP_LIMIT_CELSIUS", DefaultTemperatureLimit),
		Profiles:         types.DefaultBenchProfiles(),
	}
}

// fileConfig mirrors the optional YAML configuration file
type fileConfig struct {
	LogDir           string        `yaml:"log_dir"`
	ProbeTimeout     string        `yaml:"probe_timeout"`
	ListenAddr       string        `yaml:"listen_addr"`
	TemperatureLimit float64       `yaml:"temperature_limit_celsius"`
	Profiles         []fileProfile `yaml:"bench_profiles"`
}

type fileProfile struct {
	Name            string `yaml:"name"`
	Mode            string `yaml:"mode"`
	BlockSize       string `yaml:"block_size"`
	Jobs            int    `yaml:"jobs"`
	QueueDepth      int    `yaml:"queue_depth"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

// LoadFile overlays settings from a YAML file onto the configuration.
// Fields absent from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}

	if fc.LogDir != "" {
		c.LogDir = fc.LogDir
	}
	if fc.ProbeTimeout != "" {
		d, err := time.ParseDuration(fc.ProbeTimeout)
		if err != nil {
			return errors.Wrapf(err, "invalid probe_timeout %q", fc.ProbeTimeout)
		}
		c.ProbeTimeout = d
	}
	if fc.ListenAddr != "" {
		c.ListenAddr = fc.ListenAddr
	}
	if fc.TemperatureLimit > 0 {
		c.TemperatureLimit = fc.TemperatureLimit
	}
	if len(fc.Profiles) > 0 {
		profiles := make([]types.BenchProfile, 0, len(fc.Profiles))
		for _, p := range fc.Profiles {
			if p.Name == "" || p.Mode == "" {
				return errors.Newf("bench profile entry missing name or mode")
			}
			profiles = append(profiles, types.BenchProfile{
				Name:       p.Name,
				Mode:       p.Mode,
				BlockSize:  p.BlockSize,
				Jobs:       p.Jobs,
				QueueDepth: p.QueueDepth,
				Duration:   time.Duration(p.DurationSeconds) * time.Second,
			})
		}
		c.Profiles = profiles
	}

	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
