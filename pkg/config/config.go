package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Addr returns host:port for the health/metrics HTTP listener.
func (c *Config) Addr() string {
	addr := c.Server.Address
	if addr == "" {
		addr = "0.0.0.0"
	}
	p := c.Server.Port
	if p == 0 {
		p = 8080
	}
	return fmt.Sprintf("%s:%d", addr, p)
}

// ToDLQConfig converts the YAML-facing DLQConfig into a DLQRuntimeConfig,
// which has the shape of the plain dlq.Config the durability queue package
// operates on.
func (c DLQConfig) ToDLQConfig() DLQRuntimeConfig {
	return DLQRuntimeConfig{
		Enabled:             c.Enabled,
		BasePath:            c.BasePath,
		MaxDiskMB:           c.MaxDisk.MB(),
		BatchTTLHours:       c.BatchTTL.Hours(),
		ReplayOnStartup:     c.ReplayOnStartup,
		ReplayIntervalSecs:  c.ReplayInterval.Seconds(),
		CleanupIntervalSecs: c.CleanupInterval.Seconds(),
		Tables:              c.Tables,
	}
}

// DLQRuntimeConfig has the exact shape of dlq.Config. It is redeclared
// here, rather than importing pkg/dlq, so pkg/config stays independent of
// the domain package it configures; internal/app converts it to dlq.Config
// at the one call site that links both.
type DLQRuntimeConfig struct {
	Enabled             bool
	BasePath            string
	MaxDiskMB           int64
	BatchTTLHours       int
	ReplayOnStartup     bool
	ReplayIntervalSecs  int
	CleanupIntervalSecs int
	Tables              []string
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveConfigPath decides the config file path using the flag-provided
// value and the DLQ_CONFIG environment variable when the flag was not set.
func ResolveConfigPath(flagPath string, flagSet bool) string {
	if flagSet {
		return flagPath
	}
	if p := os.Getenv("DLQ_CONFIG"); p != "" {
		return p
	}
	return flagPath
}
