package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Config is the effective process configuration: HTTP server, logging,
// and the durability queue's own settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	DLQ     DLQConfig     `yaml:"dlq"`
}

// ServerConfig controls the /healthz and /metrics HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// LoggingConfig controls the slog sink and level.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Sink  string `yaml:"sink"`
}

// DLQConfig mirrors dlq.Config, with size and duration fields in place of
// the MB/hours/seconds integers and an extra ReplaySinkDBPath for the
// reference sink; it exists separately so
// pkg/dlq has no YAML/flag/env dependency of its own, and to attach
// human-friendly unmarshaling (SizeBytes, Duration) at the config-loading
// boundary instead of the domain type.
type DLQConfig struct {
	Enabled             bool      `yaml:"enabled"`
	BasePath            string    `yaml:"base_path"`
	MaxDisk             SizeBytes `yaml:"max_disk"`
	BatchTTL            Duration  `yaml:"batch_ttl"`
	ReplayOnStartup     bool      `yaml:"replay_on_startup"`
	ReplayInterval      Duration  `yaml:"replay_interval"`
	CleanupInterval     Duration  `yaml:"cleanup_interval"`
	Tables              []string  `yaml:"tables"`
	ReplaySinkDBPath    string    `yaml:"replay_sink_db_path"`
}

// SizeBytes unmarshals from human-friendly strings like "256MB" or plain
// integers. Unit suffixes are binary: "256MB" and "256MiB" are both
// 256*2^20 bytes.
type SizeBytes int64

func (s *SizeBytes) UnmarshalYAML(node *yaml.Node) error {
	if node == nil {
		*s = 0
		return nil
	}
	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		*s = 0
		return nil
	}
	// Read decimal suffixes as binary ("256MB" -> "256MiB") so a size in
	// MB means the same 2^20-byte unit as MB() and dlq.Config.MaxDiskMB.
	human := raw
	if u := strings.ToUpper(raw); len(u) >= 2 && strings.HasSuffix(u, "B") && strings.ContainsAny(u[len(u)-2:len(u)-1], "KMGTPE") {
		human = raw[:len(raw)-1] + "iB"
	}
	if v, err := humanize.ParseBytes(human); err == nil {
		*s = SizeBytes(v)
		return nil
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*s = SizeBytes(i)
		return nil
	}
	return fmt.Errorf("invalid size value: %q", node.Value)
}

func (s SizeBytes) Int64() int64 { return int64(s) }

// MB returns the value in whole megabytes, the unit dlq.Config expects.
func (s SizeBytes) MB() int64 { return int64(s) / (1 << 20) }

// Duration unmarshals from strings like "30s" or plain numbers (seconds).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node == nil {
		*d = Duration(0)
		return nil
	}
	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		*d = Duration(0)
		return nil
	}
	if td, err := time.ParseDuration(raw); err == nil {
		*d = Duration(td)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*d = Duration(time.Duration(f * float64(time.Second)))
		return nil
	}
	return fmt.Errorf("invalid duration value: %q", node.Value)
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

// Seconds returns the whole-second count dlq.Config's interval fields expect.
func (d Duration) Seconds() int { return int(time.Duration(d) / time.Second) }

// Hours returns the whole-hour count dlq.Config.BatchTTLHours expects.
func (d Duration) Hours() int { return int(time.Duration(d) / time.Hour) }
