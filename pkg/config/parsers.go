package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Flags holds parsed command-line flag values and which were explicitly set.
type Flags struct {
	Addr       string
	DLQBase    string
	ConfigPath string
	Set        map[string]bool
}

// EnvResult describes whether any DLQ_* environment variable was present.
type EnvResult struct {
	EnvUsed bool
}

// EffectiveConfigResult is the outcome of layering flags over a config
// file over environment variables.
type EffectiveConfigResult struct {
	Config *Config
	Addr   string
	Source string // "flags", "config", or "env"
}

// ParseConfigFlags defines and parses the process's command-line flags.
func ParseConfigFlags() Flags {
	addrPtr := flag.String("addr", ":8080", "health/metrics HTTP listen address")
	dlqPtr := flag.String("dlq-base", "./.dlq", "durability queue base path")
	cfgPtr := flag.String("config", "./config.yaml", "path to config file")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return Flags{Addr: *addrPtr, DLQBase: *dlqPtr, ConfigPath: *cfgPtr, Set: set}
}

// ParseConfigFile resolves the config path and loads the YAML file. A
// missing file is not an error: it yields a zero Config and fileExists=false
// so the caller falls through to flags/env.
func ParseConfigFile(flags Flags) (cfg *Config, fileExists bool, err error) {
	path := ResolveConfigPath(flags.ConfigPath, flags.Set["config"])
	cfg, err = Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, false, nil
		}
		return nil, false, err
	}
	return cfg, true, nil
}

// ParseConfigEnvs reads DLQ_* environment variables into a fresh Config.
// It never mutates a caller-provided config.
func ParseConfigEnvs() (*Config, EnvResult) {
	envCfg := &Config{}
	envUsed := false

	if v := os.Getenv("DLQ_ADDR"); v != "" {
		envUsed = true
		envCfg.Server.Address, envCfg.Server.Port = splitHostPort(v)
	}
	if v := os.Getenv("DLQ_LOG_LEVEL"); v != "" {
		envUsed = true
		envCfg.Logging.Level = v
	}
	if v := os.Getenv("DLQ_ENABLED"); v != "" {
		envUsed = true
		envCfg.DLQ.Enabled = parseBool(v)
	}
	if v := os.Getenv("DLQ_BASE_PATH"); v != "" {
		envUsed = true
		envCfg.DLQ.BasePath = v
	}
	if v := os.Getenv("DLQ_MAX_DISK_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			envUsed = true
			envCfg.DLQ.MaxDisk = SizeBytes(n << 20)
		}
	}
	if v := os.Getenv("DLQ_BATCH_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			envUsed = true
			envCfg.DLQ.BatchTTL = Duration(int64(n) * int64(3600_000_000_000))
		}
	}
	if v := os.Getenv("DLQ_REPLAY_ON_STARTUP"); v != "" {
		envUsed = true
		envCfg.DLQ.ReplayOnStartup = parseBool(v)
	}
	if v := os.Getenv("DLQ_REPLAY_INTERVAL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			envUsed = true
			envCfg.DLQ.ReplayInterval = Duration(int64(n) * int64(1_000_000_000))
		}
	}
	if v := os.Getenv("DLQ_CLEANUP_INTERVAL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			envUsed = true
			envCfg.DLQ.CleanupInterval = Duration(int64(n) * int64(1_000_000_000))
		}
	}
	if v := os.Getenv("DLQ_TABLES"); v != "" {
		envUsed = true
		envCfg.DLQ.Tables = parseList(v)
	}
	if v := os.Getenv("DLQ_REPLAY_SINK_DB_PATH"); v != "" {
		envUsed = true
		envCfg.DLQ.ReplaySinkDBPath = v
	}

	return envCfg, EnvResult{EnvUsed: envUsed}
}

// LoadEffectiveConfig picks a single source of truth: an explicit --config
// file takes precedence, then explicit flags, then a config file found at
// the default path, then environment variables.
func LoadEffectiveConfig(flags Flags, fileCfg *Config, fileExists bool, envCfg *Config, envRes EnvResult) (EffectiveConfigResult, error) {
	var res EffectiveConfigResult

	if flags.Set["config"] {
		if !fileExists {
			return res, fmt.Errorf("config file %s not found", flags.ConfigPath)
		}
		res.Config = fileCfg
		res.Addr = fileCfg.Addr()
		res.Source = "config"
		return res, nil
	}

	if flags.Set["addr"] || flags.Set["dlq-base"] {
		out := &Config{}
		if fileExists {
			*out = *fileCfg
		}
		if flags.Set["addr"] {
			out.Server.Address, out.Server.Port = splitHostPort(flags.Addr)
		}
		if flags.Set["dlq-base"] {
			out.DLQ.BasePath = flags.DLQBase
		}
		res.Config = out
		res.Addr = out.Addr()
		res.Source = "flags"
		return res, nil
	}

	if fileExists {
		res.Config = fileCfg
		res.Addr = fileCfg.Addr()
		res.Source = "config"
		return res, nil
	}

	res.Config = envCfg
	res.Addr = envCfg.Addr()
	res.Source = "env"
	return res, nil
}

func splitHostPort(addr string) (string, int) {
	host, portStr, ok := strings.Cut(addr, ":")
	if !ok {
		return addr, 0
	}
	port, _ := strconv.Atoi(portStr)
	return host, port
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func parseList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
