package app

import (
	"fmt"

	"durableq/pkg/config"
)

// validateConfig performs quick, fail-fast validation of the effective
// configuration before starting the background loops and HTTP server.
func validateConfig(eff config.EffectiveConfigResult) error {
	dlq := eff.Config.DLQ
	if !dlq.Enabled {
		return nil
	}

	if dlq.BasePath == "" {
		return fmt.Errorf("durability queue enabled but dlq.base_path is empty")
	}
	if dlq.MaxDisk.Int64() <= 0 {
		return fmt.Errorf("durability queue enabled but dlq.max_disk is not set")
	}
	if dlq.BatchTTL.Duration() <= 0 {
		return fmt.Errorf("durability queue enabled but dlq.batch_ttl is not set")
	}
	if len(dlq.Tables) == 0 {
		return fmt.Errorf("durability queue enabled but dlq.tables is empty")
	}
	return nil
}
