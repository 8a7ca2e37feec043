package dlq

import (
	"os"

	"durableq/pkg/metrics"
)

// HealthStats is the read-only snapshot exposed to the process's health
// endpoint. Computing it only touches directory listings and file sizes,
// never envelope contents, so its cost is O(number of batch files), not
// O(number of records). RecordsPending is therefore an estimate, not an
// exact count: file_size_bytes/1024 per batch, summed.
type HealthStats struct {
	BatchesPending int
	RecordsPending int
	DiskUsageMB    float64
}

// Stats computes the current HealthStats and updates the BatchesPending
// and DiskUsageBytes gauges to match. It returns the zero value, without
// error, when the queue is disabled.
func Stats(cfg Config) (HealthStats, error) {
	if !cfg.Enabled {
		return HealthStats{}, nil
	}

	var stats HealthStats
	for _, table := range cfg.Tables {
		paths, err := List(cfg.BasePath, table)
		if err != nil {
			return HealthStats{}, err
		}
		stats.BatchesPending += len(paths)
		metrics.BatchesPending.WithLabelValues(table).Set(float64(len(paths)))
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			stats.RecordsPending += int(info.Size() / 1024)
		}
	}

	usage, err := DiskUsage(cfg.BasePath)
	if err != nil {
		return HealthStats{}, err
	}
	stats.DiskUsageMB = float64(usage) / (1 << 20)
	metrics.DiskUsageBytes.Set(float64(usage))

	return stats, nil
}
