package dlq

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"durableq/pkg/logger"
	"durableq/pkg/metrics"
)

// CleanupStats summarizes a single cleanup pass, suitable for logging or
// exposing on a metrics counter.
type CleanupStats struct {
	ExpiredDeleted int
	QuotaDeleted   int
	Errors         int
}

// batchFile pairs a path with its size, used by the quota sweep to delete
// oldest-first without re-statting files it has already seen.
type batchFile struct {
	path string
	size int64
}

// RunCleanup performs one cleanup pass: an age-based sweep (delete any
// batch whose filename timestamp is older than BatchTTLHours) followed by
// a disk-quota sweep (if usage still exceeds MaxDiskMB, delete batches
// from all configured tables in path order, i.e. table directory first and
// oldest-first within each table, until it doesn't). It is a no-op
// returning a zero CleanupStats when cfg.Enabled is false.
func RunCleanup(cfg Config, now time.Time) CleanupStats {
	var stats CleanupStats
	if !cfg.Enabled {
		return stats
	}

	cutoff := now.Add(-time.Duration(cfg.BatchTTLHours) * time.Hour)
	sweepExpired(cfg, cutoff, &stats)
	sweepQuota(cfg, &stats)

	metrics.ObserveCleanup(stats.ExpiredDeleted, stats.QuotaDeleted)
	logger.Info("dlq_cleanup_complete",
		"expired_deleted", stats.ExpiredDeleted,
		"quota_deleted", stats.QuotaDeleted,
		"errors", stats.Errors,
	)
	return stats
}

func sweepExpired(cfg Config, cutoff time.Time, stats *CleanupStats) {
	for _, table := range cfg.Tables {
		paths, err := List(cfg.BasePath, table)
		if err != nil {
			logger.Error("dlq_cleanup_list_error", "table", table, "error", err)
			stats.Errors++
			continue
		}
		for _, path := range paths {
			ts, err := parseNameTimestamp(filepath.Base(path))
			if err != nil {
				logger.Warn("dlq_cleanup_unparseable_name", "path", path, "error", err)
				continue
			}
			if ts.Before(cutoff) {
				if err := Delete(path); err != nil {
					logger.Error("dlq_cleanup_delete_error", "path", path, "error", err)
					stats.Errors++
					continue
				}
				stats.ExpiredDeleted++
			}
		}
	}
}

func sweepQuota(cfg Config, stats *CleanupStats) {
	maxBytes := cfg.MaxDiskMB * (1 << 20)

	usage, err := DiskUsage(cfg.BasePath)
	if err != nil {
		logger.Error("dlq_cleanup_disk_usage_error", "error", err)
		stats.Errors++
		return
	}
	if usage <= maxBytes {
		return
	}

	var files []batchFile
	for _, table := range cfg.Tables {
		paths, err := List(cfg.BasePath, table)
		if err != nil {
			logger.Error("dlq_cleanup_list_error", "table", table, "error", err)
			stats.Errors++
			continue
		}
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				logger.Warn("dlq_cleanup_stat_error", "path", path, "error", err)
				continue
			}
			files = append(files, batchFile{path: path, size: info.Size()})
		}
	}

	// Path order: filenames sort lexicographically in chronological order
	// (see buildName), so within one table directory this is oldest-first.
	// Across tables the directory name sorts first, so a table's newest
	// batch can be deleted before another table's oldest.
	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })

	for _, f := range files {
		if usage <= maxBytes {
			break
		}
		if err := Delete(f.path); err != nil {
			logger.Error("dlq_cleanup_delete_error", "path", f.path, "error", err)
			stats.Errors++
			continue
		}
		usage -= f.size
		stats.QuotaDeleted++
	}
}
