package dlq

import "time"

// PersistBatch is the single entry point the foreground ingest path calls
// when a batch fails its primary write. It never blocks on replay or
// cleanup: it only checks the soft quota and writes one file.
func PersistBatch[T any](cfg Config, table string, records []T) (string, error) {
	if !cfg.Enabled {
		return "", ErrDisabled
	}
	if err := CheckQuota(cfg.BasePath, cfg.MaxDiskMB, len(records)); err != nil {
		return "", err
	}
	return Persist(cfg.BasePath, table, records, time.Now().UTC())
}
