package dlq

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"durableq/pkg/envelope"
	"durableq/pkg/logger"
)

const metadataDir = ".metadata"

// bytesPerRecordEstimate is the deliberately conservative per-record size
// used by CheckQuota before the real envelope is serialized. Real envelope
// sizes vary by schema; the constant is fixed, so a caller wanting a
// different estimate can only scale the recordCountEstimate it passes to
// CheckQuota.
const bytesPerRecordEstimate = 1024 // 1 KiB

// Persist atomically writes records as a single batch envelope under
// base/table/ and returns the path of the resulting file. The write goes
// to a .tmp sibling first; the rename to the final name is the commit
// point and is atomic because both names share a directory.
func Persist[T any](base, table string, records []T, now time.Time) (string, error) {
	if len(records) == 0 {
		return "", ioErrorf("persist %s: empty batch", table)
	}

	tableDir := filepath.Join(base, table)
	if err := os.MkdirAll(tableDir, 0o755); err != nil {
		return "", ioErrorf("create table dir %s: %v", tableDir, err)
	}

	env, err := envelope.New(table, records, now)
	if err != nil {
		return "", err
	}
	data, err := envelope.Encode(env)
	if err != nil {
		return "", err
	}

	name := buildName(now)
	finalPath := filepath.Join(tableDir, name)
	tmpPath := finalPath + tmpSuffix

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", ioErrorf("write %s: %v", tmpPath, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", ioErrorf("rename %s to %s: %v", tmpPath, finalPath, err)
	}

	return finalPath, nil
}

// LoadEnvelope reads and decodes a single batch file. Callers recover the
// concrete record type with envelope.DecodeRecords.
func LoadEnvelope(path string) (envelope.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return envelope.Envelope{}, ioErrorf("read %s: %v", path, err)
	}
	return envelope.Decode(data)
}

// Delete removes a single batch file. A not-found error is treated as a
// warning and returned as a nil error: delete is idempotent-at-the-
// semantic-level, since Cleanup and Replay may race to remove the same
// file and both must tolerate the other having already won.
func Delete(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("dlq_delete_already_gone", "path", path)
			return nil
		}
		return ioErrorf("delete %s: %v", path, err)
	}
	return nil
}

// List returns every batch file under base/table, sorted by name
// ascending (equivalent to chronological order, per the filename
// contract). A missing directory yields the empty slice, not an error.
func List(base, table string) ([]string, error) {
	tableDir := filepath.Join(base, table)
	entries, err := os.ReadDir(tableDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ioErrorf("list %s: %v", tableDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(tableDir, n)
	}
	return paths, nil
}

// DiskUsage recursively sums the size of every file under base. Individual
// stat/read errors are logged and skipped so the total remains best-
// effort; a base that does not exist yields 0, not an error.
func DiskUsage(base string) (int64, error) {
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return 0, nil
	}

	var total int64
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("dlq_disk_usage_walk_error", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Warn("dlq_disk_usage_stat_error", "path", path, "error", err)
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return total, ioErrorf("walk %s: %v", base, err)
	}
	return total, nil
}

// CheckQuota is a soft, pre-flight quota check. It is not serialized
// against Persist: two concurrent callers can
// both pass and both write, briefly exceeding the cap. That is accepted
// because the queue is an emergency buffer expected to rarely fill, the
// per-record estimate below is deliberately loose, and Cleanup's quota
// sweep trims retroactively.
func CheckQuota(base string, maxMB int64, recordCountEstimate int) error {
	current, err := DiskUsage(base)
	if err != nil {
		return err
	}
	estimate := int64(recordCountEstimate) * bytesPerRecordEstimate
	maxBytes := maxMB * (1 << 20)
	if current+estimate > maxBytes {
		return ErrQuotaExceeded
	}
	return nil
}
