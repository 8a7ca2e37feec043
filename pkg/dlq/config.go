package dlq

// Config is the closed set of durability-queue options. It is shared
// read-only by the Store, Cleanup and Replay components; its lifetime
// is the lifetime of its longest holder (ordinarily the whole process).
type Config struct {
	// Enabled is the master switch. When false, PersistBatch returns
	// ErrDisabled and the background loops no-op.
	Enabled bool

	// BasePath is the root directory for all per-table queues.
	BasePath string

	// MaxDiskMB is the soft ceiling on total bytes under BasePath.
	MaxDiskMB int64

	// BatchTTLHours: files older than now-TTL are deleted by cleanup.
	BatchTTLHours int

	// ReplayOnStartup, when true, drains every table once at process
	// start before the background tick loop takes over.
	ReplayOnStartup bool

	// ReplayIntervalSecs is the period of the background replay tick.
	ReplayIntervalSecs int

	// CleanupIntervalSecs is the period of the background cleanup tick.
	CleanupIntervalSecs int

	// Tables is the closed set of table names this process's durability
	// queue serves. Binding the schema per table is the caller's
	// responsibility (see Persist/LoadEnvelope and the Replayer type).
	Tables []string
}
