// Package metrics registers the durability queue's Prometheus
// instrumentation: gauges and counters for queue depth, disk usage,
// replay outcomes and supervisor restarts, served over promhttp.Handler
// at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchesPending is the number of persisted batch files awaiting
	// replay, per table, as of the most recent dlq.Stats call.
	BatchesPending = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "dlq",
		Name:      "batches_pending",
		Help:      "Number of durability-queue batch files currently on disk.",
	}, []string{"table"})

	// DiskUsageBytes is the total bytes on disk under the queue's base
	// path, as of the most recent dlq.Stats call.
	DiskUsageBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dlq",
		Name:      "disk_usage_bytes",
		Help:      "Total bytes used by the durability queue on disk.",
	})

	// ReplayedRecordsTotal counts records successfully replayed into the sink.
	ReplayedRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dlq",
		Name:      "replayed_records_total",
		Help:      "Records successfully replayed from the durability queue.",
	}, []string{"table"})

	// FailedBatchesTotal counts batches that failed replay and were left on disk.
	FailedBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dlq",
		Name:      "failed_batches_total",
		Help:      "Batches that failed replay and remain queued for a later attempt.",
	}, []string{"table"})

	// CleanupDeletedTotal counts batches removed by cleanup, split by reason.
	CleanupDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dlq",
		Name:      "cleanup_deleted_total",
		Help:      "Batches removed by the cleanup pass.",
	}, []string{"reason"})

	// SupervisorRestartsTotal counts restarts of supervised background loops.
	SupervisorRestartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dlq",
		Name:      "supervisor_restarts_total",
		Help:      "Restarts of a supervised background loop after panic or error.",
	}, []string{"loop"})
)

// ObserveCleanup records one cleanup pass's outcome.
func ObserveCleanup(expired, quota int) {
	CleanupDeletedTotal.WithLabelValues("expired").Add(float64(expired))
	CleanupDeletedTotal.WithLabelValues("quota").Add(float64(quota))
}

// ObserveReplay records one replay pass's outcome for a table.
func ObserveReplay(table string, replayed, failedBatches int) {
	ReplayedRecordsTotal.WithLabelValues(table).Add(float64(replayed))
	FailedBatchesTotal.WithLabelValues(table).Add(float64(failedBatches))
}
