package app

import (
	"encoding/json"
	"net/http"

	"durableq/pkg/dlq"
	"durableq/pkg/logger"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := dlq.Stats(a.dlqCfg)
	if err != nil {
		logger.Error("dlq_health_stats_error", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":          "ok",
		"enabled":         a.dlqCfg.Enabled,
		"batches_pending": stats.BatchesPending,
		"records_pending": stats.RecordsPending,
		"disk_usage_mb":   stats.DiskUsageMB,
	})
}
