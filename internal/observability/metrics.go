package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	syncRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance_sync",
		Subsystem: "sync",
		Name:      "runs_total",
		Help:      "Sync runs by outcome.",
	}, []string{"outcome"})
	rowsInsertedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance_sync",
		Subsystem: "sync",
		Name:      "rows_inserted_total",
		Help:      "Rows appended to the destination sheet.",
	})
	rowsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance_sync",
		Subsystem: "sync",
		Name:      "rows_skipped_total",
		Help:      "Source rows already present on the destination sheet.",
	})
	lastSuccessGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "attendance_sync",
		Subsystem: "sync",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful sync.",
	})
)

func init() {
	prometheus.MustRegister(syncRunsTotal, rowsInsertedTotal, rowsSkippedTotal, lastSuccessGauge)
}

// RecordSyncSuccess updates run counters after a completed sync.
func RecordSyncSuccess(inserted, skipped int) {
	syncRunsTotal.WithLabelValues("success").Inc()
	rowsInsertedTotal.Add(float64(inserted))
	rowsSkippedTotal.Add(float64(skipped))
	lastSuccessGauge.Set(float64(time.Now().Unix()))
}

// RecordSyncFailure counts a failed sync run.
func RecordSyncFailure() {
	syncRunsTotal.WithLabelValues("failure").Inc()
}
