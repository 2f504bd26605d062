package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robolab-org/go-armsim/util"
)

func init() {
	prometheus.MustRegister(SamplesPublished, SamplesRecorded, SamplesRejected, SnapshotWriteFailures)
	prometheus.MustRegister(SamplesPerSec, TransformLatency, LogRecords, SnapshotBytes)
}

func StartMetricsServer(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", port)
		util.Info("Prometheus exporter listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			util.Error("Failed to start metrics server: %v", err)
		}
	}()
}

// PushSample updates the per-sample metrics after one record has been
// transformed and persisted.
func PushSample(elapsedSeconds float64) {
	SamplesRecorded.Inc()
	TransformLatency.Observe(elapsedSeconds)
	if elapsedSeconds > 0 {
		SamplesPerSec.Set(1.0 / elapsedSeconds)
	}
}
