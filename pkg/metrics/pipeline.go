package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SamplesPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armsim_samples_published_total",
		Help: "Total number of joint samples published by the generator",
	})

	SamplesRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armsim_samples_recorded_total",
		Help: "Total number of samples transformed and appended to the snapshot log",
	})

	SamplesRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armsim_samples_rejected_total",
		Help: "Total number of malformed samples rejected before processing",
	})

	SnapshotWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armsim_snapshot_write_failures_total",
		Help: "Total number of failed snapshot writes",
	})

	SamplesPerSec = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "armsim_samples_per_second",
		Help: "Current throughput in samples per second",
	})

	TransformLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "armsim_transform_latency_seconds",
		Help:    "Histogram of per-sample transform and persist latency",
		Buckets: prometheus.DefBuckets,
	})

	LogRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "armsim_log_records",
		Help: "Number of records accumulated in the snapshot log",
	})

	SnapshotBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "armsim_snapshot_bytes",
		Help: "Size of the last snapshot written to disk in bytes",
	})
)
