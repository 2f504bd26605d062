package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robolab-org/go-armsim/util"
)

// Normalize clamps tunable knobs back to sane defaults. Semantic
// fields (sample_target, link lengths) are left untouched so Validate
// can reject them.
func (cfg *Config) Normalize() {
	if cfg.SampleRate <= 0 {
		util.Warn("Invalid sample_rate (%d), defaulting to 30/s", cfg.SampleRate)
		cfg.SampleRate = 30
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		cfg.Topic = "joint_states"
	}

	// disk snapshot
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "armsim-data"
	}
	if cfg.SnapshotKeep < 0 {
		cfg.SnapshotKeep = 0
	}
	switch strings.ToLower(strings.TrimSpace(cfg.CleanupPolicy)) {
	case "archive", "":
		cfg.CleanupPolicy = "archive"
	case "delete":
		cfg.CleanupPolicy = "delete"
	default:
		util.Warn("Unknown cleanup_policy %q, defaulting to archive", cfg.CleanupPolicy)
		cfg.CleanupPolicy = "archive"
	}

	// internal channels
	if cfg.SubscriberChannelBufSize <= 0 {
		cfg.SubscriberChannelBufSize = 64
	}

	// observability
	if cfg.HealthCheckPort <= 0 {
		cfg.HealthCheckPort = 9080
	}
	if cfg.ExporterPort <= 0 {
		cfg.ExporterPort = 9100
	}

	// process log sink
	if cfg.LogMaxSizeMB <= 0 {
		cfg.LogMaxSizeMB = 10
	}
	if cfg.LogMaxBackups < 0 {
		cfg.LogMaxBackups = 3
	}

	// Every record appends to the snapshot and the whole snapshot is
	// rewritten per sample, so disk traffic grows quadratically.
	if cfg.SampleTarget > 100000 {
		util.Warn("sample_target %d is very large, snapshot rewrites will dominate disk traffic", cfg.SampleTarget)
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (cfg *Config) Validate() error {
	if cfg.SampleTarget < 1 {
		return fmt.Errorf("sample_target must be >= 1, got %d", cfg.SampleTarget)
	}
	if cfg.Link1 <= 0 {
		return fmt.Errorf("link_1 must be positive, got %v", cfg.Link1)
	}
	if cfg.Link2 <= 0 {
		return fmt.Errorf("link_2 must be positive, got %v", cfg.Link2)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	overrideEnvInt(&cfg.SampleTarget, "ARMSIM_SAMPLE_TARGET")
	overrideEnvInt(&cfg.SampleRate, "ARMSIM_SAMPLE_RATE")
	overrideEnvString(&cfg.Topic, "ARMSIM_TOPIC")
	overrideEnvFloat64(&cfg.Link1, "ARMSIM_LINK_1")
	overrideEnvFloat64(&cfg.Link2, "ARMSIM_LINK_2")
	overrideEnvFloat64(&cfg.Theta1Offset, "ARMSIM_THETA1_OFFSET")
	overrideEnvFloat64(&cfg.Theta2Offset, "ARMSIM_THETA2_OFFSET")
	overrideEnvString(&cfg.DataDir, "ARMSIM_DATA_DIR")
	overrideEnvBool(&cfg.SyncOnWrite, "ARMSIM_SYNC_ON_WRITE")
	overrideEnvInt(&cfg.SnapshotKeep, "ARMSIM_SNAPSHOT_KEEP")
	overrideEnvString(&cfg.CleanupPolicy, "ARMSIM_CLEANUP_POLICY")
	overrideEnvInt(&cfg.SubscriberChannelBufSize, "ARMSIM_SUB_CH_BUFFER")
	overrideEnvInt(&cfg.HealthCheckPort, "ARMSIM_HEALTH_PORT")
	overrideEnvBool(&cfg.EnableExporter, "ARMSIM_ENABLE_EXPORTER")
	overrideEnvInt(&cfg.ExporterPort, "ARMSIM_EXPORTER_PORT")
	overrideEnvString(&cfg.LogFile, "ARMSIM_LOG_FILE")
}

func overrideEnvInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		*target = util.ParseInt(v, *target)
	}
}

func overrideEnvFloat64(target *float64, key string) {
	if v := os.Getenv(key); v != "" {
		*target = util.ParseFloat(v, *target)
	}
}

func overrideEnvBool(target *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*target = util.ParseBool(v, *target)
	}
}

func overrideEnvString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
