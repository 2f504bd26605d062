package config

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robolab-org/go-armsim/util"
)

// Config represents the arm pipeline configuration including tunable
// geometry, calibration, and persistence options
type Config struct {
	// Pipeline settings
	SampleTarget int    `yaml:"sample_target" json:"sample.target"`
	SampleRate   int    `yaml:"sample_rate" json:"sample.rate"` // samples per second
	Topic        string `yaml:"topic" json:"topic"`

	// Arm geometry and calibration
	Link1        float64 `yaml:"link_1" json:"link.1"`
	Link2        float64 `yaml:"link_2" json:"link.2"`
	Theta1Offset float64 `yaml:"theta1_offset" json:"theta1.offset"` // degrees
	Theta2Offset float64 `yaml:"theta2_offset" json:"theta2.offset"` // degrees

	// Disk persistence
	DataDir     string `yaml:"data_dir" json:"data.dir"`
	SyncOnWrite bool   `yaml:"sync_on_write" json:"sync.on.write"`

	// Retention for snapshots left by previous runs. SnapshotKeep is
	// the number of newest run files preserved as-is; 0 keeps all.
	SnapshotKeep  int    `yaml:"snapshot_keep" json:"snapshot.keep"`
	CleanupPolicy string `yaml:"cleanup_policy" json:"cleanup.policy"` // archive or delete

	// Internal channel buffers
	SubscriberChannelBufSize int `yaml:"subscriber_channel_buffer_size" json:"subscriber.channel.buffer.size"`

	// Observability
	HealthCheckPort int           `yaml:"health_check_port" json:"health.check.port"`
	EnableExporter  bool          `yaml:"enable_exporter" json:"enable.exporter"`
	ExporterPort    int           `yaml:"exporter_port" json:"exporter.port"`
	LogLevel        util.LogLevel `yaml:"log_level" json:"log_level"`

	// Process log sink, rotated by size
	LogFile       string `yaml:"log_file" json:"log.file"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb" json:"log.max.size.mb"`
	LogMaxBackups int    `yaml:"log_max_backups" json:"log.max.backups"`
	LogCompress   bool   `yaml:"log_compress" json:"log.compress"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	configPath := flag.String("config", "", "Path to YAML/JSON config file")
	sampleTargetStr := flag.String("sample-target", "500", "Number of samples to record before shutdown")
	sampleRateStr := flag.String("sample-rate", "30", "Generator cadence in samples per second")
	topicStr := flag.String("topic", "joint_states", "Joint state topic name")
	link1Str := flag.String("link1", "1.0", "First arm segment length")
	link2Str := flag.String("link2", "1.0", "Second arm segment length")
	theta1OffsetStr := flag.String("theta1-offset", "0.0", "Joint 1 calibration offset in degrees")
	theta2OffsetStr := flag.String("theta2-offset", "0.0", "Joint 2 calibration offset in degrees")
	dataDirStr := flag.String("data-dir", "armsim-data", "Path for snapshot output")
	syncOnWriteStr := flag.String("sync-on-write", "false", "Force data to stable storage after each snapshot write")
	snapshotKeepStr := flag.String("snapshot-keep", "0", "Snapshots from previous runs to keep untouched (0 keeps all)")
	cleanupPolicyStr := flag.String("cleanup-policy", "archive", "How pruned snapshots are handled (archive, delete)")
	subChBufferStr := flag.String("sub-ch-buffer", "64", "Subscriber channel buffer size")
	healthPortStr := flag.String("health-port", "9080", "Health check server port")
	exporterStr := flag.String("exporter", "true", "Enable Prometheus exporter")
	exporterPortStr := flag.String("exporter-port", "9100", "Exporter port")
	logLevelStr := flag.String("log-level", "info", "Log Level (debug, info, warn, error)")
	logFileStr := flag.String("log-file", "", "Optional rotating log file path")

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" && *configPath == "" {
		*configPath = envPath
	}

	flag.Parse()

	applyDefaults(cfg, sampleTargetStr, sampleRateStr, topicStr, link1Str, link2Str,
		theta1OffsetStr, theta2OffsetStr, dataDirStr, syncOnWriteStr, snapshotKeepStr,
		cleanupPolicyStr, subChBufferStr, healthPortStr, exporterStr, exporterPortStr,
		logLevelStr, logFileStr)

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return nil, err
		}

		if strings.HasSuffix(*configPath, ".json") {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnvOverrides(cfg)

	applyExplicitFlags(cfg, sampleTargetStr, sampleRateStr, topicStr, link1Str, link2Str,
		theta1OffsetStr, theta2OffsetStr, dataDirStr, syncOnWriteStr, snapshotKeepStr,
		cleanupPolicyStr, subChBufferStr, healthPortStr, exporterStr, exporterPortStr,
		logLevelStr, logFileStr)

	cfg.Normalize()
	util.SetLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config, sampleTargetStr, sampleRateStr, topicStr, link1Str, link2Str,
	theta1OffsetStr, theta2OffsetStr, dataDirStr, syncOnWriteStr, snapshotKeepStr,
	cleanupPolicyStr, subChBufferStr, healthPortStr, exporterStr, exporterPortStr,
	logLevelStr, logFileStr *string) {

	cfg.SampleTarget = util.ParseInt(*sampleTargetStr, 500)
	cfg.SampleRate = util.ParseInt(*sampleRateStr, 30)
	cfg.Topic = *topicStr
	cfg.Link1 = util.ParseFloat(*link1Str, 1.0)
	cfg.Link2 = util.ParseFloat(*link2Str, 1.0)
	cfg.Theta1Offset = util.ParseFloat(*theta1OffsetStr, 0)
	cfg.Theta2Offset = util.ParseFloat(*theta2OffsetStr, 0)
	cfg.DataDir = *dataDirStr
	cfg.SyncOnWrite = util.ParseBool(*syncOnWriteStr, false)
	cfg.SnapshotKeep = util.ParseInt(*snapshotKeepStr, 0)
	cfg.CleanupPolicy = *cleanupPolicyStr
	cfg.SubscriberChannelBufSize = util.ParseInt(*subChBufferStr, 64)
	cfg.HealthCheckPort = util.ParseInt(*healthPortStr, 9080)
	cfg.EnableExporter = util.ParseBool(*exporterStr, true)
	cfg.ExporterPort = util.ParseInt(*exporterPortStr, 9100)
	cfg.LogLevel = parseLevelString(*logLevelStr)
	cfg.LogFile = *logFileStr
	cfg.LogMaxSizeMB = 10
	cfg.LogMaxBackups = 3
}

func applyExplicitFlags(cfg *Config, sampleTargetStr, sampleRateStr, topicStr, link1Str, link2Str,
	theta1OffsetStr, theta2OffsetStr, dataDirStr, syncOnWriteStr, snapshotKeepStr,
	cleanupPolicyStr, subChBufferStr, healthPortStr, exporterStr, exporterPortStr,
	logLevelStr, logFileStr *string) {

	if *sampleTargetStr != "500" {
		cfg.SampleTarget = util.ParseInt(*sampleTargetStr, cfg.SampleTarget)
	}
	if *sampleRateStr != "30" {
		cfg.SampleRate = util.ParseInt(*sampleRateStr, cfg.SampleRate)
	}
	if *topicStr != "joint_states" {
		cfg.Topic = *topicStr
	}
	if *link1Str != "1.0" {
		cfg.Link1 = util.ParseFloat(*link1Str, cfg.Link1)
	}
	if *link2Str != "1.0" {
		cfg.Link2 = util.ParseFloat(*link2Str, cfg.Link2)
	}
	if *theta1OffsetStr != "0.0" {
		cfg.Theta1Offset = util.ParseFloat(*theta1OffsetStr, cfg.Theta1Offset)
	}
	if *theta2OffsetStr != "0.0" {
		cfg.Theta2Offset = util.ParseFloat(*theta2OffsetStr, cfg.Theta2Offset)
	}
	if *dataDirStr != "armsim-data" {
		cfg.DataDir = *dataDirStr
	}
	if *syncOnWriteStr != "false" {
		cfg.SyncOnWrite = util.ParseBool(*syncOnWriteStr, cfg.SyncOnWrite)
	}
	if *snapshotKeepStr != "0" {
		cfg.SnapshotKeep = util.ParseInt(*snapshotKeepStr, cfg.SnapshotKeep)
	}
	if *cleanupPolicyStr != "archive" {
		cfg.CleanupPolicy = *cleanupPolicyStr
	}
	if *subChBufferStr != "64" {
		cfg.SubscriberChannelBufSize = util.ParseInt(*subChBufferStr, cfg.SubscriberChannelBufSize)
	}
	if *healthPortStr != "9080" {
		cfg.HealthCheckPort = util.ParseInt(*healthPortStr, cfg.HealthCheckPort)
	}
	if *exporterStr != "true" {
		cfg.EnableExporter = util.ParseBool(*exporterStr, cfg.EnableExporter)
	}
	if *exporterPortStr != "9100" {
		cfg.ExporterPort = util.ParseInt(*exporterPortStr, cfg.ExporterPort)
	}
	if *logLevelStr != "info" {
		cfg.LogLevel = parseLevelString(*logLevelStr)
	}
	if *logFileStr != "" {
		cfg.LogFile = *logFileStr
	}
}

func parseLevelString(s string) util.LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return util.LogLevelDebug
	case "info":
		return util.LogLevelInfo
	case "warn", "warning":
		return util.LogLevelWarn
	case "error":
		return util.LogLevelError
	default:
		return util.LogLevelInfo
	}
}
