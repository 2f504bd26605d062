package disk

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// OutputSubdir is the directory under the data dir where snapshot
	// files land.
	OutputSubdir = "Output_yaml"

	// StampLayout is the UTC timestamp prefix of snapshot file names.
	StampLayout = "02_01_2006_15:04:05"

	outputSuffix = "_output.yaml"
)

// ResolveOutputPath returns the snapshot path for a run started at the
// given time.
func ResolveOutputPath(dataDir string, start time.Time) string {
	stamp := start.UTC().Format(StampLayout)
	return filepath.Join(dataDir, OutputSubdir, stamp+outputSuffix)
}

// EnsureOutputDir creates the output directory if missing and returns
// its path.
func EnsureOutputDir(dataDir string) (string, error) {
	dir := filepath.Join(dataDir, OutputSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
