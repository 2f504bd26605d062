package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/robolab-org/go-armsim/pkg/disk"
	"github.com/robolab-org/go-armsim/pkg/types"
)

// armcat inspects snapshot files written by armsim.
func main() {
	dataDir := flag.String("data-dir", "armsim-data", "Data directory to search for snapshots")
	file := flag.String("file", "", "Explicit snapshot file (overrides discovery)")
	asJSON := flag.Bool("json", false, "Print records as JSON instead of a table")
	flag.Parse()

	path := *file
	if path == "" {
		var err error
		path, err = latestSnapshot(*dataDir)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
	}

	records, err := disk.ReadSnapshot(path)
	if err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			fmt.Println("❌ encode failed:", err)
			os.Exit(1)
		}
		return
	}

	for i, rec := range records {
		fmt.Printf("%4d  joints=(%.2f, %.2f)  end=(%.4f, %.4f)\n",
			i+1, rec.JointAngles[0], rec.JointAngles[1], rec.EndEffector[0], rec.EndEffector[1])
	}
	printSummary(path, records)
}

// latestSnapshot returns the most recently written snapshot under the
// data directory.
func latestSnapshot(dataDir string) (string, error) {
	pattern := filepath.Join(dataDir, disk.OutputSubdir, "*_output.yaml")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no snapshots found under %s", filepath.Join(dataDir, disk.OutputSubdir))
	}

	var newest string
	var newestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = m
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no readable snapshots under %s", dataDir)
	}
	return newest, nil
}

func printSummary(path string, records []types.LogRecord) {
	var farthest float64
	for _, rec := range records {
		if d := math.Hypot(rec.EndEffector[0], rec.EndEffector[1]); d > farthest {
			farthest = d
		}
	}
	fmt.Printf("\n%d records in %s (farthest end effector %.4f from base)\n",
		len(records), path, farthest)
}
