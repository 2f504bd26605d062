package disk_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robolab-org/go-armsim/pkg/disk"
	"github.com/robolab-org/go-armsim/pkg/types"
)

func writeRunSnapshot(t *testing.T, dataDir, name string, records []types.LogRecord, mod time.Time) string {
	t.Helper()

	dir, err := disk.EnsureOutputDir(dataDir)
	if err != nil {
		t.Fatalf("ensure output dir: %v", err)
	}
	path := filepath.Join(dir, name)

	w := disk.NewSnapshotWriter(path, false)
	if _, err := w.Write(records); err != nil {
		t.Fatalf("write snapshot %s: %v", name, err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func recordsFor(i int) []types.LogRecord {
	return []types.LogRecord{
		types.NewLogRecord(float64(i), 0, types.Position{X: float64(i), Y: 0}),
	}
}

func TestPruneSnapshotsArchive(t *testing.T) {
	dataDir := t.TempDir()
	base := time.Now().Add(-4 * time.Hour)

	// Names deliberately sort against age; pruning must go by mtime.
	names := []string{
		"31_12_2025_23:59:59_output.yaml", // oldest
		"20_06_2026_08:00:00_output.yaml",
		"05_01_2026_10:00:00_output.yaml",
		"01_03_2026_12:00:00_output.yaml", // newest
	}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = writeRunSnapshot(t, dataDir, name, recordsFor(i), base.Add(time.Duration(i)*time.Hour))
	}

	pruned, err := disk.PruneSnapshots(dataDir, 2, "archive")
	if err != nil {
		t.Fatalf("PruneSnapshots: %v", err)
	}
	if pruned != 2 {
		t.Fatalf("pruned = %d, want 2", pruned)
	}

	for _, p := range paths[2:] {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("recent snapshot %s should be untouched: %v", p, err)
		}
	}
	for i, p := range paths[:2] {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("old snapshot %s should be gone, stat err = %v", p, err)
		}
		records, err := disk.ReadSnapshot(p + disk.ArchiveSuffix)
		if err != nil {
			t.Fatalf("read archive of %s: %v", p, err)
		}
		want := recordsFor(i)
		if len(records) != 1 || records[0] != want[0] {
			t.Errorf("archive %s content = %v, want %v", p, records, want)
		}
	}
}

func TestPruneSnapshotsDelete(t *testing.T) {
	dataDir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	old := writeRunSnapshot(t, dataDir, "01_01_2026_10:00:00_output.yaml", recordsFor(0), base)
	recent := writeRunSnapshot(t, dataDir, "02_01_2026_10:00:00_output.yaml", recordsFor(1), base.Add(time.Minute))

	pruned, err := disk.PruneSnapshots(dataDir, 1, "delete")
	if err != nil {
		t.Fatalf("PruneSnapshots: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("pruned = %d, want 1", pruned)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("old snapshot should be removed, stat err = %v", err)
	}
	if _, err := os.Stat(old + disk.ArchiveSuffix); !os.IsNotExist(err) {
		t.Errorf("delete policy must not leave an archive, stat err = %v", err)
	}
	if _, err := os.Stat(recent); err != nil {
		t.Errorf("recent snapshot should remain: %v", err)
	}
}

func TestPruneSnapshotsDisabledAndUnderLimit(t *testing.T) {
	dataDir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeRunSnapshot(t, dataDir, "01_01_2026_10:00:00_output.yaml", recordsFor(0), base)
	writeRunSnapshot(t, dataDir, "02_01_2026_10:00:00_output.yaml", recordsFor(1), base.Add(time.Minute))

	if pruned, err := disk.PruneSnapshots(dataDir, 0, "archive"); err != nil || pruned != 0 {
		t.Errorf("keep=0 should prune nothing, got %d, %v", pruned, err)
	}
	if pruned, err := disk.PruneSnapshots(dataDir, 5, "archive"); err != nil || pruned != 0 {
		t.Errorf("under limit should prune nothing, got %d, %v", pruned, err)
	}

	dir := filepath.Join(dataDir, disk.OutputSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("output dir has %d entries, want 2", len(entries))
	}
}
