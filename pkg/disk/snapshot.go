package disk

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robolab-org/go-armsim/pkg/types"
	"github.com/robolab-org/go-armsim/util"
)

// SnapshotWriter persists an accumulated record log as one YAML
// document, rewriting the whole file on every call. The file handle
// never outlives a single Write.
type SnapshotWriter struct {
	path        string
	syncOnWrite bool
	mu          sync.Mutex
}

func NewSnapshotWriter(path string, syncOnWrite bool) *SnapshotWriter {
	return &SnapshotWriter{path: path, syncOnWrite: syncOnWrite}
}

func (w *SnapshotWriter) Path() string {
	return w.path
}

// Write truncates the snapshot file and writes all records to it,
// returning the number of bytes written.
func (w *SnapshotWriter) Write(records []types.LogRecord) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := yaml.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}

	f, err := openSnapshot(w.path)
	if err != nil {
		return 0, fmt.Errorf("open snapshot %s: %w", w.path, err)
	}

	n, err := f.Write(data)
	if err != nil {
		_ = f.Close()
		return n, fmt.Errorf("write snapshot %s: %w", w.path, err)
	}

	if w.syncOnWrite {
		if err := syncFile(f); err != nil {
			util.Warn("snapshot sync failed on %s: %v", w.path, err)
		}
	}

	if err := f.Close(); err != nil {
		return n, fmt.Errorf("close snapshot %s: %w", w.path, err)
	}
	return n, nil
}
