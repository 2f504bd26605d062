package disk

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/robolab-org/go-armsim/util"
)

// ArchiveSuffix marks snapshots compressed by the archive cleanup
// policy. Archived files stay readable through ReadSnapshot.
const ArchiveSuffix = ".gz"

// PruneSnapshots applies the retention policy to run snapshots under
// dataDir, preserving the keep newest ones untouched. Older snapshots
// are gzip-archived in place or removed depending on policy ("archive"
// or "delete"). keep <= 0 disables pruning entirely.
func PruneSnapshots(dataDir string, keep int, policy string) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	pattern := filepath.Join(dataDir, OutputSubdir, "*"+outputSuffix)
	files, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	if len(files) <= keep {
		return 0, nil
	}

	type entry struct {
		path string
		mod  time.Time
	}
	entries := make([]entry, 0, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		entries = append(entries, entry{path: f, mod: info.ModTime()})
	}
	// Newest first; the timestamp in the name is not lexicographic.
	sort.Slice(entries, func(i, j int) bool { return entries[i].mod.After(entries[j].mod) })

	if len(entries) <= keep {
		return 0, nil
	}

	pruned := 0
	for _, e := range entries[keep:] {
		if policy == "delete" {
			if err := os.Remove(e.path); err != nil {
				util.Warn("Retention: remove %s failed: %v", e.path, err)
				continue
			}
		} else {
			if err := archiveSnapshot(e.path); err != nil {
				util.Warn("Retention: archive %s failed: %v", e.path, err)
				continue
			}
		}
		util.Debug("Retention: pruned %s", e.path)
		pruned++
	}
	return pruned, nil
}

// archiveSnapshot compresses a snapshot to <path>.gz and removes the
// original. A stale archive from an interrupted prune is overwritten.
func archiveSnapshot(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(path+ArchiveSuffix, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	gw := gzip.NewWriter(dst)
	if _, err := io.Copy(gw, src); err != nil {
		dst.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}
