package disk

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/mmap"
	"gopkg.in/yaml.v3"

	"github.com/robolab-org/go-armsim/pkg/types"
)

// ReadSnapshot memory-maps a snapshot file and decodes every record
// in it. Archived snapshots (ArchiveSuffix) are decompressed
// transparently. An empty file yields zero records.
func ReadSnapshot(path string) ([]types.LogRecord, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer r.Close()

	buf := make([]byte, r.Len())
	if r.Len() > 0 {
		if _, err := r.ReadAt(buf, 0); err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", path, err)
		}
	}

	if strings.HasSuffix(path, ArchiveSuffix) && len(buf) > 0 {
		gr, err := gzip.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("open archive %s: %w", path, err)
		}
		buf, err = io.ReadAll(gr)
		if cerr := gr.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("decompress archive %s: %w", path, err)
		}
	}

	var records []types.LogRecord
	if err := yaml.Unmarshal(buf, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return records, nil
}
