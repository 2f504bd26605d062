//go:build linux
// +build linux

package disk

import (
	"os"

	"golang.org/x/sys/unix"
)

func openSnapshot(path string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, err
	}

	// Linux: sequential access hint
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	return f, nil
}

// syncFile pushes file data to stable storage without forcing a
// metadata flush.
func syncFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
