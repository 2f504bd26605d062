//go:build !linux
// +build !linux

package disk

import "os"

func openSnapshot(path string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	return os.OpenFile(path, flags, 0644)
}

func syncFile(f *os.File) error {
	return f.Sync()
}
