//go:build unix

package resc

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps a file read-only, returning its bytes and a release
// function. Empty files and map failures fall back to a full read; the
// observable bytes are identical either way.
func mapFile(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, func() {}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return data, func() {}, nil
	}
	return data, func() { unix.Munmap(data) }, nil //nolint:errcheck // unmap failure leaves nothing to do
}
