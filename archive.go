package resc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// ArchiveWriter receives compiled entries. Entry lifecycles never overlap:
// StartEntry, any number of Writes, then FinishEntry. An entry that is not
// finished is discarded, never committed.
type ArchiveWriter interface {
	StartEntry(name string) error
	io.Writer
	FinishEntry() error
	Close() error
}

// errNoEntry is returned for writes outside an entry lifecycle.
var errNoEntry = errors.New("no archive entry open")

// DirWriter writes each entry as a file in a directory. Entries are staged
// under a temporary name and renamed on finish, so aborted entries leave no
// committed output.
type DirWriter struct {
	dir  string
	f    *os.File
	name string
}

// NewDirWriter creates the output directory if needed.
func NewDirWriter(dir string) (*DirWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open output directory: %w", err)
	}
	return &DirWriter{dir: dir}, nil
}

func (w *DirWriter) StartEntry(name string) error {
	if err := w.discard(); err != nil {
		return err
	}
	f, err := os.CreateTemp(w.dir, ".resc-*")
	if err != nil {
		return err
	}
	w.f = f
	w.name = name
	return nil
}

func (w *DirWriter) Write(p []byte) (int, error) {
	if w.f == nil {
		return 0, errNoEntry
	}
	return w.f.Write(p)
}

func (w *DirWriter) FinishEntry() error {
	if w.f == nil {
		return errNoEntry
	}
	f, name := w.f, w.name
	w.f = nil
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), filepath.Join(w.dir, name))
}

func (w *DirWriter) Close() error {
	return w.discard()
}

// discard drops any staged entry that was never finished.
func (w *DirWriter) discard() error {
	if w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil
	f.Close()
	return os.Remove(f.Name())
}

// ZipWriter writes entries into a single zip container. Each entry is
// buffered and only committed to the container on FinishEntry, so a failed
// entry never reaches the archive.
type ZipWriter struct {
	f    *os.File
	zw   *zip.Writer
	buf  bytes.Buffer
	name string
	open bool
}

// NewZipWriter creates (or truncates) the container at path.
func NewZipWriter(path string) (*ZipWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open output archive: %w", err)
	}
	return &ZipWriter{f: f, zw: zip.NewWriter(f)}, nil
}

func (w *ZipWriter) StartEntry(name string) error {
	w.buf.Reset()
	w.name = name
	w.open = true
	return nil
}

func (w *ZipWriter) Write(p []byte) (int, error) {
	if !w.open {
		return 0, errNoEntry
	}
	return w.buf.Write(p)
}

func (w *ZipWriter) FinishEntry() error {
	if !w.open {
		return errNoEntry
	}
	w.open = false
	ew, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   w.name,
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	_, err = ew.Write(w.buf.Bytes())
	return err
}

func (w *ZipWriter) Close() error {
	w.open = false
	if err := w.zw.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
