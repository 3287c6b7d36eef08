// Package respath classifies resource source paths.
//
// Resource files are expected to look like [--/res/]type[-qualifier]/name,
// e.g. res/layout-land/main.xml or res/values-en-rUS/strings.xml.
package respath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kunalshah912/resc/internal/config"
)

// ErrBadPath is returned when a path has no directory component to
// classify from.
var ErrBadPath = errors.New("bad resource path")

// Descriptor identifies one resource source file.
type Descriptor struct {
	// Source is the path as given on input.
	Source string
	// TypeDir is the type-directory name with any qualifier stripped.
	TypeDir string
	// Name is the base name up to the first dot.
	Name string
	// Extension is everything after the first dot, empty if none.
	Extension string

	// ConfigStr is the raw qualifier suffix of the directory name. It is
	// kept alongside the parsed form so output names reproduce the input
	// spelling exactly.
	ConfigStr string
	Config    config.Config
}

// Classify splits path into a Descriptor. It is pure and deterministic.
//
// The path must have at least a parent directory and a filename. The parent
// directory name splits on the first '-' into type and qualifier; the
// filename splits on the first '.' into name and extension.
func Classify(path string) (Descriptor, error) {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < 2 {
		return Descriptor{}, ErrBadPath
	}

	dir := parts[len(parts)-2]
	typeDir := dir
	var configStr string
	if dash := strings.IndexByte(dir, '-'); dash >= 0 {
		typeDir = dir[:dash]
		configStr = dir[dash+1:]
	}
	cfg, err := config.Parse(configStr)
	if err != nil {
		return Descriptor{}, err
	}

	filename := parts[len(parts)-1]
	name := filename
	var ext string
	if dot := strings.IndexByte(filename, '.'); dot >= 0 {
		name = filename[:dot]
		ext = filename[dot+1:]
	}
	if name == "" {
		return Descriptor{}, fmt.Errorf("%w: empty resource name in %q", ErrBadPath, path)
	}

	return Descriptor{
		Source:    path,
		TypeDir:   typeDir,
		Name:      name,
		Extension: ext,
		ConfigStr: configStr,
		Config:    cfg,
	}, nil
}

// OutputName derives the archive entry name for a descriptor:
// type[-qualifier]_name[.extension].flat. It is a pure function of the
// descriptor.
func OutputName(d Descriptor) string {
	var b strings.Builder
	b.WriteString(d.TypeDir)
	if d.ConfigStr != "" {
		b.WriteByte('-')
		b.WriteString(d.ConfigStr)
	}
	b.WriteByte('_')
	b.WriteString(d.Name)
	if d.Extension != "" {
		b.WriteByte('.')
		b.WriteString(d.Extension)
	}
	b.WriteString(".flat")
	return b.String()
}
