package resc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kunalshah912/resc/internal/respath"
)

// ScanDir enumerates resource files under root: the immediate files of each
// immediate subdirectory, classifying every one. Hidden entries (leading
// '.') are skipped. Any enumeration or classification error aborts the
// whole scan.
func ScanDir(root string) ([]respath.Descriptor, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	var descs []respath.Descriptor
	for _, dir := range dirs {
		if isHidden(dir.Name()) || !dir.IsDir() {
			continue
		}
		subdir := filepath.Join(root, dir.Name())
		files, err := os.ReadDir(subdir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", subdir, err)
		}
		for _, file := range files {
			if isHidden(file.Name()) || file.IsDir() {
				continue
			}
			desc, err := respath.Classify(filepath.Join(subdir, file.Name()))
			if err != nil {
				return nil, err
			}
			descs = append(descs, desc)
		}
	}
	return descs, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
