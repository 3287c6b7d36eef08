//go:build !unix

package resc

import "os"

// mapFile reads the whole file on platforms without memory mapping.
func mapFile(path string) ([]byte, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
