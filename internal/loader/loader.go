// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a CHIP-8 ROM file and returns its raw bytes.
// ROM files carry no header, the whole file is program data.
func (l *Loader) Load(path string) ([]byte, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if len(rom) == 0 {
		return nil, fmt.Errorf("file %s is empty", path)
	}

	return rom, nil
}
