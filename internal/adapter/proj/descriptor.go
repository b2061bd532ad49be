package proj

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadDescriptor reads a projection descriptor file and returns its
// definition string with surrounding whitespace removed.
func LoadDescriptor(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load projection descriptor: %w", err)
	}
	def := strings.TrimSpace(string(data))
	if def == "" {
		return "", fmt.Errorf("load projection descriptor %s: file is empty", path)
	}
	return def, nil
}

// FindDescriptor locates the single .prj file in a category root. Zero or
// multiple candidates are an error; the grid reference must be unambiguous.
func FindDescriptor(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.prj"))
	if err != nil {
		return "", fmt.Errorf("find projection descriptor: %w", err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("find projection descriptor: no .prj file in %s", dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("find projection descriptor: %d .prj files in %s", len(matches), dir)
	}
}
