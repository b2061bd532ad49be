package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// gridExt is the raster file extension the walker selects.
const gridExt = ".asc"

// Subperiods lists the sub-period directory names under a category root.
// Order is the lexicographic directory listing order; chronological order is
// established downstream by the numeric sort, never by listing order.
func Subperiods(categoryRoot string) ([]string, error) {
	entries, err := os.ReadDir(categoryRoot)
	if err != nil {
		return nil, fmt.Errorf("list sub-periods: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("list sub-periods: no directories under %s", categoryRoot)
	}
	return names, nil
}

// GridFiles lists the raster file paths in one sub-period directory, in
// directory listing order. A sub-period with no grids is an error; an empty
// stack has nothing to extract.
func GridFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list grids: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), gridExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("list grids: no %s files in %s", gridExt, dir)
	}
	return paths, nil
}
