// Package raster reads ESRI ASCII grid files and samples them at points.
//
// The ASCII grid format is a plain-text header (ncols, nrows, lower-left
// corner, cellsize, optional NODATA_value) followed by row-major cell values,
// northernmost row first. The format carries no coordinate reference; the
// reference comes from a sibling descriptor file and is attached to stacks
// by the caller.
package raster

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// GridInfo is the geometry of a grid: cell counts, lower-left corner,
// resolution, and the NODATA sentinel.
type GridInfo struct {
	Cols      int
	Rows      int
	XLL       float64
	YLL       float64
	CellSize  float64
	NoData    float64
	HasNoData bool
}

// Top returns the Y coordinate of the grid's northern edge.
func (g GridInfo) Top() float64 {
	return g.YLL + float64(g.Rows)*g.CellSize
}

// Right returns the X coordinate of the grid's eastern edge.
func (g GridInfo) Right() float64 {
	return g.XLL + float64(g.Cols)*g.CellSize
}

// SameGeometry reports whether two grids share extent, resolution, and cell
// counts. Float fields are compared with a small tolerance because headers
// are decimal text.
func SameGeometry(a, b GridInfo) bool {
	const eps = 1e-9
	closeTo := func(x, y float64) bool { return math.Abs(x-y) <= eps*math.Max(1, math.Max(math.Abs(x), math.Abs(y))) }
	return a.Cols == b.Cols && a.Rows == b.Rows &&
		closeTo(a.XLL, b.XLL) && closeTo(a.YLL, b.YLL) && closeTo(a.CellSize, b.CellSize)
}

// Grid is one decoded raster: geometry plus row-major cell values with the
// northernmost row first.
type Grid struct {
	Info  GridInfo
	Cells []float64
}

// ReadGrid decodes an ESRI ASCII grid file. Any malformed header or value,
// or a value count that disagrees with the header, fails the read.
func ReadGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	info, first, err := readHeader(sc, path)
	if err != nil {
		return nil, err
	}

	cells := make([]float64, 0, info.Cols*info.Rows)
	appendRow := func(line string) error {
		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("read grid %s: bad cell value %q", path, tok)
			}
			cells = append(cells, v)
		}
		return nil
	}

	if err := appendRow(first); err != nil {
		return nil, err
	}
	for sc.Scan() {
		if err := appendRow(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read grid %s: %w", path, err)
	}
	if len(cells) != info.Cols*info.Rows {
		return nil, fmt.Errorf("read grid %s: %d cells for %dx%d header",
			path, len(cells), info.Cols, info.Rows)
	}

	return &Grid{Info: info, Cells: cells}, nil
}

// readHeader consumes the keyword/value header lines and returns the first
// data line. ESRI headers may position the origin by corner or by cell
// center; centers are normalized to the corner convention.
func readHeader(sc *bufio.Scanner, path string) (GridInfo, string, error) {
	var (
		info      GridInfo
		seen      = map[string]bool{}
		xCentered bool
		yCentered bool
	)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		if _, isHeader := headerKeys[key]; !isHeader {
			if err := requireHeader(seen, path); err != nil {
				return GridInfo{}, "", err
			}
			if xCentered {
				info.XLL -= info.CellSize / 2
			}
			if yCentered {
				info.YLL -= info.CellSize / 2
			}
			return info, line, nil
		}
		if len(fields) != 2 {
			return GridInfo{}, "", fmt.Errorf("read grid %s: malformed header line %q", path, line)
		}
		val, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return GridInfo{}, "", fmt.Errorf("read grid %s: bad header value %q", path, line)
		}
		seen[key] = true
		switch key {
		case "ncols", "nrows":
			if val < 1 || val != math.Trunc(val) {
				return GridInfo{}, "", fmt.Errorf("read grid %s: bad header value %q", path, line)
			}
			if key == "ncols" {
				info.Cols = int(val)
			} else {
				info.Rows = int(val)
			}
		case "xllcorner":
			info.XLL = val
		case "xllcenter":
			info.XLL = val
			xCentered = true
		case "yllcorner":
			info.YLL = val
		case "yllcenter":
			info.YLL = val
			yCentered = true
		case "cellsize":
			if val <= 0 {
				return GridInfo{}, "", fmt.Errorf("read grid %s: bad header value %q", path, line)
			}
			info.CellSize = val
		case "nodata_value":
			info.NoData = val
			info.HasNoData = true
		}
	}
	if err := sc.Err(); err != nil {
		return GridInfo{}, "", fmt.Errorf("read grid %s: %w", path, err)
	}
	return GridInfo{}, "", fmt.Errorf("read grid %s: no data rows", path)
}

var headerKeys = map[string]struct{}{
	"ncols": {}, "nrows": {},
	"xllcorner": {}, "xllcenter": {},
	"yllcorner": {}, "yllcenter": {},
	"cellsize": {}, "nodata_value": {},
}

func requireHeader(seen map[string]bool, path string) error {
	for _, key := range []string{"ncols", "nrows", "cellsize"} {
		if !seen[key] {
			return fmt.Errorf("read grid %s: header missing %s", path, key)
		}
	}
	if !seen["xllcorner"] && !seen["xllcenter"] {
		return fmt.Errorf("read grid %s: header missing xllcorner", path)
	}
	if !seen["yllcorner"] && !seen["yllcenter"] {
		return fmt.Errorf("read grid %s: header missing yllcorner", path)
	}
	return nil
}
