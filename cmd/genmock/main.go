// Command genmock generates a deterministic synthetic climate data tree for
// demos and manual pipeline runs: a site coordinate table, a projection
// descriptor, and one ASCII grid per (month, year) following the provider
// naming convention. Cell values encode year and month so extracted numbers
// are predictable by eye.
//
// Usage:
//
//	go run ./cmd/genmock -out ./data -months 01,02 -years 2000-2002
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	category = "precipitation"
	prefix   = "RSMS"
	suffix   = "01"

	gridCols     = 10
	gridRows     = 10
	gridCellSize = 1.0
	gridNoData   = -9999.0
)

// The descriptor matches the site table's reference so demo runs transform
// cleanly without grid shift.
const projDefinition = "+proj=longlat +datum=WGS84 +no_defs"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for the data tree")
	months := flag.String("months", "01,02,03", "comma-separated month numbers")
	years := flag.String("years", "2000-2002", "inclusive year range, e.g. 1881-1885")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	monthNums, err := parseMonths(*months)
	if err != nil {
		return err
	}
	firstYear, lastYear, err := parseYears(*years)
	if err != nil {
		return err
	}

	if err := writeSites(filepath.Join(*out, "sites.csv")); err != nil {
		return err
	}

	root := filepath.Join(*out, category)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, "grid.prj"), []byte(projDefinition+"\n"), 0o644); err != nil {
		return err
	}

	total := 0
	for _, m := range monthNums {
		dir := filepath.Join(root, monthDir(m))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		for year := firstYear; year <= lastYear; year++ {
			name := fmt.Sprintf("%s_%02d_%d_%s.asc", prefix, m, year, suffix)
			if err := writeGrid(filepath.Join(dir, name), year, m); err != nil {
				return err
			}
			total++
		}
		log.Printf("%s: %d grids", monthDir(m), lastYear-firstYear+1)
	}
	log.Printf("wrote %d grids under %s", total, root)
	return nil
}

// writeSites emits a small fixed site table: three in-extent sites across two
// species and one site deliberately outside the grid to demonstrate the
// missing-value path.
func writeSites(path string) error {
	rows := []string{
		"site,species,lon,lat",
		"S01,picea,2.5,2.5",
		"S02,picea,7.5,7.5",
		"S03,pinus,4.5,8.5",
		"S04,pinus,42.0,42.0",
	}
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		return err
	}
	log.Printf("wrote site table: %s", path)
	return nil
}

// writeGrid emits one ASCII grid whose cells all hold year + month/100, with
// a single NODATA hole in the northwest corner.
func writeGrid(path string, year, month int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "ncols %d\n", gridCols)
	fmt.Fprintf(&b, "nrows %d\n", gridRows)
	fmt.Fprintf(&b, "xllcorner 0\n")
	fmt.Fprintf(&b, "yllcorner 0\n")
	fmt.Fprintf(&b, "cellsize %g\n", gridCellSize)
	fmt.Fprintf(&b, "NODATA_value %g\n", gridNoData)

	value := strconv.FormatFloat(float64(year)+float64(month)/100, 'g', -1, 64)
	for row := 0; row < gridRows; row++ {
		cells := make([]string, gridCols)
		for col := 0; col < gridCols; col++ {
			cells[col] = value
		}
		if row == 0 {
			cells[0] = strconv.FormatFloat(gridNoData, 'g', -1, 64)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func monthDir(m int) string {
	return strings.ToLower(time.Month(m).String()[:3])
}

func parseMonths(s string) ([]int, error) {
	var months []int
	for _, part := range strings.Split(s, ",") {
		m, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || m < 1 || m > 12 {
			return nil, fmt.Errorf("bad month %q", part)
		}
		months = append(months, m)
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("no months given")
	}
	return months, nil
}

func parseYears(s string) (int, int, error) {
	first, last, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("bad year range %q", s)
	}
	a, err1 := strconv.Atoi(strings.TrimSpace(first))
	b, err2 := strconv.Atoi(strings.TrimSpace(last))
	if err1 != nil || err2 != nil || a > b {
		return 0, 0, fmt.Errorf("bad year range %q", s)
	}
	return a, b, nil
}
