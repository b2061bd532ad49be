// Package sites loads the site-coordinate table.
package sites

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mvierula/climpoint/internal/domain"
)

// Required column headers, matched case-insensitively and in any order.
const (
	colSite     = "site"
	colCategory = "species"
	colLon      = "lon"
	colLat      = "lat"
)

// Load reads the site coordinate CSV. The first row is a header naming at
// least the site, species, lon, and lat columns. Any malformed row fails the
// whole load with its row number; a partial site set would silently shrink
// every downstream table.
func Load(path string) ([]domain.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load sites: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("load sites %s: read header: %w", path, err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, fmt.Errorf("load sites %s: %w", path, err)
	}

	var loaded []domain.Site
	for row := 2; ; row++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("load sites %s row %d: %w", path, row, err)
		}
		site, err := parseRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("load sites %s row %d: %w", path, row, err)
		}
		loaded = append(loaded, site)
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("load sites %s: no site rows", path)
	}
	return loaded, nil
}

type columns struct {
	site, category, lon, lat int
}

func columnIndex(header []string) (columns, error) {
	idx := columns{site: -1, category: -1, lon: -1, lat: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case colSite:
			idx.site = i
		case colCategory:
			idx.category = i
		case colLon:
			idx.lon = i
		case colLat:
			idx.lat = i
		}
	}
	for name, i := range map[string]int{colSite: idx.site, colCategory: idx.category, colLon: idx.lon, colLat: idx.lat} {
		if i < 0 {
			return columns{}, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}

func parseRow(rec []string, idx columns) (domain.Site, error) {
	id := strings.TrimSpace(rec[idx.site])
	if id == "" {
		return domain.Site{}, fmt.Errorf("empty site identifier")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rec[idx.lon]), 64)
	if err != nil {
		return domain.Site{}, fmt.Errorf("bad lon %q", rec[idx.lon])
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(rec[idx.lat]), 64)
	if err != nil {
		return domain.Site{}, fmt.Errorf("bad lat %q", rec[idx.lat])
	}
	return domain.Site{
		ID:       id,
		Category: strings.TrimSpace(rec[idx.category]),
		Lon:      lon,
		Lat:      lat,
	}, nil
}
