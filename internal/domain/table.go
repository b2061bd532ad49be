package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// WideTable is one sub-period's extraction result: one row per site, one
// value column per stacked layer. Values[i][j] is site i sampled on layer j.
type WideTable struct {
	Subperiod string
	Sites     []Site
	Layers    []string
	Values    [][]float64
}

// Record is one tidy observation: a single site sampled on a single layer.
// Value is NaN when the site fell outside the grid or on a NODATA cell.
type Record struct {
	Site      string  `json:"site"`
	Category  string  `json:"category"`
	Subperiod string  `json:"subperiod"`
	Layer     string  `json:"layer"`
	Month     string  `json:"month"`
	Year      string  `json:"year"`
	Value     float64 `json:"value"`

	ProcessedAt time.Time `json:"processed_at,omitzero"`
}

// Missing reports whether the record holds the missing-value marker.
func (r Record) Missing() bool {
	return math.IsNaN(r.Value)
}

// MarshalJSON encodes a missing value as null; NaN has no JSON encoding.
func (r Record) MarshalJSON() ([]byte, error) {
	type alias Record
	out := struct {
		alias
		Value *float64 `json:"value"`
	}{alias: alias(r)}
	if !r.Missing() {
		out.Value = &r.Value
	}
	return json.Marshal(out)
}

// Melt reshapes a wide table into tidy records, one per (site, layer) pair.
// Every layer column must parse under the naming convention; site metadata
// columns repeat on each melted row. A malformed layer name fails the whole
// melt, carrying the offending name.
func Melt(w WideTable) ([]Record, error) {
	keys := make([]LayerKey, len(w.Layers))
	for j, layer := range w.Layers {
		key, err := ParseLayerName(layer)
		if err != nil {
			return nil, fmt.Errorf("melt %s: %w", w.Subperiod, err)
		}
		keys[j] = key
	}

	records := make([]Record, 0, len(w.Sites)*len(w.Layers))
	for i, site := range w.Sites {
		if len(w.Values[i]) != len(w.Layers) {
			return nil, fmt.Errorf("melt %s: site %s has %d values for %d layers",
				w.Subperiod, site.ID, len(w.Values[i]), len(w.Layers))
		}
		for j, layer := range w.Layers {
			records = append(records, Record{
				Site:        site.ID,
				Category:    site.Category,
				Subperiod:   w.Subperiod,
				Layer:       layer,
				Month:       keys[j].Month,
				Year:        keys[j].Year,
				Value:       w.Values[i][j],
				ProcessedAt: clock.Now().UTC(),
			})
		}
	}
	return records, nil
}

// SortRecords orders tidy records by site, category, then chronologically by
// numeric year and month. Month and year are text fields, so a plain string
// sort would put "10" before "2"; the comparison is always numeric.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Site != b.Site {
			return a.Site < b.Site
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		ay, by := numeric(a.Year), numeric(b.Year)
		if ay != by {
			return ay < by
		}
		return numeric(a.Month) < numeric(b.Month)
	})
}

// numeric parses a month/year field already validated by ParseLayerName.
func numeric(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
