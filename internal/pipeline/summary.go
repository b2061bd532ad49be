package pipeline

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mvierula/climpoint/internal/domain"
)

// categorySummary aggregates the extracted values for one category tag.
type categorySummary struct {
	Category string
	Count    int
	Missing  int
	Mean     float64
	StdDev   float64
}

// summarize computes per-category statistics over the non-missing values,
// ordered by category name. Logged at end of run as a sanity check on the
// extraction.
func summarize(records []domain.Record) []categorySummary {
	values := map[string][]float64{}
	missing := map[string]int{}
	for _, r := range records {
		if r.Missing() {
			missing[r.Category]++
			continue
		}
		values[r.Category] = append(values[r.Category], r.Value)
	}

	cats := map[string]bool{}
	for c := range values {
		cats[c] = true
	}
	for c := range missing {
		cats[c] = true
	}

	summaries := make([]categorySummary, 0, len(cats))
	for c := range cats {
		s := categorySummary{
			Category: c,
			Count:    len(values[c]) + missing[c],
			Missing:  missing[c],
		}
		if vs := values[c]; len(vs) > 0 {
			s.Mean = stat.Mean(vs, nil)
			if len(vs) > 1 {
				s.StdDev = stat.StdDev(vs, nil)
			}
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Category < summaries[j].Category })
	return summaries
}
