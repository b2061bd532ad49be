package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvierula/climpoint/internal/domain"
)

// sampleGrid covers x in [10, 11.5), y in [20, 21) with 0.5 cells:
//
//	row 0 (north): 1     2   3
//	row 1 (south): 4  NODATA 6
func sampleGrid() *Grid {
	return &Grid{
		Info: GridInfo{
			Cols: 3, Rows: 2,
			XLL: 10, YLL: 20, CellSize: 0.5,
			NoData: -9999, HasNoData: true,
		},
		Cells: []float64{1, 2, 3, 4, -9999, 6},
	}
}

func TestGridSample(t *testing.T) {
	g := sampleGrid()

	tests := []struct {
		name string
		p    domain.Point
		want float64
	}{
		{"northwest cell", domain.Point{X: 10.25, Y: 20.75}, 1},
		{"northeast cell", domain.Point{X: 11.25, Y: 20.75}, 3},
		{"southwest cell", domain.Point{X: 10.25, Y: 20.25}, 4},
		{"southeast cell", domain.Point{X: 11.25, Y: 20.25}, 6},
		{"on lower-left corner", domain.Point{X: 10, Y: 20}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Sample(tt.p))
		})
	}
}

func TestGridSample_Misses(t *testing.T) {
	g := sampleGrid()

	tests := []struct {
		name string
		p    domain.Point
	}{
		{"west of extent", domain.Point{X: 9.9, Y: 20.5}},
		{"east of extent", domain.Point{X: 11.6, Y: 20.5}},
		{"south of extent", domain.Point{X: 10.5, Y: 19.9}},
		{"north of extent", domain.Point{X: 10.5, Y: 21.1}},
		{"far away", domain.Point{X: -1000, Y: 1000}},
		{"nodata cell", domain.Point{X: 10.75, Y: 20.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, math.IsNaN(g.Sample(tt.p)), "misses must yield NaN, never a crash")
		})
	}
}

func TestStackExtract(t *testing.T) {
	s := &Stack{
		Info:   sampleGrid().Info,
		Layers: []string{"RSMS_01_2000_01", "RSMS_01_2001_01"},
		Grids:  []*Grid{sampleGrid(), sampleGrid()},
	}
	sites := []domain.Site{
		{ID: "S01", Category: "picea"},
		{ID: "S02", Category: "pinus"},
		{ID: "S03", Category: "pinus"},
	}
	points := []domain.Point{
		{X: 10.25, Y: 20.75}, // value 1
		{X: 11.25, Y: 20.25}, // value 6
		{X: 0, Y: 0},         // outside
	}

	wide, err := s.Extract(sites, points, "jan")
	require.NoError(t, err)

	assert.Equal(t, "jan", wide.Subperiod)
	assert.Equal(t, sites, wide.Sites)
	require.Len(t, wide.Values, 3)
	for _, row := range wide.Values {
		assert.Len(t, row, 2, "one value column per layer")
	}
	assert.Equal(t, []float64{1, 1}, wide.Values[0])
	assert.Equal(t, []float64{6, 6}, wide.Values[1])
	assert.True(t, math.IsNaN(wide.Values[2][0]))
	assert.True(t, math.IsNaN(wide.Values[2][1]))
}

func TestStackExtract_PointCountMismatch(t *testing.T) {
	s := &Stack{Layers: []string{"RSMS_01_2000_01"}, Grids: []*Grid{sampleGrid()}}

	_, err := s.Extract([]domain.Site{{ID: "S01"}}, nil, "jan")
	require.Error(t, err)
}
