package raster

import (
	"fmt"
	"math"

	"github.com/mvierula/climpoint/internal/domain"
)

// Sample returns the cell value containing p. Points outside the extent and
// NODATA cells sample to NaN rather than failing; a site off the grid is an
// expected condition, not an error.
func (g *Grid) Sample(p domain.Point) float64 {
	col := int(math.Floor((p.X - g.Info.XLL) / g.Info.CellSize))
	row := int(math.Floor((g.Info.Top() - p.Y) / g.Info.CellSize))
	// Points on the eastern or southern boundary belong to the edge cells,
	// so the whole extent is inclusive.
	if col == g.Info.Cols && p.X <= g.Info.Right() {
		col--
	}
	if row == g.Info.Rows && p.Y >= g.Info.YLL {
		row--
	}
	if col < 0 || col >= g.Info.Cols || row < 0 || row >= g.Info.Rows {
		return math.NaN()
	}
	v := g.Cells[row*g.Info.Cols+col]
	if g.Info.HasNoData && v == g.Info.NoData {
		return math.NaN()
	}
	return v
}

// Extract samples every layer at every point, producing the sub-period's
// wide table: one row per site, one column per layer. Points must already be
// expressed in the stack's reference and must align one-to-one with sites.
func (s *Stack) Extract(sites []domain.Site, points []domain.Point, subperiod string) (domain.WideTable, error) {
	if len(sites) != len(points) {
		return domain.WideTable{}, fmt.Errorf("extract %s: %d sites but %d points", subperiod, len(sites), len(points))
	}

	values := make([][]float64, len(sites))
	for i := range sites {
		row := make([]float64, len(s.Grids))
		for j, g := range s.Grids {
			row[j] = g.Sample(points[i])
		}
		values[i] = row
	}

	return domain.WideTable{
		Subperiod: subperiod,
		Sites:     sites,
		Layers:    s.Layers,
		Values:    values,
	}, nil
}
