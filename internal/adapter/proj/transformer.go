// Package proj implements domain.PointTransformer on top of the PROJ
// cartographic projection library via github.com/pebbe/proj.
package proj

import (
	"fmt"
	"log/slog"

	projlib "github.com/pebbe/proj/v5"

	"github.com/mvierula/climpoint/internal/domain"
)

// Transformer reprojects lon/lat site coordinates into a grid's reference.
// It holds one PROJ transformation for the whole run; the pipeline transforms
// the site set once and reuses the result for every sub-period.
type Transformer struct {
	ctx    *projlib.Context
	pj     *projlib.PJ
	logger *slog.Logger
}

// NewTransformer builds a transformation from the source reference (the
// lon/lat system the site table is expressed in) to the target reference
// read from the grid descriptor. Both are PROJ definition strings.
func NewTransformer(sourceCRS, targetCRS string, logger *slog.Logger) (*Transformer, error) {
	ctx := projlib.NewContext()
	pj, err := ctx.CreateCrsToCrs(sourceCRS, targetCRS, nil)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("create transformation: %w", err)
	}
	return &Transformer{ctx: ctx, pj: pj, logger: logger}, nil
}

// TransformPoints reprojects every site into the target reference. A site
// that cannot be transformed fails the whole call; coordinates a projection
// rejects are an input-shape problem, not a sampling miss.
func (t *Transformer) TransformPoints(sites []domain.Site) ([]domain.Point, error) {
	points := make([]domain.Point, len(sites))
	for i, s := range sites {
		x, y, err := t.pj.Trans(projlib.Fwd, s.Lon, s.Lat)
		if err != nil {
			return nil, fmt.Errorf("transform site %s (%g, %g): %w", s.ID, s.Lon, s.Lat, err)
		}
		points[i] = domain.Point{X: x, Y: y}
	}
	t.logger.Debug("reprojected site coordinates", "sites", len(points))
	return points, nil
}

// Close releases the PROJ objects.
func (t *Transformer) Close() {
	t.pj.Close()
	t.ctx.Close()
}
