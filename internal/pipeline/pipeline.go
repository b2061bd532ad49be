// Package pipeline orchestrates the batch extraction run: walk the category
// tree one sub-period at a time, stack and sample the grids, reshape the
// results into one tidy table, and deliver it to the configured sinks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/mvierula/climpoint/internal/config"
	"github.com/mvierula/climpoint/internal/domain"
	"github.com/mvierula/climpoint/internal/observability"
	"github.com/mvierula/climpoint/internal/raster"
	"github.com/mvierula/climpoint/internal/sites"
)

// RowSink delivers the final tidy table somewhere: a delimited file, a
// database, a topic.
type RowSink interface {
	Name() string
	LoadBatch(ctx context.Context, records []domain.Record) error
}

// Pipeline is the single-pass batch run. Construct with New, call Run once.
type Pipeline struct {
	cfg         *config.Config
	gridCRS     string
	transformer domain.PointTransformer
	sinks       []RowSink
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Pipeline. gridCRS is the projection definition read from the
// category's descriptor file; the transformer must already target it.
func New(cfg *config.Config, gridCRS string, transformer domain.PointTransformer, sinks []RowSink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		gridCRS:     gridCRS,
		transformer: transformer,
		sinks:       sinks,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once at least one sub-period has been extracted.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no sub-period extracted yet")
	}
	return nil
}

// Run executes the whole batch: load sites, reproject once, extract each
// sub-period, reshape, sort, summarize, and deliver. Input-shape and I/O
// errors abort the run with no partial output; only per-point sampling
// misses are tolerated.
func (p *Pipeline) Run(ctx context.Context) error {
	siteList, err := sites.Load(p.cfg.SitesFile)
	if err != nil {
		return err
	}
	p.logger.Info("sites loaded", "sites", len(siteList), "file", p.cfg.SitesFile)

	// The coordinate transform is amortized across the run: reproject the
	// site set into the grid reference once, then loop per sub-period.
	points, err := p.transformer.TransformPoints(siteList)
	if err != nil {
		return err
	}

	subperiods := p.cfg.Subperiods
	categoryRoot := filepath.Join(p.cfg.DataDir, p.cfg.Category)
	if len(subperiods) == 0 {
		if subperiods, err = Subperiods(categoryRoot); err != nil {
			return err
		}
	}

	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// One reserved slot per sub-period; each iteration writes only its own.
	wides := make([]domain.WideTable, len(subperiods))
	for i, sub := range subperiods {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled: %w", err)
		}
		wide, err := p.extractSubperiod(filepath.Join(categoryRoot, sub), sub, siteList, points)
		if err != nil {
			return err
		}
		wides[i] = wide
		p.ready.Store(true)
	}

	records, err := reshape(wides)
	if err != nil {
		p.metrics.ReshapeErrors.Inc()
		return err
	}
	domain.SortRecords(records)

	for _, s := range summarize(records) {
		p.logger.Info("category summary",
			"category", s.Category,
			"rows", s.Count,
			"missing", s.Missing,
			"mean", s.Mean,
			"stddev", s.StdDev,
		)
	}

	for _, sink := range p.sinks {
		if err := sink.LoadBatch(ctx, records); err != nil {
			return fmt.Errorf("%s sink: %w", sink.Name(), err)
		}
		p.metrics.RowsWritten.WithLabelValues(sink.Name()).Add(float64(len(records)))
		p.logger.Info("rows delivered", "sink", sink.Name(), "rows", len(records))
	}

	return nil
}

// extractSubperiod loads one sub-period's grids as a stack and samples every
// site on every layer. The stack is released when this returns, so peak
// memory is one sub-period's worth of grids.
func (p *Pipeline) extractSubperiod(dir, name string, siteList []domain.Site, points []domain.Point) (domain.WideTable, error) {
	start := time.Now()

	paths, err := GridFiles(dir)
	if err != nil {
		return domain.WideTable{}, err
	}

	stack, err := raster.LoadStack(paths)
	if err != nil {
		return domain.WideTable{}, fmt.Errorf("sub-period %s: %w", name, err)
	}
	stack.SetCRS(p.gridCRS)
	p.metrics.RastersLoaded.Add(float64(len(paths)))
	p.metrics.SubperiodLayers.Observe(float64(len(paths)))

	wide, err := stack.Extract(siteList, points, name)
	if err != nil {
		return domain.WideTable{}, err
	}

	sampled, missed := 0, 0
	for _, row := range wide.Values {
		for _, v := range row {
			sampled++
			if math.IsNaN(v) {
				missed++
			}
		}
	}
	p.metrics.PointsSampled.Add(float64(sampled))
	p.metrics.SamplingMisses.Add(float64(missed))
	p.metrics.SubperiodDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("sub-period extracted",
		"subperiod", name,
		"layers", len(paths),
		"samples", sampled,
		"misses", missed,
		"duration", time.Since(start),
	)
	return wide, nil
}

// reshape melts every wide table and concatenates the results into one long
// table. A naming-convention violation in any layer fails the whole reshape.
func reshape(wides []domain.WideTable) ([]domain.Record, error) {
	var records []domain.Record
	for _, w := range wides {
		melted, err := domain.Melt(w)
		if err != nil {
			return nil, err
		}
		records = append(records, melted...)
	}
	return records, nil
}
