// Package csvfile writes the tidy extraction table as a date-stamped
// delimited file. This is the primary sink.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mvierula/climpoint/internal/domain"
)

// missingMarker is what a NaN value renders as in delimited output.
const missingMarker = "NA"

// Writer implements pipeline.RowSink over a CSV file in the output
// directory, named <prefix>_<YYYY-MM-DD>.csv with the run date.
type Writer struct {
	dir    string
	prefix string
	logger *slog.Logger
}

// NewWriter creates a CSV sink targeting the given directory.
func NewWriter(dir, prefix string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, prefix: prefix, logger: logger}
}

// Name identifies this sink in logs and metrics.
func (w *Writer) Name() string { return "csv" }

// Path returns the output file path for the current run date.
func (w *Writer) Path() string {
	name := fmt.Sprintf("%s_%s.csv", w.prefix, domain.RunDate().Format("2006-01-02"))
	return filepath.Join(w.dir, name)
}

// LoadBatch writes all records in one attempt. There is no retry; a failed
// write aborts the run and leaves no partial table behind.
func (w *Writer) LoadBatch(_ context.Context, records []domain.Record) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	path := w.Path()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"site", "species", "subperiod", "value", "month", "year"}); err != nil {
		f.Close()
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	for _, r := range records {
		row := []string{r.Site, r.Category, r.Subperiod, formatValue(r), r.Month, r.Year}
		if err := cw.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write csv %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}

	w.logger.Info("tidy table written", "path", path, "rows", len(records))
	return nil
}

func formatValue(r domain.Record) string {
	if r.Missing() {
		return missingMarker
	}
	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}
