// Package sqlite persists the tidy extraction table to a SQLite database,
// as an optional sink alongside the CSV output.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/mvierula/climpoint/internal/domain"
)

// Sink implements pipeline.RowSink over a SQLite database.
type Sink struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens (or creates) the database and ensures the extractions table exists.
func New(path string, logger *slog.Logger) (*Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS extractions (
			site TEXT NOT NULL,
			species TEXT NOT NULL,
			subperiod TEXT NOT NULL,
			layer TEXT NOT NULL,
			month TEXT NOT NULL,
			year TEXT NOT NULL,
			value REAL,
			processed_at TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create extractions table: %w", err)
	}

	return &Sink{db: db, logger: logger}, nil
}

// Name identifies this sink in logs and metrics.
func (s *Sink) Name() string { return "sqlite" }

// LoadBatch inserts all records in a single transaction. Missing values are
// stored as NULL.
func (s *Sink) LoadBatch(ctx context.Context, records []domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO extractions (site, species, subperiod, layer, month, year, value, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		value := sql.NullFloat64{Float64: r.Value, Valid: !r.Missing()}
		if _, err := stmt.ExecContext(ctx, r.Site, r.Category, r.Subperiod, r.Layer, r.Month, r.Year, value, r.ProcessedAt); err != nil {
			return fmt.Errorf("insert row for site %s layer %s: %w", r.Site, r.Layer, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	s.logger.Info("rows persisted", "rows", len(records))
	return nil
}

// Close releases the database handle.
func (s *Sink) Close() error {
	return s.db.Close()
}
