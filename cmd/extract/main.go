// Command extract runs the batch climate raster extraction pipeline: load
// the site table, reproject it into the grid reference once, sample every
// sub-period's raster stack, reshape into a tidy table, and deliver it to
// the configured sinks.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	csvsink "github.com/mvierula/climpoint/internal/adapter/csvfile"
	httpadapter "github.com/mvierula/climpoint/internal/adapter/http"
	kafkasink "github.com/mvierula/climpoint/internal/adapter/kafka"
	projadapter "github.com/mvierula/climpoint/internal/adapter/proj"
	sqlitesink "github.com/mvierula/climpoint/internal/adapter/sqlite"
	"github.com/mvierula/climpoint/internal/config"
	"github.com/mvierula/climpoint/internal/observability"
	"github.com/mvierula/climpoint/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The grid reference lives in a descriptor file next to the grids, not
	// in the grids themselves.
	crsFile := cfg.CRSFile
	if crsFile == "" {
		var err error
		crsFile, err = projadapter.FindDescriptor(filepath.Join(cfg.DataDir, cfg.Category))
		if err != nil {
			return err
		}
	}
	gridCRS, err := projadapter.LoadDescriptor(crsFile)
	if err != nil {
		return err
	}
	logger.Info("grid reference loaded", "file", crsFile)

	transformer, err := projadapter.NewTransformer(cfg.SourceCRS, gridCRS, logger)
	if err != nil {
		return err
	}
	defer transformer.Close()

	sinks := []pipeline.RowSink{
		csvsink.NewWriter(cfg.OutputDir, cfg.OutputPrefix, logger),
	}
	if cfg.SQLitePath != "" {
		db, err := sqlitesink.New(cfg.SQLitePath, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		sinks = append(sinks, db)
		logger.Info("sqlite sink enabled", "path", cfg.SQLitePath)
	}
	if cfg.KafkaEnabled {
		kw := kafkasink.NewWriter(cfg, logger)
		defer kw.Close()
		sinks = append(sinks, kw)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(cfg, gridCRS, transformer, sinks, logger, metrics)

	// Optional observability endpoint for long runs.
	if cfg.MetricsAddr != "" {
		srv := httpadapter.NewServer(cfg.MetricsAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			if err := srv.Shutdown(context.Background()); err != nil {
				logger.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	return p.Run(ctx)
}
