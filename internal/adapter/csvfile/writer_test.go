package csvfile

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvierula/climpoint/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriter_LoadBatch(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.March, 14, 23, 30, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	dir := t.TempDir()
	w := NewWriter(dir, "extraction", discardLogger())

	records := []domain.Record{
		{Site: "S01", Category: "picea", Subperiod: "jan", Month: "01", Year: "2000", Value: 12.5},
		{Site: "S02", Category: "pinus", Subperiod: "jan", Month: "01", Year: "2000", Value: math.NaN()},
	}
	require.NoError(t, w.LoadBatch(context.Background(), records))

	// File name carries the run date.
	path := filepath.Join(dir, "extraction_2026-03-14.csv")
	assert.Equal(t, path, w.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "site,species,subperiod,value,month,year\n" +
		"S01,picea,jan,12.5,01,2000\n" +
		"S02,pinus,jan,NA,01,2000\n"
	assert.Equal(t, want, string(data))
}

func TestWriter_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir, "extraction", discardLogger())

	require.NoError(t, w.LoadBatch(context.Background(), nil))
	_, err := os.Stat(w.Path())
	assert.NoError(t, err, "an empty run still writes a header-only table")
}

func TestWriter_UnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	w := NewWriter(filepath.Join(dir, "out"), "extraction", discardLogger())
	err := w.LoadBatch(context.Background(), nil)
	require.Error(t, err)
}
