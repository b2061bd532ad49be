package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubperiods(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"jan", "feb", "mar"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0o755))
	}
	// Loose files in the category root are not sub-periods.
	require.NoError(t, os.WriteFile(filepath.Join(root, "grid.prj"), []byte("+proj=longlat"), 0o644))

	subs, err := Subperiods(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"feb", "jan", "mar"}, subs, "directory listing order is lexicographic")
}

func TestSubperiods_Empty(t *testing.T) {
	_, err := Subperiods(t.TempDir())
	require.Error(t, err)
}

func TestSubperiods_MissingRoot(t *testing.T) {
	_, err := Subperiods(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestGridFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"RSMS_01_2001_01.asc", "RSMS_01_2000_01.asc", "readme.txt", "RSMS_01_2002_01.ASC"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	paths, err := GridFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{"RSMS_01_2000_01.asc", "RSMS_01_2001_01.asc", "RSMS_01_2002_01.ASC"}, names,
		"only grid files, listing order, extension match is case-insensitive")
}

func TestGridFiles_NoGrids(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))

	_, err := GridFiles(dir)
	require.Error(t, err)
}
