package raster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempGrid(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const smallGrid = `ncols 3
nrows 2
xllcorner 10
yllcorner 20
cellsize 0.5
NODATA_value -9999
1 2 3
4 -9999 6
`

func TestReadGrid(t *testing.T) {
	g, err := ReadGrid(writeTempGrid(t, "RSMS_01_2000_01.asc", smallGrid))
	require.NoError(t, err)

	assert.Equal(t, 3, g.Info.Cols)
	assert.Equal(t, 2, g.Info.Rows)
	assert.Equal(t, 10.0, g.Info.XLL)
	assert.Equal(t, 20.0, g.Info.YLL)
	assert.Equal(t, 0.5, g.Info.CellSize)
	assert.True(t, g.Info.HasNoData)
	assert.Equal(t, -9999.0, g.Info.NoData)
	assert.Equal(t, []float64{1, 2, 3, 4, -9999, 6}, g.Cells)
	assert.Equal(t, 21.0, g.Info.Top())
	assert.Equal(t, 11.5, g.Info.Right())
}

func TestReadGrid_CenterOriginNormalized(t *testing.T) {
	content := `ncols 2
nrows 2
xllcenter 10.25
yllcenter 20.25
cellsize 0.5
1 2
3 4
`
	g, err := ReadGrid(writeTempGrid(t, "c.asc", content))
	require.NoError(t, err)
	assert.Equal(t, 10.0, g.Info.XLL)
	assert.Equal(t, 20.0, g.Info.YLL)
	assert.False(t, g.Info.HasNoData)
}

func TestReadGrid_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing ncols", "nrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3 4\n"},
		{"missing origin", "ncols 2\nnrows 2\ncellsize 1\n1 2\n3 4\n"},
		{"bad header value", "ncols two\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3 4\n"},
		{"fractional ncols", "ncols 2.5\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3 4\n"},
		{"zero cellsize", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 0\n1 2\n3 4\n"},
		{"bad cell value", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 x\n3 4\n"},
		{"too few cells", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3\n"},
		{"too many cells", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2 5\n3 4\n"},
		{"header only", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n"},
		{"empty file", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGrid(writeTempGrid(t, "bad.asc", tt.content))
			require.Error(t, err)
		})
	}
}

func TestReadGrid_MissingFile(t *testing.T) {
	_, err := ReadGrid(filepath.Join(t.TempDir(), "nope.asc"))
	require.Error(t, err)
}

func TestSameGeometry(t *testing.T) {
	a := GridInfo{Cols: 3, Rows: 2, XLL: 10, YLL: 20, CellSize: 0.5}

	assert.True(t, SameGeometry(a, a))

	b := a
	b.XLL += 1e-12
	assert.True(t, SameGeometry(a, b), "tiny decimal noise is equal")

	c := a
	c.Cols = 4
	assert.False(t, SameGeometry(a, c))

	d := a
	d.CellSize = 0.25
	assert.False(t, SameGeometry(a, d))

	e := a
	e.YLL = 21
	assert.False(t, SameGeometry(a, e))
}
