package raster

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Stack is an ordered collection of grids sharing identical geometry, one
// layer per source file. Layer order follows the input path order and layer
// names are the source file base names without extension.
//
// Loading does not recover a coordinate reference; the ASCII format has
// none. Callers must attach the reference from the category's descriptor
// file via SetCRS before the stack is handed to a sampler.
type Stack struct {
	Info   GridInfo
	CRS    string
	Layers []string
	Grids  []*Grid
}

// LayerName derives a layer name from a grid file path.
func LayerName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadStack reads every path into one stack. All grids must share geometry
// with the first, and derived layer names must be unique; either violation
// fails the load with the offending file named.
func LoadStack(paths []string) (*Stack, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("load stack: no input files")
	}

	s := &Stack{
		Layers: make([]string, 0, len(paths)),
		Grids:  make([]*Grid, 0, len(paths)),
	}
	names := make(map[string]string, len(paths))

	for i, path := range paths {
		g, err := ReadGrid(path)
		if err != nil {
			return nil, fmt.Errorf("load stack: %w", err)
		}
		if i == 0 {
			s.Info = g.Info
		} else if !SameGeometry(s.Info, g.Info) {
			return nil, fmt.Errorf("load stack: %s geometry %dx%d cell %g does not match %s",
				path, g.Info.Cols, g.Info.Rows, g.Info.CellSize, paths[0])
		}

		name := LayerName(path)
		if prev, dup := names[name]; dup {
			return nil, fmt.Errorf("load stack: %s and %s both yield layer name %q", prev, path, name)
		}
		names[name] = path

		s.Layers = append(s.Layers, name)
		s.Grids = append(s.Grids, g)
	}
	return s, nil
}

// SetCRS attaches the coordinate reference the grids are expressed in.
func (s *Stack) SetCRS(crs string) {
	s.CRS = crs
}
