package domain

// Site is one physical sampling location from the coordinate table.
// Immutable once loaded.
type Site struct {
	ID       string  `json:"site"`
	Category string  `json:"category"` // species/category tag from the table
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
}

// Point is a site coordinate expressed in a grid's reference system.
type Point struct {
	X float64
	Y float64
}

// PointTransformer reprojects lon/lat sites into grid coordinates.
// Extraction is only valid when sites and grids share a reference, so the
// pipeline applies one transform to the whole site set before any grid is
// touched, never per file.
type PointTransformer interface {
	TransformPoints(sites []Site) ([]Point, error)
}
