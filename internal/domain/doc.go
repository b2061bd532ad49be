// Package domain models gridded climate raster extractions as tidy tables.
//
// # Data layout
//
// Raster files are grouped into one directory per sub-period (one calendar
// month) under a category root, with a sibling projection descriptor:
//
//	<data>/<category>/
//	    grid.prj          projection descriptor for every grid below
//	    jan/
//	        RSMS_01_1881_01.asc
//	        RSMS_01_1882_01.asc
//	        ...
//	    feb/
//	        RSMS_02_1881_01.asc
//	        ...
//
// The descriptor is a plain-text coordinate reference definition. It lives
// next to the grids because the ASCII grid format itself carries no
// reference information; callers must attach it to every stack they build.
//
// # Layer naming convention
//
// Grid file names encode their metadata positionally:
//
//	<prefix>_<month>_<year>_<suffix>
//
// exactly four underscore-delimited fields, e.g. "RSMS_09_1881_01" is the
// September 1881 grid. Month and year are kept as text exactly as they
// appear in the name but are always compared numerically, so "2" sorts
// before "10". The prefix and suffix are provider boilerplate and are
// dropped during reshaping. This shape is a contract with the data
// provider: a name that does not parse aborts the whole run rather than
// producing malformed columns. See [ParseLayerName].
//
// # Missing values
//
// A site outside a grid's extent, or one landing on a NODATA cell, samples
// to NaN. NaN renders as "NA" in delimited output, NULL in SQLite, and null
// in JSON. It is never an error.
package domain
