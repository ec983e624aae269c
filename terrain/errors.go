package terrain

import "errors"

var (
	// ErrEmptyGrid indicates a grid has no rows or no columns.
	ErrEmptyGrid = errors.New("terrain: grid must have at least one row and one column")
	// ErrNonRectangularGrid indicates rows of differing lengths.
	ErrNonRectangularGrid = errors.New("terrain: all grid rows must have the same width")
	// ErrUnknownLandcoverClass indicates a grid cell label absent from the class table.
	ErrUnknownLandcoverClass = errors.New("terrain: landcover grid references an undefined class")
	// ErrGridShapeMismatch indicates DEM and landcover disagree on origin, cell size, or dimensions.
	ErrGridShapeMismatch = errors.New("terrain: DEM and landcover must share origin, cell size, and dimensions")
)
