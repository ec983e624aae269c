package terrain

import "github.com/pkg/errors"

// NewDEMData validates grid rectangularity and wraps it with metadata.
//
// Complexity: O(H).
func NewDEMData(grid [][]float64, meta GridMetadata) (*DEMData, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(grid[0])
	for _, row := range grid {
		if len(row) != width {
			return nil, ErrNonRectangularGrid
		}
	}
	return &DEMData{Grid: grid, Metadata: meta}, nil
}

// NewLandcoverData validates rectangularity and that every grid label is
// a key of classes.
//
// Complexity: O(H*W).
func NewLandcoverData(grid [][]string, classes map[string]LandcoverClass, meta GridMetadata) (*LandcoverData, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(grid[0])
	for r, row := range grid {
		if len(row) != width {
			return nil, ErrNonRectangularGrid
		}
		for c, label := range row {
			if _, ok := classes[label]; !ok {
				return nil, errors.Wrapf(ErrUnknownLandcoverClass, "cell (%d,%d)=%q", r, c, label)
			}
		}
	}
	return &LandcoverData{Grid: grid, Classes: classes, Metadata: meta}, nil
}

// CheckAligned verifies a DEM and LandcoverData share origin, cell size,
// and dimensions, as required within a single bundle.
func CheckAligned(dem *DEMData, lc *LandcoverData) error {
	if dem.Metadata.Origin != lc.Metadata.Origin || dem.Metadata.CellSizeM != lc.Metadata.CellSizeM {
		return ErrGridShapeMismatch
	}
	if dem.Height() != lc.Height() || dem.Width() != lc.Width() {
		return ErrGridShapeMismatch
	}
	return nil
}
