package gridpath

import "errors"

var (
	// ErrOutOfBounds indicates the start or goal coordinate falls outside the DEM grid.
	ErrOutOfBounds = errors.New("gridpath: start or goal coordinate is outside the grid")
	// ErrNoPath indicates the open set was exhausted before reaching the goal.
	ErrNoPath = errors.New("gridpath: no path found between start and goal")
)
