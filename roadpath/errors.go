package roadpath

import "errors"

var (
	// ErrEmptyNetwork indicates the road network has no usable nodes.
	ErrEmptyNetwork = errors.New("roadpath: road network has no nodes")
	// ErrNoPath indicates Dijkstra exhausted the reachable component without finding the goal.
	ErrNoPath = errors.New("roadpath: no path found within the connected component")
	// ErrIterationCapExceeded indicates the search hit its iteration cap before either
	// finding the goal or exhausting the queue; this is reported distinctly from
	// ErrNoPath because it means the answer is unknown, not negative.
	ErrIterationCapExceeded = errors.New("roadpath: search exceeded its iteration cap")
)
