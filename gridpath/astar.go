package gridpath

import (
	"container/heap"
	"context"
	"math"

	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/terrain"
)

var eightConnected = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// FindPath runs weighted eight-connected A* from start to goal over dem
// and landcover, under profile's cost configuration, deflecting around
// obstacles and taking road proximity into account. Unlike the road
// Dijkstra search, the grid is bounded by construction, so ctx is only
// checked once on entry rather than on every pop.
//
// Complexity: O(H*W*(log(H*W) + R)), where R is the number of road
// vertices scanned by roadInfluence on every neighbor expansion.
func FindPath(
	ctx context.Context,
	start, goal terrain.Coordinate,
	dem *terrain.DEMData,
	landcover *terrain.LandcoverData,
	obstacles []terrain.Obstacle,
	roads terrain.RoadNetwork,
	profile Profile,
) ([]geometry.GridCell, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startCell := geometry.CoordinateToGrid(start, dem)
	goalCell := geometry.CoordinateToGrid(goal, dem)
	if !geometry.InBounds(startCell.Row, startCell.Col, dem) || !geometry.InBounds(goalCell.Row, goalCell.Col, dem) {
		return nil, ErrOutOfBounds
	}

	cellSize := dem.Metadata.CellSizeM
	origin := dem.Metadata.Origin

	gScore := map[geometry.GridCell]float64{startCell: 0}
	cameFrom := map[geometry.GridCell]geometry.GridCell{}

	pq := make(cellPQ, 0, 64)
	heap.Init(&pq)
	heap.Push(&pq, &cellItem{cell: startCell, g: 0, f: heuristic(startCell, goalCell, cellSize)})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*cellItem)
		// Stale heap entry: a strictly better g already superseded this push.
		if best, ok := gScore[current.cell]; ok && current.g > best {
			continue
		}
		if current.cell == goalCell {
			return reconstruct(cameFrom, goalCell), nil
		}

		for _, d := range eightConnected {
			nr, nc := current.cell.Row+d[0], current.cell.Col+d[1]
			if !geometry.InBounds(nr, nc, dem) {
				continue
			}
			if geometry.CellInObstacle(nr, nc, origin, cellSize, obstacles) {
				continue
			}

			terrainName := landcover.Grid[nr][nc]
			terrainFactor := landcover.Classes[terrainName].CostFactor
			if mult, ok := profile.TerrainMultipliers[terrainName]; ok {
				terrainFactor *= mult
			}

			slope := geometry.SlopeBetween(dem, current.cell.Row, current.cell.Col, nr, nc)
			slopeFactor := 1.0 + (slope/30.0)*profile.SlopeWeight

			neighborCoord := geometry.GridToCoordinate(nr, nc, dem)
			roadFactor := roadInfluence(roads, neighborCoord)
			if profile.RoadBias != 1.0 {
				roadFactor = math.Pow(roadFactor, profile.RoadBias)
			}

			exposureFactor := 1.0 + profile.ExposurePenalty*landcover.Classes[terrainName].Exposure

			moveCost := cellSize * math.Hypot(float64(d[0]), float64(d[1]))
			tentativeG := gScore[current.cell] + moveCost*terrainFactor*slopeFactor*roadFactor*exposureFactor

			neighbor := geometry.GridCell{Row: nr, Col: nc}
			if best, ok := gScore[neighbor]; !ok || tentativeG < best {
				gScore[neighbor] = tentativeG
				cameFrom[neighbor] = current.cell
				heap.Push(&pq, &cellItem{cell: neighbor, g: tentativeG, f: tentativeG + heuristic(neighbor, goalCell, cellSize)})
			}
		}
	}

	return nil, ErrNoPath
}

func heuristic(a, b geometry.GridCell, cellSize float64) float64 {
	return cellSize * math.Hypot(float64(a.Row-b.Row), float64(a.Col-b.Col))
}

// roadInfluence discounts the cost of cells near a road: the closer a
// candidate cell is to any road vertex, the cheaper it is to traverse.
func roadInfluence(roads terrain.RoadNetwork, coord terrain.Coordinate) float64 {
	if len(roads) == 0 {
		return 1.0
	}
	best := math.Inf(1)
	for _, line := range roads {
		for _, roadCoord := range line {
			if d := geometry.PlanarDistanceM(coord, roadCoord); d < best {
				best = d
			}
		}
	}
	switch {
	case best < 100:
		return 0.7
	case best < 300:
		return 0.85
	case best < 500:
		return 0.95
	default:
		return 1.0
	}
}

func reconstruct(cameFrom map[geometry.GridCell]geometry.GridCell, goal geometry.GridCell) []geometry.GridCell {
	path := []geometry.GridCell{goal}
	current := goal
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// cellItem is a grid cell paired with its current f-score, stored in the
// open-set priority queue.
type cellItem struct {
	cell geometry.GridCell
	g    float64
	f    float64
}

// cellPQ is a min-heap of *cellItem ordered by f ascending, using the
// same lazy-decrease-key approach as the teacher's Dijkstra: superseded
// entries are left in the heap and skipped when popped.
type cellPQ []*cellItem

func (pq cellPQ) Len() int            { return len(pq) }
func (pq cellPQ) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq cellPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(*cellItem)) }
func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
