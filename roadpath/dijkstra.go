package roadpath

import (
	"container/heap"
	"context"

	"github.com/nadirahdurr/route-planner/terrain"
)

const maxIterations = 100_000

// cancellationCheckInterval is how often, in heap pops, the search checks
// ctx for cancellation.
const cancellationCheckInterval = 1_000

// FindPath finds a route over roads from start to goal: it snaps both
// endpoints onto the road network's largest connected component, then
// runs a capped Dijkstra search between the two snapped nodes. ctx is
// checked for cancellation every cancellationCheckInterval heap pops.
//
// Complexity: O((V+E) log V), capped at maxIterations heap pops.
func FindPath(ctx context.Context, start, goal terrain.Coordinate, roads terrain.RoadNetwork) ([]terrain.Coordinate, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := buildGraph(roads)
	if len(g.order) == 0 {
		return nil, ErrEmptyNetwork
	}

	component := g.largestComponent()
	startNode := nearestNode(component, start)
	goalNode := nearestNode(component, goal)

	if startNode == goalNode {
		return []terrain.Coordinate{startNode}, nil
	}

	return dijkstra(ctx, g, startNode, goalNode)
}

func dijkstra(ctx context.Context, g *graph, start, goal terrain.Coordinate) ([]terrain.Coordinate, error) {
	dist := map[terrain.Coordinate]float64{start: 0}
	cameFrom := map[terrain.Coordinate]terrain.Coordinate{}
	visited := map[terrain.Coordinate]bool{}

	pq := make(nodePQ, 0, 64)
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{node: start, dist: 0})

	iterations := 0
	for pq.Len() > 0 {
		if iterations >= maxIterations {
			return nil, ErrIterationCapExceeded
		}
		if iterations%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		iterations++

		current := heap.Pop(&pq).(*nodeItem)
		if visited[current.node] {
			continue
		}
		visited[current.node] = true

		if current.node == goal {
			return reconstructPath(cameFrom, goal), nil
		}

		for _, e := range g.adjacency[current.node] {
			if visited[e.to] {
				continue
			}
			newDist := dist[current.node] + e.dist
			if best, ok := dist[e.to]; !ok || newDist < best {
				dist[e.to] = newDist
				cameFrom[e.to] = current.node
				heap.Push(&pq, &nodeItem{node: e.to, dist: newDist})
			}
		}
	}

	return nil, ErrNoPath
}

func reconstructPath(cameFrom map[terrain.Coordinate]terrain.Coordinate, goal terrain.Coordinate) []terrain.Coordinate {
	path := []terrain.Coordinate{goal}
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

// nodeItem is a road node paired with its current best distance from
// the search's start, stored in the priority queue.
type nodeItem struct {
	node terrain.Coordinate
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending, using the
// same lazy-decrease-key approach as the teacher's Dijkstra: superseded
// entries are left in the heap and skipped via the visited set when
// popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
