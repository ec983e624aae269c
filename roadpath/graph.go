package roadpath

import (
	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/terrain"
)

type edge struct {
	to   terrain.Coordinate
	dist float64
}

// graph is an adjacency list built from a RoadNetwork, plus the order
// nodes were first encountered (used for deterministic component
// sampling instead of Go's randomized map iteration).
type graph struct {
	adjacency map[terrain.Coordinate][]edge
	order     []terrain.Coordinate
}

func buildGraph(roads terrain.RoadNetwork) *graph {
	g := &graph{adjacency: make(map[terrain.Coordinate][]edge)}
	addNode := func(c terrain.Coordinate) {
		if _, ok := g.adjacency[c]; !ok {
			g.adjacency[c] = nil
			g.order = append(g.order, c)
		}
	}
	addEdge := func(a, b terrain.Coordinate) {
		dist := geometry.PlanarDistanceM(a, b)
		g.adjacency[a] = append(g.adjacency[a], edge{to: b, dist: dist})
		g.adjacency[b] = append(g.adjacency[b], edge{to: a, dist: dist})
	}
	for _, coords := range roads {
		for i := 0; i < len(coords); i++ {
			addNode(coords[i])
		}
		for i := 0; i+1 < len(coords); i++ {
			addEdge(coords[i], coords[i+1])
		}
	}
	return g
}

// largestComponent samples the first min(100, len(order)) nodes,
// flood-filling a connected component from each unchecked one, and
// returns the largest component found once 90% of all nodes have been
// accounted for (or the sample is exhausted).
func (g *graph) largestComponent() []terrain.Coordinate {
	if len(g.order) == 0 {
		return nil
	}

	sampleSize := len(g.order)
	if sampleSize > 100 {
		sampleSize = 100
	}

	checked := make(map[terrain.Coordinate]bool)
	var components [][]terrain.Coordinate
	total := len(g.order)

	for i := 0; i < sampleSize; i++ {
		node := g.order[i]
		if checked[node] {
			continue
		}
		comp := g.bfsComponent(node)
		for _, n := range comp {
			checked[n] = true
		}
		components = append(components, comp)
		if len(checked) >= int(float64(total)*0.9) {
			break
		}
	}

	if len(components) == 0 {
		return g.order
	}

	largest := components[0]
	for _, c := range components[1:] {
		if len(c) > len(largest) {
			largest = c
		}
	}
	return largest
}

func (g *graph) bfsComponent(start terrain.Coordinate) []terrain.Coordinate {
	visited := map[terrain.Coordinate]bool{start: true}
	queue := []terrain.Coordinate{start}
	component := []terrain.Coordinate{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range g.adjacency[current] {
			if !visited[e.to] {
				visited[e.to] = true
				component = append(component, e.to)
				queue = append(queue, e.to)
			}
		}
	}
	return component
}

func nearestNode(nodes []terrain.Coordinate, target terrain.Coordinate) terrain.Coordinate {
	best := nodes[0]
	bestDist := geometry.PlanarDistanceM(best, target)
	for _, n := range nodes[1:] {
		if d := geometry.PlanarDistanceM(n, target); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
