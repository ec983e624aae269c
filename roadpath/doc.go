// Package roadpath finds routes over an imported road network using a
// capped, heap-based Dijkstra search, snapping arbitrary start/goal
// coordinates onto the network's largest connected component first.
package roadpath
