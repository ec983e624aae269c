// Package gridpath implements weighted eight-connected A* search over a
// DEM/landcover grid, and the three named cost profiles that turn a
// single path into a scored route candidate.
//
// Complexity: O(H*W*(log(H*W) + R)) worst case per profile, where R is
// the number of road vertices checked for road proximity on each
// neighbor expansion; with no roads this is the heap-based Dijkstra bound.
package gridpath
