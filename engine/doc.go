// Package engine wires the loader, pathfinders, risk scorer, pace
// estimator, selector, and exporter into the five mission-planning
// operations: generate, risk evaluation, pace estimation, selection,
// and export. It owns the request-scoped EngineState and stamps every
// response with the fixed handling/schema/crs descriptors.
package engine
