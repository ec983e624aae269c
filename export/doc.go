// Package export turns a selected route into deliverable files: a
// GeoJSON LineString, a GPX track with checkpoint waypoints, and a
// Markdown mission brief, each checksummed for integrity verification.
package export
