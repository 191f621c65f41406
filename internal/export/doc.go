// Package export serializes rating sets to JSON and CSV and reads them
// back. JSON round-trips losslessly; CSV flattens the metadata map into
// a single JSON-encoded column, an accepted lossy boundary.
package export
