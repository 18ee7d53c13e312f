// Package store provides the point fixture file format and an mmap-backed
// reader for it. Fixtures feed the driver with reproducible starting
// positions; the tree itself is always rebuilt in memory.
//
// The file format consists of:
//   - Header (64 bytes): magic, version, record count, bounds
//   - Records: count × {x float64, y float64, id [16]byte}, little-endian
package store
