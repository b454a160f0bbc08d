package grid

import "fmt"

// TopologyError reports non-manifold face sharing or inverted cell ordering.
// It is fatal: conversion aborts and nothing is auto-corrected.
type TopologyError struct {
	Cell   int
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("mesh topology error at cell %d: %s", e.Cell, e.Reason)
}

// GeometryError reports a degenerate cell with non-positive computed volume
// where one is not expected. Under the Warn policy the volume is clamped to
// zero and logged instead.
type GeometryError struct {
	Cell   int
	Volume float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry error at cell %d: non-positive volume %g", e.Cell, e.Volume)
}
