// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package solver implements the constraint-propagation Wave Function
// Collapse solver: given a set of cube-coordinate cells to collapse and
// a frozen set of fixed-neighbor constraints, it either produces a
// fully collapsed result or a contradiction record describing exactly
// where and why the solve failed.
//
// The solver only ever sees its own cell set and a snapshot of fixed
// states — it never reads or writes anything outside the Input it is
// given, so it can run on a background goroutine without sharing the
// world map.
package solver

import (
	"fmt"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/tiles"
)

// Options tunes one Solve call.
type Options struct {
	// WeightOverrides replaces a tile type's catalog weight by name for
	// this solve only.
	WeightOverrides map[string]float64

	// Seed drives the solver's PRNG. Identical Input+Seed always
	// produces an identical Result and CollapseOrder.
	Seed uint32

	// MaxRestarts bounds how many times a mid-solve contradiction may
	// trigger a full re-initialization before the solve gives up.
	MaxRestarts int

	// InitialCollapses forces specific solve cells to a given state
	// before propagation/observation begins.
	InitialCollapses map[coord.Cube]tiles.State

	// OverlapWeights biases collapse toward a previous state per cell
	// (used when a region re-solves) by multiplying that state's weight
	// by OverlapBias.
	OverlapWeights map[coord.Cube]tiles.State
	OverlapBias    float64

	// AllowedTypes restricts the legal state universe to these tile type
	// indices. A nil/empty slice means every type in the library.
	AllowedTypes []int
}

// Input is everything one Solve call needs.
type Input struct {
	SolveCells []coord.Cube
	FixedCells map[coord.Cube]tiles.State
	Options    Options
}

// Result is a successful solve's output.
type Result struct {
	States        map[coord.Cube]tiles.State
	CollapseOrder []coord.Cube
}

// Contradiction is returned when a solve cannot complete: some cell's
// candidate set emptied during propagation.
type Contradiction struct {
	FailedCell     coord.Cube
	SourceCell     coord.Cube
	Direction      coord.Direction
	AllowedEdges   []tiles.Key
	LastCandidates []tiles.Key

	// Seeding is true when the contradiction occurred before any free
	// collapse happened this attempt — i.e. the fixed cells and/or
	// initial collapses alone are unsolvable. A seeding contradiction is
	// not recoverable by restarting: pre-propagation is deterministic,
	// so every retry would fail the same way.
	Seeding bool
}

func (c *Contradiction) Error() string {
	kind := "mid-solve"
	if c.Seeding {
		kind = "seeding"
	}
	return fmt.Sprintf("solver: %s contradiction at %+v (from %+v via %s)", kind, c.FailedCell, c.SourceCell, c.Direction)
}

// solver holds the mutable state of one Solve call: the per-cell
// candidate sets, the frozen fixed set, the precomputed neighbor lists,
// and the propagation stack.
type solver struct {
	idx   *rules.Index
	lib   *tiles.Library
	input Input

	legalStates []tiles.Key // filtered by Options.AllowedTypes, sorted.

	cells     map[coord.Cube]*cell
	fixedKeys map[coord.Cube]tiles.Key // cached State.Key() per fixed cell.
	neighbors map[coord.Cube][]neighborEntry

	stack         []coord.Cube
	collapseOrder []coord.Cube
}

// cell is one solve cell's mutable WFC state.
type cell struct {
	candidates []tiles.Key // sorted, deduplicated.
	collapsed  bool
}

// neighborEntry records, for a pushable key (solve or fixed cell), one
// neighboring solve cell whose candidates must be re-checked whenever
// the pushable key's possibility set shrinks.
type neighborEntry struct {
	neighborKey coord.Cube
	dir         coord.Direction // direction from the pushable key toward neighborKey.
	returnDir   coord.Direction // direction from neighborKey back toward the pushable key.
}
