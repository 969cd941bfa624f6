// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package region drives solving of one region: region setup,
// pre-validation of the fixed-cell snapshot it was handed, the Phase
// 0/1/2 solve loop (solve as-is, then replace fixed cells, then drop
// them), and commit. It never talks to the world map directly — it
// accepts a MapView and a Solver, both satisfied structurally by
// internal/worldmap and internal/worker, so this package has no
// import-cycle back to either.
package region

import (
	"context"

	"github.com/google/uuid"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/solver"
	"github.com/hexwfc/world/internal/tiles"
)

// MapView is the slice of the World Map the coordinator needs: reading
// already-committed neighbor state for fixed-cell replacement, and
// committing a finished solve.
type MapView interface {
	// CommittedNeighbors returns, for each direction c has a committed
	// neighbor in the global cell store, that neighbor's state.
	CommittedNeighbors(c coord.Cube) map[coord.Direction]tiles.State

	// CommitRegion writes every cell in states into the global cell
	// store under regionID and transitions the region to Populated.
	CommitRegion(regionID uuid.UUID, states map[coord.Cube]tiles.State) error

	// ReplaceCell overwrites one already-committed cell's state in the
	// global cell store in place. A replaced fixed cell belongs to a
	// neighboring, already-Populated region, so it is written back
	// immediately rather than deferred to this region's own commit.
	ReplaceCell(c coord.Cube, newState tiles.State) error
}

// Solver is the subset of internal/worker.Worker the coordinator needs,
// accepted as an interface so tests can substitute a direct, unbuffered
// solver.Solve call without starting a goroutine.
type Solver interface {
	Solve(ctx context.Context, idx *rules.Index, in solver.Input) (*solver.Result, error)
}

// Catalog names the two tile types default region seeding needs by
// index rather than hardcoding them, since which catalog entries are
// "grass" and "water" is data, not code.
type Catalog struct {
	GrassType int
	WaterType int
}

// Request is everything Populate needs to solve one region.
type Request struct {
	RegionID   uuid.UUID
	Center     coord.Cube
	SolveCells []coord.Cube
	FixedCells map[coord.Cube]tiles.State

	// InitialCollapses forces specific solve cells to a given state
	// before the solve begins. When both this and FixedCells are empty
	// the coordinator falls back to its own default seeding (center
	// grass, optional water sector).
	InitialCollapses map[coord.Cube]tiles.State

	// Seed drives every PRNG decision made while solving this region:
	// the center/water default seeding coin flip, each solver
	// invocation's own seed, and every shuffle order used during
	// fixed-cell replacement. A single region-scoped source plays that
	// role across every phase, since the solver itself only lives for
	// the duration of one Solve call.
	Seed uint32

	Catalog Catalog

	// MaxRestarts bounds each individual solver invocation's own
	// restart budget. One uniform value regardless of phase.
	MaxRestarts int
}

// Outcome is a populated region's result, ready for MapView.CommitRegion.
type Outcome struct {
	States        map[coord.Cube]tiles.State
	Dropped       []coord.Cube
	Replaced      []coord.Cube
	CollapseOrder []coord.Cube
}

// Err is returned when every phase is exhausted: the region remains
// unpopulated and nothing was committed.
type Err struct {
	RegionID uuid.UUID
	Last     error
}

func (e *Err) Error() string {
	return "region: " + e.RegionID.String() + " exhausted phase 0/1/2: " + e.Last.Error()
}

func (e *Err) Unwrap() error { return e.Last }
