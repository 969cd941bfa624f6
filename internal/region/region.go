// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package region

import (
	"context"
	"errors"
	"log"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/rng"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/solver"
	"github.com/hexwfc/world/internal/tiles"
)

// Coordinator drives Populate calls for one world: it owns no state of
// its own beyond the rule index and its collaborators, so a single
// Coordinator can be shared across every region in the world.
type Coordinator struct {
	Idx    *rules.Index
	View   MapView
	Solver Solver
}

// Populate runs region setup, pre-validation, the Phase 0/1/2 solve
// loop, and commit for req. On success the region has already been
// committed via View.CommitRegion; on terminal failure none of the
// region's own cells were committed and the region stays Placeholder.
// Fixed-cell replacements made along the way were already written back
// through View.ReplaceCell and stay in place either way.
func (co *Coordinator) Populate(ctx context.Context, req Request) (*Outcome, error) {
	rngSrc := rng.New(req.Seed)

	fixed := make(map[coord.Cube]tiles.State, len(req.FixedCells))
	for c, s := range req.FixedCells {
		fixed[c] = s
	}

	initial := make(map[coord.Cube]tiles.State, len(req.InitialCollapses))
	for c, s := range req.InitialCollapses {
		initial[c] = s
	}
	if len(fixed) == 0 && len(initial) == 0 {
		initial = defaultSeed(req, rngSrc)
	}

	vr := validate(co.Idx, co.View, req.SolveCells, fixed, rngSrc)
	fixed = vr.fixed

	result, err := co.trySolve(ctx, req, fixed, initial, rngSrc)
	if err == nil {
		return co.commit(req, result, vr)
	}

	contra, ok := err.(*solver.Contradiction)
	if !ok {
		return nil, err
	}
	log.Printf("region: %v, replacing fixed cells", contra)

	result, err = co.phase1(ctx, req, fixed, initial, contra, rngSrc, vr)
	if err == nil {
		return co.commit(req, result, vr)
	}
	contra, ok = err.(*solver.Contradiction)
	if !ok {
		return nil, err
	}
	log.Printf("region: %v, dropping fixed cells", contra)

	result, err = co.phase2(ctx, req, fixed, initial, rngSrc, vr)
	if err == nil {
		return co.commit(req, result, vr)
	}
	terminal := &Err{RegionID: req.RegionID, Last: err}
	log.Printf("region: %v", terminal)
	return nil, terminal
}

// trySolve runs exactly one solver invocation (Phase 0, and each
// retry attempt inside Phase 1/2) against the current fixed set.
func (co *Coordinator) trySolve(ctx context.Context, req Request, fixed, initial map[coord.Cube]tiles.State, rngSrc *rng.Source) (*solver.Result, error) {
	in := solver.Input{
		SolveCells: req.SolveCells,
		FixedCells: fixed,
		Options: solver.Options{
			Seed:             rngSrc.Uint32(),
			MaxRestarts:      req.MaxRestarts,
			InitialCollapses: initial,
		},
	}
	return co.Solver.Solve(ctx, co.Idx, in)
}

// phase1 replaces fixed cells one at a time, nearest the failed cell
// first, re-validating and re-solving after each replacement.
func (co *Coordinator) phase1(ctx context.Context, req Request, fixed, initial map[coord.Cube]tiles.State, contra *solver.Contradiction, rngSrc *rng.Source, vr validationResult) (*solver.Result, error) {
	order := make([]coord.Cube, 0, len(fixed))
	for c := range fixed {
		order = append(order, c)
	}
	coord.SortCubes(order)

	var adjacent, others []coord.Cube
	for _, c := range order {
		if c.Dist(contra.FailedCell) == 1 {
			adjacent = append(adjacent, c)
		} else {
			others = append(others, c)
		}
	}
	rngSrc.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	var lastErr error = contra
	for _, batch := range [][]coord.Cube{adjacent, others} {
		for _, c := range batch {
			state, ok := fixed[c]
			if !ok {
				continue
			}
			newState, ok := replaceFixedCell(co.Idx, co.View, c, state, fixed, rngSrc)
			if !ok {
				log.Printf("region: no replacement for fixed cell %+v", c)
				continue
			}
			fixed[c] = newState
			vr.replaced[c] = true
			if err := co.View.ReplaceCell(c, newState); err != nil {
				log.Printf("region: replace cell %+v: %v", c, err)
			}

			round := validate(co.Idx, co.View, req.SolveCells, fixed, rngSrc)
			fixed = round.fixed
			mergeValidation(vr, round)

			result, err := co.trySolve(ctx, req, fixed, initial, rngSrc)
			if err == nil {
				return result, nil
			}
			if c2, ok := err.(*solver.Contradiction); ok {
				lastErr = c2
			} else {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

// phase2 drops fixed cells one at a time, in shuffled order,
// re-solving after each drop.
func (co *Coordinator) phase2(ctx context.Context, req Request, fixed, initial map[coord.Cube]tiles.State, rngSrc *rng.Source, vr validationResult) (*solver.Result, error) {
	order := make([]coord.Cube, 0, len(fixed))
	for c := range fixed {
		order = append(order, c)
	}
	coord.SortCubes(order)
	rngSrc.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var lastErr error = errors.New("region: no fixed cells left to drop")
	for _, c := range order {
		delete(fixed, c)
		vr.dropped[c] = true
		log.Printf("region: dropped fixed cell %+v", c)

		result, err := co.trySolve(ctx, req, fixed, initial, rngSrc)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// commit writes a successful result into the world map.
func (co *Coordinator) commit(req Request, result *solver.Result, vr validationResult) (*Outcome, error) {
	if err := co.View.CommitRegion(req.RegionID, result.States); err != nil {
		return nil, err
	}
	return &Outcome{
		States:        result.States,
		CollapseOrder: result.CollapseOrder,
		Dropped:       keysOf(vr.dropped),
		Replaced:      keysOf(vr.replaced),
	}, nil
}

func mergeValidation(dst, src validationResult) {
	for c := range src.dropped {
		dst.dropped[c] = true
	}
	for c := range src.replaced {
		dst.replaced[c] = true
	}
}

func keysOf(m map[coord.Cube]bool) []coord.Cube {
	out := make([]coord.Cube, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	coord.SortCubes(out)
	return out
}

// defaultSeed is the fallback for a region with no fixed neighbors at
// all (the origin region): the center cell is forced to flat grass,
// and with probability 0.5 one randomly chosen angular sector of the
// region is additionally forced to water.
func defaultSeed(req Request, rngSrc *rng.Source) map[coord.Cube]tiles.State {
	initial := map[coord.Cube]tiles.State{
		req.Center: {Type: req.Catalog.GrassType, Rotation: 0, Level: 0},
	}
	if !rngSrc.Bool(0.5) {
		return initial
	}
	sector := coord.Direction(rngSrc.Intn(coord.NumDirections))
	for _, c := range req.SolveCells {
		if c == req.Center {
			continue
		}
		if coord.Sector(req.Center, c) == sector {
			initial[c] = tiles.State{Type: req.Catalog.WaterType, Rotation: 0, Level: 0}
		}
	}
	return initial
}
