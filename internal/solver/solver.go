// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package solver

import (
	"sort"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/rng"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/tiles"
)

// Solve runs the constraint solver over in.SolveCells, honoring
// in.FixedCells as frozen neighbor constraints. It never reads or
// mutates anything outside in — the caller (internal/region) owns
// committing a successful Result to the world map.
//
// On a mid-solve contradiction the solve restarts, continuing the same
// PRNG sequence, up to in.Options.MaxRestarts times. A seeding
// contradiction (the fixed cells and/or initial collapses are
// unsolvable on their own) is returned immediately without spending any
// restart budget, since restarting cannot change a deterministic
// pre-propagation outcome.
func Solve(idx *rules.Index, in Input) (*Result, error) {
	s := newSolver(idx, in)
	source := rng.New(in.Options.Seed)

	maxRestarts := in.Options.MaxRestarts
	if maxRestarts < 0 {
		maxRestarts = 0
	}

	var lastErr *Contradiction
	for attempt := 0; attempt <= maxRestarts; attempt++ {
		s.reset()
		result, contra := s.runOnce(source)
		if contra == nil {
			return result, nil
		}
		if contra.Seeding {
			return nil, contra
		}
		lastErr = contra
	}
	return nil, lastErr
}

// newSolver precomputes everything that does not depend on the PRNG or
// on which attempt is running: the filtered legal state universe and
// the per-cell neighbor lists, built once and reused across restarts.
func newSolver(idx *rules.Index, in Input) *solver {
	s := &solver{
		idx:   idx,
		lib:   idx.Library(),
		input: in,
	}
	s.legalStates = filterLegalStates(idx.Library(), in.Options.AllowedTypes)
	s.fixedKeys = make(map[coord.Cube]tiles.Key, len(in.FixedCells))
	for c, state := range in.FixedCells {
		s.fixedKeys[c] = state.Key()
	}
	s.buildNeighbors()
	return s
}

// filterLegalStates restricts a library's legal states to allowedTypes,
// or returns every legal state if allowedTypes is empty. The result is
// sorted once so every cell starts from an identical, deterministic
// candidate order.
func filterLegalStates(lib *tiles.Library, allowedTypes []int) []tiles.Key {
	all := lib.LegalStates()
	var keys []tiles.Key
	if len(allowedTypes) == 0 {
		keys = make([]tiles.Key, 0, len(all))
		for _, s := range all {
			keys = append(keys, s.Key())
		}
	} else {
		allowed := make(map[int]bool, len(allowedTypes))
		for _, t := range allowedTypes {
			allowed[t] = true
		}
		for _, s := range all {
			if allowed[s.Type] {
				keys = append(keys, s.Key())
			}
		}
	}
	sortKeys(keys)
	return keys
}

// buildNeighbors computes, for every cube that can ever be pushed onto
// the propagation stack (a solve cell or a fixed cell), the list of its
// neighboring solve cells. Fixed cells only ever appear as the source
// side of an entry: their own candidate set never shrinks.
func (s *solver) buildNeighbors() {
	solveSet := make(map[coord.Cube]bool, len(s.input.SolveCells))
	for _, c := range s.input.SolveCells {
		solveSet[c] = true
	}

	s.neighbors = make(map[coord.Cube][]neighborEntry)
	addEntriesFrom := func(from coord.Cube) {
		for d := coord.Direction(0); d < coord.NumDirections; d++ {
			nb := from.Neighbor(d)
			if !solveSet[nb] || nb == from {
				continue
			}
			s.neighbors[from] = append(s.neighbors[from], neighborEntry{
				neighborKey: nb,
				dir:         d,
				returnDir:   coord.Opposite(d),
			})
		}
	}
	for _, c := range s.input.SolveCells {
		addEntriesFrom(c)
	}
	for c := range s.input.FixedCells {
		addEntriesFrom(c)
	}
}

// reset rebuilds the per-attempt mutable state (candidate sets, stack,
// collapse order) fresh, keeping the immutable precomputation from
// newSolver untouched. Called once per restart attempt.
func (s *solver) reset() {
	s.cells = make(map[coord.Cube]*cell, len(s.input.SolveCells))
	for _, c := range s.input.SolveCells {
		candidates := make([]tiles.Key, len(s.legalStates))
		copy(candidates, s.legalStates)
		s.cells[c] = &cell{candidates: candidates}
	}
	s.stack = nil
	s.collapseOrder = nil
}

// possibilitiesOf returns the current candidate keys for any pushable
// cube: a singleton for a fixed cell, the live candidate slice for a
// solve cell.
func (s *solver) possibilitiesOf(key coord.Cube) []tiles.Key {
	if fk, ok := s.fixedKeys[key]; ok {
		return []tiles.Key{fk}
	}
	if c, ok := s.cells[key]; ok {
		return c.candidates
	}
	return nil
}

// runOnce executes one full solve attempt: seed the stack from fixed
// cells and initial collapses, drain it (the "seeding" phase — any
// contradiction here is unrecoverable by restarting), then alternate
// observation and collapse until every solve cell is collapsed or a
// mid-solve contradiction occurs.
func (s *solver) runOnce(source *rng.Source) (*Result, *Contradiction) {
	s.seedStack()

	if contra := s.propagate(); contra != nil {
		contra.Seeding = true
		return nil, contra
	}

	for {
		key, ok := s.findLowestEntropy(source)
		if !ok {
			return s.buildResult(), nil
		}
		s.collapse(key, source)
		if contra := s.propagate(); contra != nil {
			return nil, contra
		}
	}
}

// seedStack applies in.Options.InitialCollapses to any solve cell they
// name, then pushes every fixed cell and every initially collapsed
// solve cell onto the propagation stack so their constraints reach
// neighboring solve cells before the first free observation. Initial
// collapses count as collapses, so they open the collapse order.
func (s *solver) seedStack() {
	order := append([]coord.Cube(nil), s.input.SolveCells...)
	coord.SortCubes(order)

	for _, c := range order {
		if state, ok := s.input.Options.InitialCollapses[c]; ok {
			if cl, ok := s.cells[c]; ok {
				cl.candidates = []tiles.Key{state.Key()}
				cl.collapsed = true
				s.collapseOrder = append(s.collapseOrder, c)
				s.push(c)
			}
		}
	}

	fixedOrder := make([]coord.Cube, 0, len(s.input.FixedCells))
	for c := range s.input.FixedCells {
		fixedOrder = append(fixedOrder, c)
	}
	coord.SortCubes(fixedOrder)
	for _, c := range fixedOrder {
		s.push(c)
	}
}

func (s *solver) push(key coord.Cube) {
	s.stack = append(s.stack, key)
}

func (s *solver) pop() (coord.Cube, bool) {
	if len(s.stack) == 0 {
		return coord.Cube{}, false
	}
	n := len(s.stack) - 1
	key := s.stack[n]
	s.stack = s.stack[:n]
	return key, true
}

func (s *solver) buildResult() *Result {
	states := make(map[coord.Cube]tiles.State, len(s.input.SolveCells))
	for c, cl := range s.cells {
		states[c] = cl.candidates[0].Decode()
	}
	order := make([]coord.Cube, len(s.collapseOrder))
	copy(order, s.collapseOrder)
	return &Result{States: states, CollapseOrder: order}
}

func sortKeys(keys []tiles.Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}
