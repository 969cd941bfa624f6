// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package region

import (
	"log"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/rng"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/tiles"
)

// maxValidationRounds bounds the pre-validation re-check loop.
const maxValidationRounds = 50

// validationResult is what pre-validation leaves behind for the Phase
// 0/1/2 loop and for the final Outcome.
type validationResult struct {
	fixed    map[coord.Cube]tiles.State
	dropped  map[coord.Cube]bool
	replaced map[coord.Cube]bool
}

// edgeMatchesLocked reports whether the state candKey decodes to exposes
// lockedLabel (and, unless it is level-agnostic, lockedLevel) on dir.
func edgeMatchesLocked(idx *rules.Index, candKey tiles.Key, dir coord.Direction, lockedLabel tiles.Label, lockedLevel int) bool {
	label, level := idx.EdgeAt(candKey, dir)
	if label != lockedLabel {
		return false
	}
	if lockedLabel.LevelAgnostic() {
		return true
	}
	return level == lockedLevel
}

// compatibleAcross reports whether a's edge facing b (direction dir)
// and b's edge facing a (direction Opposite(dir)) agree: same label,
// and same level unless the label is level-agnostic (grass).
func compatibleAcross(idx *rules.Index, a tiles.Key, dir coord.Direction, b tiles.Key) bool {
	labelB, levelB := idx.EdgeAt(b, coord.Opposite(dir))
	return edgeMatchesLocked(idx, a, dir, labelB, levelB)
}

// pairwiseRound walks fixed in sorted cube order, inserting each into
// a "validated so far" set. A newly inserted cell that conflicts with
// an already-validated neighbor is replaced or, failing that, dropped.
// Returns whether anything changed.
func pairwiseRound(idx *rules.Index, view MapView, fixed map[coord.Cube]tiles.State, dropped, replaced map[coord.Cube]bool, rngSrc *rng.Source) bool {
	order := make([]coord.Cube, 0, len(fixed))
	for c := range fixed {
		order = append(order, c)
	}
	coord.SortCubes(order)

	validated := make(map[coord.Cube]bool, len(order))
	changed := false
	for _, c := range order {
		state := fixed[c]
		conflict := false
		for d := coord.Direction(0); d < coord.NumDirections; d++ {
			nb := c.Neighbor(d)
			if !validated[nb] {
				continue
			}
			nbState, ok := fixed[nb]
			if !ok {
				continue
			}
			if !compatibleAcross(idx, state.Key(), d, nbState.Key()) {
				conflict = true
				break
			}
		}
		if !conflict {
			validated[c] = true
			continue
		}
		changed = true
		if newState, ok := replaceFixedCell(idx, view, c, state, fixed, rngSrc); ok {
			fixed[c] = newState
			validated[c] = true
			replaced[c] = true
			if err := view.ReplaceCell(c, newState); err != nil {
				log.Printf("region: replace cell %+v: %v", c, err)
			}
		} else {
			delete(fixed, c)
			dropped[c] = true
			log.Printf("region: dropped conflicting fixed cell %+v", c)
		}
	}
	return changed
}

// multiFixedRound flags every solve cell adjacent to two or more fixed
// cells whose demanded edges have no common candidate, then attempts
// replacement on one offending fixed neighbor, dropping it if
// replacement fails. Returns whether anything changed.
func multiFixedRound(idx *rules.Index, view MapView, solveCells []coord.Cube, fixed map[coord.Cube]tiles.State, dropped, replaced map[coord.Cube]bool, rngSrc *rng.Source) bool {
	changed := false
	cells := append([]coord.Cube(nil), solveCells...)
	coord.SortCubes(cells)

	for _, sc := range cells {
		var neighbors []coord.Cube
		for d := coord.Direction(0); d < coord.NumDirections; d++ {
			nb := sc.Neighbor(d)
			if _, ok := fixed[nb]; ok {
				neighbors = append(neighbors, nb)
			}
		}
		if len(neighbors) < 2 {
			continue
		}
		if !overConstrained(idx, sc, neighbors, fixed) {
			continue
		}
		changed = true
		offender := neighbors[0]
		state := fixed[offender]
		if newState, ok := replaceFixedCell(idx, view, offender, state, fixed, rngSrc); ok {
			fixed[offender] = newState
			replaced[offender] = true
			if err := view.ReplaceCell(offender, newState); err != nil {
				log.Printf("region: replace cell %+v: %v", offender, err)
			}
		} else {
			delete(fixed, offender)
			dropped[offender] = true
			log.Printf("region: dropped over-constraining fixed cell %+v", offender)
		}
	}
	return changed
}

// overConstrained reports whether the candidate states demanded by
// neighbors (each a fixed cell adjacent to sc) have an empty
// intersection — no single tile at sc could satisfy all of them at
// once.
func overConstrained(idx *rules.Index, sc coord.Cube, neighbors []coord.Cube, fixed map[coord.Cube]tiles.State) bool {
	var acc []tiles.Key
	for i, nb := range neighbors {
		dir := coord.Sector(sc, nb)
		label, level := idx.EdgeAt(fixed[nb].Key(), coord.Opposite(dir))
		candidates := idx.CandidatesForEdge(label, dir, level)
		if i == 0 {
			acc = append([]tiles.Key(nil), candidates...)
			continue
		}
		acc = intersectSorted(acc, candidates)
		if len(acc) == 0 {
			return true
		}
	}
	return len(acc) == 0
}

// intersectSorted merges two ascending key slices and returns their
// intersection, still ascending. Both inputs are already sorted:
// candidate buckets come straight from the rule index (sorted once at
// construction) and every accumulator built from intersectSorted stays
// sorted by induction.
func intersectSorted(a, b []tiles.Key) []tiles.Key {
	var out []tiles.Key
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// validate runs pairwise and multi-fixed pre-validation to a fixed
// point, bounded by maxValidationRounds.
func validate(idx *rules.Index, view MapView, solveCells []coord.Cube, fixed map[coord.Cube]tiles.State, rngSrc *rng.Source) validationResult {
	dropped := make(map[coord.Cube]bool)
	replaced := make(map[coord.Cube]bool)

	for round := 0; round < maxValidationRounds; round++ {
		changedPairwise := pairwiseRound(idx, view, fixed, dropped, replaced, rngSrc)
		changedMulti := multiFixedRound(idx, view, solveCells, fixed, dropped, replaced, rngSrc)
		if !changedPairwise && !changedMulti {
			break
		}
	}

	return validationResult{fixed: fixed, dropped: dropped, replaced: replaced}
}
