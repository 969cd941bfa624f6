// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package solver

import (
	"sort"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/tiles"
)

// propagate drains the stack: for each popped key, every neighboring
// solve cell's candidate set is intersected against the union of edges
// the popped key's remaining possibilities allow. A cell whose set
// shrinks is re-pushed so its own neighbors get re-checked; a cell
// whose set empties is a contradiction. Collapsed cells are narrowed
// like any other — a later constraint arriving at a singleton either
// agrees with it or empties it, and the empty set is exactly the
// contradiction that must surface.
func (s *solver) propagate() *Contradiction {
	for {
		key, ok := s.pop()
		if !ok {
			return nil
		}
		poss := s.possibilitiesOf(key)
		if len(poss) == 0 {
			continue
		}
		for _, entry := range s.neighbors[key] {
			nc := s.cells[entry.neighborKey]
			if nc == nil {
				continue
			}
			allowed := s.unionAllowed(poss, entry.dir, entry.returnDir)
			narrowed := intersectSorted(nc.candidates, allowed)
			if len(narrowed) == 0 {
				return &Contradiction{
					FailedCell:     entry.neighborKey,
					SourceCell:     key,
					Direction:      entry.dir,
					AllowedEdges:   allowed,
					LastCandidates: nc.candidates,
				}
			}
			if len(narrowed) < len(nc.candidates) {
				nc.candidates = narrowed
				if len(narrowed) == 1 && !nc.collapsed {
					nc.collapsed = true
					s.collapseOrder = append(s.collapseOrder, entry.neighborKey)
				}
				s.push(entry.neighborKey)
			}
		}
	}
}

// unionAllowed returns, for a set of possibility keys exposed toward a
// neighbor on dir, the union of every state key the rule index says may
// legally sit across returnDir from any one of them. Deduplicated and
// sorted so the result composes with intersectSorted.
func (s *solver) unionAllowed(poss []tiles.Key, dir, returnDir coord.Direction) []tiles.Key {
	seen := make(map[tiles.Key]bool)
	var out []tiles.Key
	for _, p := range poss {
		label, level := s.idx.EdgeAt(p, dir)
		for _, cand := range s.idx.CandidatesForEdge(label, returnDir, level) {
			if !seen[cand] {
				seen[cand] = true
				out = append(out, cand)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// intersectSorted merges two ascending, deduplicated key slices and
// returns their intersection, still ascending.
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
