// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package region

import (
	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/rng"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/tiles"
)

// replaceFixedCell finds a different tile type (same level, same slot
// in the global map) for c that still satisfies every edge its already-
// committed global-map neighbors demand, and every edge the rest of the
// region's own working fixed set demands. Candidates are shuffled so
// replacement is unbiased toward low-index tiles yet still
// deterministic under the region seed.
func replaceFixedCell(idx *rules.Index, view MapView, c coord.Cube, current tiles.State, working map[coord.Cube]tiles.State, rngSrc *rng.Source) (tiles.State, bool) {
	locked := view.CommittedNeighbors(c)

	var matches []tiles.Key
	for _, s := range idx.Library().LegalStates() {
		if s.Type == current.Type || s.Level != current.Level {
			continue
		}
		key := s.Key()
		if satisfiesLocked(idx, key, locked) && satisfiesWorking(idx, c, key, working) {
			matches = append(matches, key)
		}
	}
	if len(matches) == 0 {
		return tiles.State{}, false
	}

	rngSrc.Shuffle(len(matches), func(i, j int) { matches[i], matches[j] = matches[j], matches[i] })
	chosen := matches[0].Decode()
	return chosen, true
}

// satisfiesLocked reports whether candidate matches every label (and,
// unless level-agnostic, level) the already-committed neighbors in
// locked demand on their shared direction.
func satisfiesLocked(idx *rules.Index, candidate tiles.Key, locked map[coord.Direction]tiles.State) bool {
	for dir, neighborState := range locked {
		label, level := idx.EdgeAt(neighborState.Key(), coord.Opposite(dir))
		if !edgeMatchesLocked(idx, candidate, dir, label, level) {
			return false
		}
	}
	return true
}

// satisfiesWorking reports whether candidate, placed at c, is
// compatible with every other fixed cell in the region's current
// working set that happens to be a cube-neighbor of c.
func satisfiesWorking(idx *rules.Index, c coord.Cube, candidate tiles.Key, working map[coord.Cube]tiles.State) bool {
	for d := coord.Direction(0); d < coord.NumDirections; d++ {
		nb := c.Neighbor(d)
		state, ok := working[nb]
		if !ok {
			continue
		}
		if !compatibleAcross(idx, candidate, d, state.Key()) {
			return false
		}
	}
	return true
}
