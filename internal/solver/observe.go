// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package solver

import (
	"math"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/rng"
)

// entropyNoise is the small coefficient applied to the PRNG draw that
// breaks entropy ties deterministically for a given seed: a cell's
// entropy is ln(|candidates|) plus this much noise.
const entropyNoise = 1e-6

// findLowestEntropy scans uncollapsed solve cells in a fixed cube order
// and returns the one with the lowest entropy, drawing one noise value
// per cell from source so the scan order — and therefore the result —
// is reproducible for a given seed. Returns ok=false once every solve
// cell is collapsed.
func (s *solver) findLowestEntropy(source *rng.Source) (coord.Cube, bool) {
	order := append([]coord.Cube(nil), s.input.SolveCells...)
	coord.SortCubes(order)

	best := coord.Cube{}
	bestEntropy := math.Inf(1)
	found := false
	for _, c := range order {
		cl := s.cells[c]
		if cl.collapsed {
			continue
		}
		noise := source.Float64()
		entropy := math.Log(float64(len(cl.candidates))) + entropyNoise*noise
		if !found || entropy < bestEntropy {
			best = c
			bestEntropy = entropy
			found = true
		}
	}
	return best, found
}

// collapse picks a weighted-random candidate for key and locks it in.
// A candidate matching Options.OverlapWeights[key] (a region re-solve's
// previous state) has its weight multiplied by Options.OverlapBias so
// re-solves tend to reproduce their prior shape.
func (s *solver) collapse(key coord.Cube, source *rng.Source) {
	cl := s.cells[key]
	weights := make([]float64, len(cl.candidates))
	total := 0.0

	overlap, hasOverlap := s.input.Options.OverlapWeights[key]
	var overlapKey = overlap.Key()

	for i, k := range cl.candidates {
		st := k.Decode()
		w := s.lib.Weight(st.Type, s.input.Options.WeightOverrides)
		if hasOverlap && k == overlapKey && s.input.Options.OverlapBias > 0 {
			w *= s.input.Options.OverlapBias
		}
		weights[i] = w
		total += w
	}

	chosen := cl.candidates[len(cl.candidates)-1]
	if total > 0 {
		r := source.Float64() * total
		cum := 0.0
		for i, w := range weights {
			cum += w
			if r < cum {
				chosen = cl.candidates[i]
				break
			}
		}
	}

	cl.candidates = cl.candidates[:1]
	cl.candidates[0] = chosen
	cl.collapsed = true
	s.collapseOrder = append(s.collapseOrder, key)
	s.push(key)
}
