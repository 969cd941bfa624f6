// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rules builds the adjacency tables that let the solver answer,
// in O(1), "which tile states expose label L at level ℓ on direction
// dir" — the propagation step's hot path. It is built once from a
// tiles.Library and never mutated afterwards.
package rules

import (
	"sort"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/tiles"
)

// edgeSet is what one state exposes on each of the six directions.
type edgeSet [coord.NumDirections]edgeValue

type edgeValue struct {
	label tiles.Label
	level int
}

// byEdgeKey indexes the by_edge table: label -> direction -> level ->
// sorted state keys.
type byEdgeKey struct {
	label tiles.Label
	dir   coord.Direction
	level int
}

// Index is the precomputed adjacency rule set for a tiles.Library.
type Index struct {
	lib *tiles.Library

	stateEdges map[tiles.Key]edgeSet
	byEdge     map[byEdgeKey][]tiles.Key

	// byEdgeAnyLevel unions every level's bucket for a (label, dir) pair,
	// precomputed once so the grass-any-level lookup is also O(1) instead
	// of re-unioning per propagation step.
	byEdgeAnyLevel map[labelDirKey][]tiles.Key
}

type labelDirKey struct {
	label tiles.Label
	dir   coord.Direction
}

// Build enumerates every legal state of lib and constructs both
// lookup tables: per-state edge exposure and the by-edge buckets.
func Build(lib *tiles.Library) *Index {
	idx := &Index{
		lib:            lib,
		stateEdges:     make(map[tiles.Key]edgeSet),
		byEdge:         make(map[byEdgeKey][]tiles.Key),
		byEdgeAnyLevel: make(map[labelDirKey][]tiles.Key),
	}

	states := lib.LegalStates()
	// Sort up front so every bucket appended to below fills in a
	// deterministic order without a second sort pass at query time.
	sort.Slice(states, func(i, j int) bool { return states[i].Key() < states[j].Key() })

	for _, s := range states {
		key := s.Key()
		var es edgeSet
		for d := coord.Direction(0); d < coord.NumDirections; d++ {
			label := lib.EdgeLabel(s, d)
			level := lib.EdgeLevel(s, d)
			es[d] = edgeValue{label: label, level: level}
			bek := byEdgeKey{label: label, dir: d, level: level}
			idx.byEdge[bek] = append(idx.byEdge[bek], key)
			ldk := labelDirKey{label: label, dir: d}
			idx.byEdgeAnyLevel[ldk] = append(idx.byEdgeAnyLevel[ldk], key)
		}
		idx.stateEdges[key] = es
	}
	return idx
}

// Library returns the tiles.Library this index was built from.
func (idx *Index) Library() *tiles.Library { return idx.lib }

// EdgeAt returns the label and level State key exposes on direction dir.
func (idx *Index) EdgeAt(key tiles.Key, dir coord.Direction) (tiles.Label, int) {
	es := idx.stateEdges[key]
	return es[dir].label, es[dir].level
}

// CandidatesFor returns every state key that exposes (label, level) on
// direction returnDir. The returned slice must not be mutated by the
// caller; it is the index's own backing storage, already sorted, shared
// across calls for speed.
func (idx *Index) CandidatesFor(label tiles.Label, returnDir coord.Direction, level int) []tiles.Key {
	return idx.byEdge[byEdgeKey{label: label, dir: returnDir, level: level}]
}

// CandidatesForAnyLevel returns every state key that exposes label on
// direction returnDir at any level — the union a level-agnostic label
// needs.
func (idx *Index) CandidatesForAnyLevel(label tiles.Label, returnDir coord.Direction) []tiles.Key {
	return idx.byEdgeAnyLevel[labelDirKey{label: label, dir: returnDir}]
}

// CandidatesForEdge is the single entry point propagation should use:
// it applies the grass-any-level rule automatically, and uniformly,
// based on the label's LevelAgnostic() property.
func (idx *Index) CandidatesForEdge(label tiles.Label, returnDir coord.Direction, level int) []tiles.Key {
	if label.LevelAgnostic() {
		return idx.CandidatesForAnyLevel(label, returnDir)
	}
	return idx.CandidatesFor(label, returnDir, level)
}
