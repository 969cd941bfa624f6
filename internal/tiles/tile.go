// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tiles

import "github.com/hexwfc/world/internal/coord"

// TileDef is one catalog entry: a tile kind with its six edge labels (in
// NE-first canonical direction order), the subset of edges that sit
// LevelIncrement above the tile's base level (making the tile a slope),
// and a positive selection weight. Name is the mesh name a renderer
// resolves against its loaded geometry; the core never opens that
// geometry itself.
type TileDef struct {
	Name           string
	Edges          [coord.NumDirections]Label
	HighEdges      [coord.NumDirections]bool
	LevelIncrement int
	Weight         float64
}

// IsSlope reports whether the tile has any high edge. A tile without
// high edges is flat: every edge sits at base_level.
func (t *TileDef) IsSlope() bool {
	for _, high := range t.HighEdges {
		if high {
			return true
		}
	}
	return false
}

// RotateEdges cyclically permutes edges so that edges[i] lands in slot
// (i+rotation) mod 6, for rotation in 0..5 (multiples of 60 degrees).
func RotateEdges(edges [coord.NumDirections]Label, rotation int) [coord.NumDirections]Label {
	var out [coord.NumDirections]Label
	for i, label := range edges {
		out[(i+rotation)%coord.NumDirections] = label
	}
	return out
}

// rotateHighEdges applies the same cyclic permutation to a high-edge set.
func rotateHighEdges(high [coord.NumDirections]bool, rotation int) [coord.NumDirections]bool {
	var out [coord.NumDirections]bool
	for i, h := range high {
		out[(i+rotation)%coord.NumDirections] = h
	}
	return out
}

// State is a collapsed or candidate tile placement: a tile type index
// into a Library, a rotation (multiples of 60 degrees, 0..5), and an
// elevation level.
type State struct {
	Type     int
	Rotation int
	Level    int
}

// Key is a stable, compact encoding of a State usable as a map key and
// for deterministic sorting: three fixed-width fields combined into one
// integer by plain shifts.
type Key uint64

// Key returns s's stable encoding.
func (s State) Key() Key {
	return Key(uint64(s.Type)<<32 | uint64(s.Rotation)<<16 | uint64(s.Level))
}

// Decode recovers the State a Key was built from.
func (k Key) Decode() State {
	return State{
		Type:     int(k >> 32),
		Rotation: int((k >> 16) & 0xFFFF),
		Level:    int(k & 0xFFFF),
	}
}

// rotationCacheKey packs (type, rotation) for the memoization caches
// below — rotated edges depend only on these two fields, never on level.
func rotationCacheKey(typeIdx, rotation int) uint32 {
	return uint32(typeIdx)<<8 | uint32(rotation)
}

// Library is the immutable, indexed catalog of tile kinds built once at
// startup. Rotated edge data is memoized per (type, rotation) since the
// solver asks for the same handful of rotations millions of times.
type Library struct {
	Types          []TileDef
	LevelsCount    int
	rotatedEdges   map[uint32][coord.NumDirections]Label
	rotatedHighEnd map[uint32][coord.NumDirections]bool
}

// NewLibrary builds a Library from the given tile definitions. levels is
// the total number of elevation levels the world supports.
func NewLibrary(types []TileDef, levels int) *Library {
	return &Library{
		Types:          types,
		LevelsCount:    levels,
		rotatedEdges:   make(map[uint32][coord.NumDirections]Label),
		rotatedHighEnd: make(map[uint32][coord.NumDirections]bool),
	}
}

// RotatedEdges returns the edge labels of tile type typeIdx after
// applying rotation, memoized per (typeIdx, rotation).
func (lib *Library) RotatedEdges(typeIdx, rotation int) [coord.NumDirections]Label {
	key := rotationCacheKey(typeIdx, rotation)
	if edges, ok := lib.rotatedEdges[key]; ok {
		return edges
	}
	edges := RotateEdges(lib.Types[typeIdx].Edges, rotation)
	lib.rotatedEdges[key] = edges
	return edges
}

// RotatedHighEdges returns the high-edge set of tile type typeIdx after
// applying rotation, memoized per (typeIdx, rotation).
func (lib *Library) RotatedHighEdges(typeIdx, rotation int) [coord.NumDirections]bool {
	key := rotationCacheKey(typeIdx, rotation)
	if high, ok := lib.rotatedHighEnd[key]; ok {
		return high
	}
	high := rotateHighEdges(lib.Types[typeIdx].HighEdges, rotation)
	lib.rotatedHighEnd[key] = high
	return high
}

// EdgeLabel returns the label State s exposes on direction dir.
func (lib *Library) EdgeLabel(s State, dir coord.Direction) Label {
	return lib.RotatedEdges(s.Type, s.Rotation)[dir]
}

// EdgeLevel returns base_level + increment if dir is a high edge of
// State s after rotation, else base_level (s.Level).
func (lib *Library) EdgeLevel(s State, dir coord.Direction) int {
	if lib.RotatedHighEdges(s.Type, s.Rotation)[dir] {
		return s.Level + lib.Types[s.Type].LevelIncrement
	}
	return s.Level
}

// edgeSignature is what distinguishes one rotation of a tile from
// another: the rotated labels plus the rotated high-edge set.
type edgeSignature struct {
	edges [coord.NumDirections]Label
	high  [coord.NumDirections]bool
}

// LegalStates enumerates every (type, rotation, level) triple that
// satisfies the slope level bound level + increment <= LevelsCount - 1
// for slope tiles; flat tiles are legal at any level in range.
//
// Rotations that expose the same edge signature as a lower rotation of
// the same tile are skipped: a fully symmetric tile contributes only
// rotation 0. Duplicate rotations are indistinguishable on every edge,
// so keeping them would only dilute collapse weights and inflate the
// candidate sets.
func (lib *Library) LegalStates() []State {
	var out []State
	for typeIdx, def := range lib.Types {
		maxLevel := lib.LevelsCount - 1
		slopeBound := maxLevel
		if def.IsSlope() {
			slopeBound = maxLevel - def.LevelIncrement
		}
		if slopeBound < 0 {
			continue // this tile's increment doesn't fit in the world at all.
		}
		seen := make(map[edgeSignature]bool, coord.NumDirections)
		for rotation := 0; rotation < coord.NumDirections; rotation++ {
			sig := edgeSignature{
				edges: lib.RotatedEdges(typeIdx, rotation),
				high:  lib.RotatedHighEdges(typeIdx, rotation),
			}
			if seen[sig] {
				continue
			}
			seen[sig] = true
			for level := 0; level <= slopeBound; level++ {
				out = append(out, State{Type: typeIdx, Rotation: rotation, Level: level})
			}
		}
	}
	return out
}

// Weight returns the selection weight for tile type typeIdx, honoring an
// optional per-solve override map before falling back to the catalog's
// own weight.
func (lib *Library) Weight(typeIdx int, overrides map[string]float64) float64 {
	def := lib.Types[typeIdx]
	if overrides != nil {
		if w, ok := overrides[def.Name]; ok {
			return w
		}
	}
	return def.Weight
}
