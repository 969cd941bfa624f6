// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tiles

import (
	"testing"

	"github.com/hexwfc/world/internal/coord"
)

func grassTile() TileDef {
	return TileDef{
		Name:   "grass",
		Edges:  [coord.NumDirections]Label{Grass, Grass, Grass, Grass, Grass, Grass},
		Weight: 300,
	}
}

func slopeTile() TileDef {
	return TileDef{
		Name:           "slope",
		Edges:          [coord.NumDirections]Label{Grass, Road, Grass, Grass, Grass, Grass},
		HighEdges:      [coord.NumDirections]bool{false, true, false, false, false, false},
		LevelIncrement: 1,
		Weight:         10,
	}
}

func TestRotateEdgesIdentity(t *testing.T) {
	edges := [coord.NumDirections]Label{Grass, Road, River, Ocean, Coast, Water}
	got := RotateEdges(edges, 0)
	if got != edges {
		t.Errorf("rotation 0 should be identity, got %v", got)
	}
}

func TestRotateEdgesShiftsBySlot(t *testing.T) {
	edges := [coord.NumDirections]Label{Grass, Road, River, Ocean, Coast, Water}
	got := RotateEdges(edges, 2)
	for i, label := range edges {
		if got[(i+2)%coord.NumDirections] != label {
			t.Errorf("edges[%d]=%v should have moved to slot %d, got %v", i, label, (i+2)%coord.NumDirections, got[(i+2)%coord.NumDirections])
		}
	}
}

func TestRotateEdgesFullCircle(t *testing.T) {
	edges := [coord.NumDirections]Label{Grass, Road, River, Ocean, Coast, Water}
	got := RotateEdges(edges, 6)
	if got != edges {
		t.Errorf("rotating 6 slots should be identity, got %v", got)
	}
}

func TestStateKeyRoundTrip(t *testing.T) {
	s := State{Type: 3, Rotation: 5, Level: 7}
	if got := s.Key().Decode(); got != s {
		t.Errorf("Key/Decode round trip: got %+v, want %+v", got, s)
	}
}

func TestEdgeLevelForSlopeTile(t *testing.T) {
	lib := NewLibrary([]TileDef{slopeTile()}, 4)
	s := State{Type: 0, Rotation: 0, Level: 1}
	if got := lib.EdgeLevel(s, coord.E); got != 2 {
		t.Errorf("high edge E: EdgeLevel = %d, want 2", got)
	}
	if got := lib.EdgeLevel(s, coord.NE); got != 1 {
		t.Errorf("low edge NE: EdgeLevel = %d, want 1", got)
	}
}

func TestEdgeLevelRotatesHighEdge(t *testing.T) {
	lib := NewLibrary([]TileDef{slopeTile()}, 4)
	// rotate by 1: the high edge (originally E) moves to SE.
	s := State{Type: 0, Rotation: 1, Level: 0}
	if got := lib.EdgeLevel(s, coord.SE); got != 1 {
		t.Errorf("rotated high edge SE: EdgeLevel = %d, want 1", got)
	}
	if got := lib.EdgeLevel(s, coord.E); got != 0 {
		t.Errorf("rotated-away edge E: EdgeLevel = %d, want 0", got)
	}
}

func TestLegalStatesRespectsSlopeBound(t *testing.T) {
	lib := NewLibrary([]TileDef{slopeTile()}, 2) // levels 0,1 only; increment 1
	states := lib.LegalStates()
	for _, s := range states {
		if s.Level+lib.Types[s.Type].LevelIncrement > lib.LevelsCount-1 {
			t.Errorf("illegal state %+v exceeds level bound", s)
		}
	}
	// level 1 + increment 1 = 2 > LevelsCount-1(1), so only level 0 is legal.
	for _, s := range states {
		if s.Level != 0 {
			t.Errorf("expected only level 0 to be legal, got %+v", s)
		}
	}
}

func TestLegalStatesFlatTileAllowsEveryLevel(t *testing.T) {
	lib := NewLibrary([]TileDef{grassTile()}, 3)
	states := lib.LegalStates()
	seenLevels := map[int]bool{}
	for _, s := range states {
		seenLevels[s.Level] = true
	}
	for level := 0; level < 3; level++ {
		if !seenLevels[level] {
			t.Errorf("flat tile missing legal state at level %d", level)
		}
	}
}

func TestWeightOverride(t *testing.T) {
	lib := NewLibrary([]TileDef{grassTile()}, 1)
	if w := lib.Weight(0, nil); w != 300 {
		t.Errorf("default weight = %v, want 300", w)
	}
	if w := lib.Weight(0, map[string]float64{"grass": 5}); w != 5 {
		t.Errorf("overridden weight = %v, want 5", w)
	}
}

func TestLabelLevelAgnostic(t *testing.T) {
	if !Grass.LevelAgnostic() {
		t.Error("Grass should be level-agnostic")
	}
	if Road.LevelAgnostic() {
		t.Error("Road should not be level-agnostic")
	}
}

func TestParseLabel(t *testing.T) {
	l, ok := ParseLabel("ocean")
	if !ok || l != Ocean {
		t.Errorf("ParseLabel(ocean) = %v,%v want Ocean,true", l, ok)
	}
	if _, ok := ParseLabel("nope"); ok {
		t.Error("ParseLabel(nope) should fail")
	}
}

func TestLegalStatesDedupeSymmetricRotations(t *testing.T) {
	road := TileDef{
		Name:   "road_straight",
		Edges:  [coord.NumDirections]Label{Road, Grass, Grass, Road, Grass, Grass},
		Weight: 10,
	}
	lib := NewLibrary([]TileDef{grassTile(), slopeTile(), road}, 2)

	rotations := map[int]map[int]bool{}
	for _, s := range lib.LegalStates() {
		if rotations[s.Type] == nil {
			rotations[s.Type] = map[int]bool{}
		}
		rotations[s.Type][s.Rotation] = true
	}

	// fully symmetric: one rotation; slope (one high edge): all six;
	// straight road: three, the other three repeat the same edge ring.
	if got := len(rotations[0]); got != 1 {
		t.Errorf("symmetric grass kept %d rotations, want 1", got)
	}
	if got := len(rotations[1]); got != 6 {
		t.Errorf("slope kept %d rotations, want 6", got)
	}
	if got := len(rotations[2]); got != 3 {
		t.Errorf("straight road kept %d rotations, want 3", got)
	}
	if !rotations[0][0] {
		t.Error("dedup must keep the lowest rotation, not an arbitrary one")
	}
}

// TestRotationClosure checks the bookkeeping behind rotating a whole
// tile catalog: shifting every tile's edge ring (and high-edge set) by
// k while decreasing each state's rotation by k leaves every exposed
// edge — label and level — unchanged.
func TestRotationClosure(t *testing.T) {
	pond := TileDef{
		Name:   "pond",
		Edges:  [coord.NumDirections]Label{Grass, Ocean, Grass, Grass, Grass, Grass},
		Weight: 5,
	}
	defs := []TileDef{slopeTile(), pond}
	lib := NewLibrary(defs, 4)

	const k = 1
	shifted := make([]TileDef, len(defs))
	for i, def := range defs {
		def.Edges = RotateEdges(def.Edges, k)
		def.HighEdges = rotateHighEdges(def.HighEdges, k)
		shifted[i] = def
	}
	lib2 := NewLibrary(shifted, 4)

	for typeIdx := range defs {
		for rot := 0; rot < coord.NumDirections; rot++ {
			s := State{Type: typeIdx, Rotation: rot, Level: 1}
			s2 := State{Type: typeIdx, Rotation: (rot + coord.NumDirections - k) % coord.NumDirections, Level: 1}
			for d := coord.Direction(0); d < coord.NumDirections; d++ {
				if lib.EdgeLabel(s, d) != lib2.EdgeLabel(s2, d) {
					t.Errorf("type %d rot %d dir %s: label changed under catalog rotation", typeIdx, rot, d)
				}
				if lib.EdgeLevel(s, d) != lib2.EdgeLevel(s2, d) {
					t.Errorf("type %d rot %d dir %s: level changed under catalog rotation", typeIdx, rot, d)
				}
			}
		}
	}
}
