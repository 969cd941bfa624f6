// Copyright © 2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package coord

import "testing"

func TestRotateCubeSixStepsIsIdentity(t *testing.T) {
	c := Cube{Q: 3, R: -1, S: -2}
	if got := RotateCube(c, NumDirections); got != c {
		t.Errorf("rotating six times should be identity, got %+v", got)
	}
	if got := RotateCube(c, -NumDirections); got != c {
		t.Errorf("rotating -six times should be identity, got %+v", got)
	}
}

func TestRegionOffsetsOppositePairs(t *testing.T) {
	offs := RegionOffsets(8)
	pairs := map[Direction]Direction{NE: SW, E: W, SE: NW}
	for d, opp := range pairs {
		sum := offs[d].Add(offs[opp])
		if sum != (Cube{}) {
			t.Errorf("region offsets for %s/%s don't cancel: %+v + %+v = %+v", d, opp, offs[d], offs[opp], sum)
		}
	}
}

func TestRegionOffsetsHaveDiameterLength(t *testing.T) {
	const radius = 8
	offs := RegionOffsets(radius)
	want := 2*radius + 1
	for d, off := range offs {
		if !off.Valid() {
			t.Errorf("region offset %s is not a valid cube: %+v", Direction(d), off)
		}
		if off.Len() != want {
			t.Errorf("region offset %s has length %d, want %d", Direction(d), off.Len(), want)
		}
	}
}

func TestRegionCenterOriginIsWorldOrigin(t *testing.T) {
	if got := RegionCenter(0, 0, 8); got != (Cube{}) {
		t.Errorf("RegionCenter(0,0) = %+v, want origin", got)
	}
}

func TestRegionCenterDistinctForDistinctGrids(t *testing.T) {
	seen := map[Cube]struct{}{}
	for x := int32(-3); x <= 3; x++ {
		for z := int32(-3); z <= 3; z++ {
			c := RegionCenter(x, z, 8)
			if !c.Valid() {
				t.Fatalf("RegionCenter(%d,%d) = %+v invalid", x, z, c)
			}
			if _, ok := seen[c]; ok {
				t.Fatalf("RegionCenter(%d,%d) collides with a previous grid position at %+v", x, z, c)
			}
			seen[c] = struct{}{}
		}
	}
}

func TestRegionCenterNeighborMatchesOffset(t *testing.T) {
	const radius = 2
	offs := RegionOffsets(radius)
	origin := RegionCenter(0, 0, radius)
	// Moving one grid step east should land at origin + offs[E].
	east := RegionCenter(1, 0, radius)
	if got := origin.Add(offs[E]); got != east {
		t.Errorf("RegionCenter(1,0) = %+v, want origin+E offset %+v", east, got)
	}
}
