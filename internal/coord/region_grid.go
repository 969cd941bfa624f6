// Copyright © 2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package coord

// RotateCube rotates c by 60 degrees around the origin, `steps` times
// (negative steps rotate the other way). This is the same cyclic
// rotation the direction ring in cube.go is built from, exposed here so
// the region-grid lattice (region_grid.go) and the tile library's edge
// rotation can share one rotation primitive.
func RotateCube(c Cube, steps int) Cube {
	steps %= NumDirections
	if steps < 0 {
		steps += NumDirections
	}
	for i := 0; i < steps; i++ {
		c = Cube{Q: -c.R, R: -c.S, S: -c.Q}
	}
	return c
}

// regionBasis returns the cube offset of a one-step move, in direction d,
// through a grid-of-regions where each region is a hex disk of the given
// cell radius. Regions tile the plane edge to edge with no overlap: each
// of the six basis vectors has cube length 2*radius+1 (a region's
// diameter), and consecutive directions are 60-degree rotations of each
// other exactly like the per-cell direction ring in cube.go. The seed
// vector (2R+1, -R, -(R+1)) is the standard "hexagon of hexagons"
// super-lattice vector: a plain (2R+1) * unit-direction step would leave
// gaps between neighbouring region disks for R>0, this skewed vector is
// the one that tiles exactly.
func regionBasis(radius int, d Direction) Cube {
	r32 := int32(radius)
	seed := Cube{Q: 2*r32 + 1, R: -r32, S: -(r32 + 1)}
	return RotateCube(seed, int(d))
}

// RegionOffsets precomputes, for a given region cell radius, the cube
// displacement between the centers of two region-grid-adjacent regions
// in each of the six directions. Callers should compute this once (e.g.
// when the World Map is constructed) and reuse it, rather than
// recomputing per region.
func RegionOffsets(radius int) [NumDirections]Cube {
	var out [NumDirections]Cube
	for d := Direction(0); d < NumDirections; d++ {
		out[d] = regionBasis(radius, d)
	}
	return out
}

// RegionCenter converts a region's grid position (gridX, gridZ), given
// in odd-q flat-top offset coordinates, to its global cube-coordinate
// center. (gridX, gridZ) first becomes an axial coordinate using the
// standard odd-q offset formula, then the axial pair is combined through
// the E/SE region-lattice basis vectors (see regionBasis), the same pair
// a single cell's unit axial steps map to, so one grid step in direction
// d moves the center by RegionOffsets(radius)[d].
func RegionCenter(gridX, gridZ int32, radius int) Cube {
	axialQ := gridX
	axialR := gridZ - (gridX-(gridX&1))/2
	basisQ := regionBasis(radius, E)
	basisR := regionBasis(radius, SE)
	return basisQ.Mult(axialQ).Add(basisR.Mult(axialR))
}
