// Copyright © 2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package coord implements the cube-coordinate hex grid math shared by
// every other package: the six hex directions, cube<->offset conversion,
// and hex-disk enumeration for a region.
//
// HUGE thank you to one of the best educational websites anywhere
// and the authoritative site for hex grids:
//    http://www.redblobgames.com/grids/hexagons/
//    http://www.redblobgames.com/grids/hexagons/implementation.html
package coord

import "sort"

// Cube is a hex cell location addressed by an integer triple (Q, R, S)
// with the invariant Q + R + S == 0. The origin is the world center.
type Cube struct {
	Q, R, S int32
}

// Key returns a Cube usable as a deterministic, comparable map key.
// Cube is already comparable and zero-value safe, so Key is Cube itself;
// the named method exists so call sites read as intent rather than as an
// accidental map[Cube] lookup.
func (c Cube) Key() Cube { return c }

// Add returns the cube reached by moving from c by delta.
func (c Cube) Add(delta Cube) Cube {
	return Cube{Q: c.Q + delta.Q, R: c.R + delta.R, S: c.S + delta.S}
}

// Sub returns the cube difference c - a.
func (c Cube) Sub(a Cube) Cube {
	return Cube{Q: c.Q - a.Q, R: c.R - a.R, S: c.S - a.S}
}

// Mult returns c scaled by k.
func (c Cube) Mult(k int32) Cube {
	return Cube{Q: c.Q * k, R: c.R * k, S: c.S * k}
}

// Valid reports whether the cube coordinate identity Q+R+S=0 holds.
func (c Cube) Valid() bool { return c.Q+c.R+c.S == 0 }

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Len is the cube distance of c from the origin.
func (c Cube) Len() int {
	return int((abs32(c.Q) + abs32(c.R) + abs32(c.S)) / 2)
}

// Dist is the cube distance between c and a.
func (c Cube) Dist(a Cube) int {
	return c.Sub(a).Len()
}

// Direction is one of the six hex directions, in the fixed canonical
// order NE, E, SE, SW, W, NW used throughout the tile library and
// adjacency index for edge indexing.
type Direction int

const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

// NumDirections is the number of hex directions (always 6).
const NumDirections = 6

var directionNames = [NumDirections]string{"NE", "E", "SE", "SW", "W", "NW"}

// String implements fmt.Stringer for log output.
func (d Direction) String() string {
	if d >= 0 && int(d) < NumDirections {
		return directionNames[d]
	}
	return "invalid"
}

// ParseDirection looks up a Direction by its canonical name (NE, E, SE,
// SW, W, NW), as read from a config file or CLI flag. The second return
// is false for an unrecognized name.
func ParseDirection(name string) (Direction, bool) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return 0, false
}

// opposite pairs: NE<->SW, E<->W, SE<->NW.
var oppositeOf = [NumDirections]Direction{SW, W, NW, NE, E, SE}

// Opposite returns the direction facing the other way from d.
func Opposite(d Direction) Direction { return oppositeOf[d] }

// offsets to move from a hex to one of its six neighbours, indexed by
// Direction. Each consecutive pair is a 60 degree cube rotation of the
// previous, so rotating a tile's edge labels by k slots (edges[i] into
// slot (i+k) mod 6) corresponds exactly to walking k steps around this
// table.
var offsets = [NumDirections]Cube{
	NE: {Q: 1, R: -1, S: 0},
	E:  {Q: 1, R: 0, S: -1},
	SE: {Q: 0, R: 1, S: -1},
	SW: {Q: -1, R: 1, S: 0},
	W:  {Q: -1, R: 0, S: 1},
	NW: {Q: 0, R: -1, S: 1},
}

// Offset returns the cube delta for moving one step in direction d.
func Offset(d Direction) Cube { return offsets[d] }

// Neighbor returns the cube reached by moving from c one step in
// direction d.
func (c Cube) Neighbor(d Direction) Cube { return c.Add(offsets[d]) }

// Neighbors returns all six cube neighbours of c, indexed by Direction.
func (c Cube) Neighbors() [NumDirections]Cube {
	var out [NumDirections]Cube
	for d := Direction(0); d < NumDirections; d++ {
		out[d] = c.Neighbor(d)
	}
	return out
}

// OffsetToCube converts odd-r pointy-top offset coordinates (col, row)
// to cube coordinates.
func OffsetToCube(col, row int32) Cube {
	q := col - (row-(row&1))/2
	r := row
	return Cube{Q: q, R: r, S: -q - r}
}

// CubeToOffset converts cube coordinates to odd-r pointy-top offset
// coordinates (col, row).
func CubeToOffset(c Cube) (col, row int32) {
	col = c.Q + (c.R-(c.R&1))/2
	row = c.R
	return col, row
}

// Disk returns every cube coordinate within hex radius r of center,
// sorted for deterministic iteration (by Q then R). A full disk of
// radius r holds 3r^2 + 3r + 1 cells.
func Disk(center Cube, radius int) []Cube {
	if radius < 0 {
		return nil
	}
	out := make([]Cube, 0, 3*radius*radius+3*radius+1)
	for dq := int32(-radius); dq <= int32(radius); dq++ {
		rMin := int32(-radius)
		if -dq-int32(radius) > rMin {
			rMin = -dq - int32(radius)
		}
		rMax := int32(radius)
		if -dq+int32(radius) < rMax {
			rMax = -dq + int32(radius)
		}
		for dr := rMin; dr <= rMax; dr++ {
			ds := -dq - dr
			out = append(out, center.Add(Cube{Q: dq, R: dr, S: ds}))
		}
	}
	SortCubes(out)
	return out
}

// Sector classifies to relative to from into the hex direction whose
// offset vector it most closely aligns with (largest dot product),
// breaking ties toward the lower Direction value. Used to carve a
// region disk into six angular wedges.
func Sector(from, to Cube) Direction {
	delta := to.Sub(from)
	best := Direction(0)
	bestDot := int64(-1) << 62
	for d := Direction(0); d < NumDirections; d++ {
		off := offsets[d]
		dot := int64(delta.Q)*int64(off.Q) + int64(delta.R)*int64(off.R) + int64(delta.S)*int64(off.S)
		if dot > bestDot {
			bestDot = dot
			best = d
		}
	}
	return best
}

// SortCubes orders cubes deterministically by (Q, R); S is implied.
// Used whenever a set of cube keys must be iterated in a fixed order so
// that generation stays reproducible under a seed.
func SortCubes(cubes []Cube) {
	sort.Slice(cubes, func(i, j int) bool {
		if cubes[i].Q != cubes[j].Q {
			return cubes[i].Q < cubes[j].Q
		}
		return cubes[i].R < cubes[j].R
	})
}
