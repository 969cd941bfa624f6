// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package worldmap owns the global cell store and the set of regions:
// it creates Placeholder regions on demand, drives the
// region.Coordinator to populate them, commits successful solves into
// the global cell store, and advertises new expansion points once a
// region is Populated.
package worldmap

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/region"
	"github.com/hexwfc/world/internal/rng"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/tiles"
)

// State is a region's lifecycle stage. A region starts as a
// Placeholder advertising an expansion point and becomes Populated
// exactly once, when its cells are committed.
type State int

const (
	Placeholder State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "placeholder"
}

// Region is one hex-shaped generation unit: a grid position in the
// region lattice, its global cube-coordinate center, and a lifecycle
// state.
type Region struct {
	ID     uuid.UUID
	GridX  int32
	GridZ  int32
	Center coord.Cube
	State  State
}

// cellRecord is one committed global cell.
type cellRecord struct {
	state    tiles.State
	regionID uuid.UUID
}

type gridKey struct{ X, Z int32 }

// regionNamespace is the fixed UUID namespace region ids are minted
// under. Region ids are name-based (SHA-1 of the grid position) rather
// than random: everything downstream of a region id — its derived
// solver seed above all — must be identical across two runs with the
// same world seed, or generation would not replay.
var regionNamespace = uuid.MustParse("8a6e1f74-52cd-4f10-9f1b-1d3a9c4e7b20")

// regionID mints the deterministic id for the region at (gridX, gridZ).
func regionID(gridX, gridZ int32) uuid.UUID {
	return uuid.NewSHA1(regionNamespace, []byte(fmt.Sprintf("region/%d/%d", gridX, gridZ)))
}

// WorldMap is the global cell store plus region bookkeeping. It
// implements region.MapView so a region.Coordinator can drive it
// without an import cycle.
type WorldMap struct {
	idx         *rules.Index
	radius      int
	bound       int32
	catalog     region.Catalog
	maxRestarts int
	parentSeed  uint32
	coordinator *region.Coordinator

	cells        map[coord.Cube]cellRecord
	regions      map[uuid.UUID]*Region
	regionByGrid map[gridKey]*Region
}

// New builds an empty WorldMap. radius is every region's cell radius,
// bound is the inclusive region-grid distance from the origin regions
// may be created within, and solver is whatever runs the actual WFC
// solve — normally an *internal/worker.Worker so solves happen off the
// region coordinator's own call stack.
func New(idx *rules.Index, radius int, bound int32, catalog region.Catalog, maxRestarts int, parentSeed uint32, solver region.Solver) *WorldMap {
	wm := &WorldMap{
		idx:          idx,
		radius:       radius,
		bound:        bound,
		catalog:      catalog,
		maxRestarts:  maxRestarts,
		parentSeed:   parentSeed,
		cells:        make(map[coord.Cube]cellRecord),
		regions:      make(map[uuid.UUID]*Region),
		regionByGrid: make(map[gridKey]*Region),
	}
	wm.coordinator = &region.Coordinator{Idx: idx, View: wm, Solver: solver}
	return wm
}

// regionAxial converts a region's odd-q flat-top grid position to the
// axial coordinate the region lattice actually is: RegionCenter scales
// this very (q, r) pair by the radius-dependent basis vectors, so one
// step of axialQ/axialR here is exactly one region over, same as a
// single cube-coordinate cell's axial system one level up.
func regionAxial(gridX, gridZ int32) (axialQ, axialR int32) {
	axialQ = gridX
	axialR = gridZ - (gridX-(gridX&1))/2
	return axialQ, axialR
}

// regionGrid is regionAxial's inverse.
func regionGrid(axialQ, axialR int32) (gridX, gridZ int32) {
	gridX = axialQ
	gridZ = axialR + (axialQ-(axialQ&1))/2
	return gridX, gridZ
}

// regionGridNeighbor returns the grid position one region-step away
// from (gridX, gridZ) in direction d, via the shared unit hex offsets
// every per-cell axial system uses. The column-parity-dependent
// (dx, dz) offset pairs of odd-q grids fall out of this conversion
// automatically — the offsets are only constant in axial space.
func regionGridNeighbor(gridX, gridZ int32, d coord.Direction) (int32, int32) {
	axialQ, axialR := regionAxial(gridX, gridZ)
	off := coord.Offset(d)
	return regionGrid(axialQ+off.Q, axialR+off.R)
}

// withinBounds reports whether (gridX, gridZ)'s region-lattice
// distance from the origin region is within w.bound.
func (w *WorldMap) withinBounds(gridX, gridZ int32) bool {
	axialQ, axialR := regionAxial(gridX, gridZ)
	c := coord.Cube{Q: axialQ, R: axialR, S: -axialQ - axialR}
	return c.Len() <= int(w.bound)
}

// CreateRegion creates a Placeholder region at (gridX, gridZ), or
// returns the existing region if the position is already occupied.
func (w *WorldMap) CreateRegion(gridX, gridZ int32) (*Region, error) {
	key := gridKey{gridX, gridZ}
	if existing, ok := w.regionByGrid[key]; ok {
		return existing, nil
	}
	if !w.withinBounds(gridX, gridZ) {
		return nil, fmt.Errorf("worldmap: grid position (%d,%d) is outside the world bound", gridX, gridZ)
	}
	r := &Region{
		ID:     regionID(gridX, gridZ),
		GridX:  gridX,
		GridZ:  gridZ,
		Center: coord.RegionCenter(gridX, gridZ, w.radius),
		State:  Placeholder,
	}
	w.regions[r.ID] = r
	w.regionByGrid[key] = r
	return r, nil
}

// Region looks up a region by id.
func (w *WorldMap) Region(id uuid.UUID) (*Region, bool) {
	r, ok := w.regions[id]
	return r, ok
}

// GridNeighbor returns the grid position one region-step away from
// (gridX, gridZ) in direction d. Exposed so a caller driving an
// expansion script can walk the region lattice without reimplementing
// its odd-q offset conversion.
func (w *WorldMap) GridNeighbor(gridX, gridZ int32, d coord.Direction) (int32, int32) {
	return regionGridNeighbor(gridX, gridZ, d)
}

// regionSeed derives this region's own solver-PRNG seed from the
// world's parent seed and the region id, so concurrent solves across
// regions each get an independent but reproducible seed.
func regionSeed(parentSeed uint32, regionID uuid.UUID) uint32 {
	discriminator := binary.BigEndian.Uint64(regionID[8:16])
	return rng.Derive(parentSeed, discriminator)
}

// PopulateRegion computes the region's solve cells and fixed-neighbor
// constraints and invokes the region coordinator. On success the
// region transitions to Populated and new Placeholder neighbors are
// advertised.
func (w *WorldMap) PopulateRegion(ctx context.Context, regionID uuid.UUID) (*region.Outcome, error) {
	r, ok := w.regions[regionID]
	if !ok {
		return nil, fmt.Errorf("worldmap: unknown region %s", regionID)
	}
	if r.State != Placeholder {
		return nil, fmt.Errorf("worldmap: region %s is not a placeholder", regionID)
	}

	solveCells := coord.Disk(r.Center, w.radius)
	req := region.Request{
		RegionID:    regionID,
		Center:      r.Center,
		SolveCells:  solveCells,
		FixedCells:  w.FixedNeighborsOf(solveCells),
		Seed:        regionSeed(w.parentSeed, regionID),
		Catalog:     w.catalog,
		MaxRestarts: w.maxRestarts,
	}

	outcome, err := w.coordinator.Populate(ctx, req)
	if err != nil {
		return nil, err
	}
	w.onRegionPopulated(r)
	return outcome, nil
}

// FixedNeighborsOf returns every committed cell that is a
// cube-neighbor of a solve cell but not itself a solve cell.
func (w *WorldMap) FixedNeighborsOf(solveCells []coord.Cube) map[coord.Cube]tiles.State {
	solveSet := make(map[coord.Cube]bool, len(solveCells))
	for _, c := range solveCells {
		solveSet[c] = true
	}
	out := make(map[coord.Cube]tiles.State)
	for _, c := range solveCells {
		for d := coord.Direction(0); d < coord.NumDirections; d++ {
			nb := c.Neighbor(d)
			if solveSet[nb] {
				continue
			}
			if rec, ok := w.cells[nb]; ok {
				out[nb] = rec.state
			}
		}
	}
	return out
}

// CommittedNeighbors implements region.MapView for fixed-cell
// replacement's locked-edge lookup.
func (w *WorldMap) CommittedNeighbors(c coord.Cube) map[coord.Direction]tiles.State {
	out := make(map[coord.Direction]tiles.State)
	for d := coord.Direction(0); d < coord.NumDirections; d++ {
		if rec, ok := w.cells[c.Neighbor(d)]; ok {
			out[d] = rec.state
		}
	}
	return out
}

// CommitRegion implements region.MapView: writes every solved cell
// into the global store and transitions the region to Populated.
func (w *WorldMap) CommitRegion(regionID uuid.UUID, states map[coord.Cube]tiles.State) error {
	r, ok := w.regions[regionID]
	if !ok {
		return fmt.Errorf("worldmap: commit to unknown region %s", regionID)
	}
	for c, s := range states {
		w.cells[c] = cellRecord{state: s, regionID: regionID}
	}
	r.State = Populated
	return nil
}

// ReplaceCell implements region.MapView: overwrites one
// already-committed cell in place.
func (w *WorldMap) ReplaceCell(c coord.Cube, newState tiles.State) error {
	rec, ok := w.cells[c]
	if !ok {
		return fmt.Errorf("worldmap: cannot replace uncommitted cell %+v", c)
	}
	rec.state = newState
	w.cells[c] = rec
	return nil
}

// CellAt returns the committed state at c, if any.
func (w *WorldMap) CellAt(c coord.Cube) (tiles.State, bool) {
	rec, ok := w.cells[c]
	return rec.state, ok
}

// CommittedCell is one committed cell's renderer-facing shape: cube
// coordinate, tile type, rotation, and level. The renderer is
// responsible for converting this into world-space position and
// geometry.
type CommittedCell struct {
	Cube     coord.Cube
	Type     int
	Rotation int
	Level    int
	RegionID uuid.UUID
}

// Snapshot returns every committed cell in the global map, sorted by
// cube coordinate for deterministic iteration. A renderer or
// decoration placer consumes this without holding a lock across calls;
// WorldMap itself is only ever mutated on the main control flow.
func (w *WorldMap) Snapshot() []CommittedCell {
	out := make([]CommittedCell, 0, len(w.cells))
	for c, rec := range w.cells {
		out = append(out, CommittedCell{
			Cube:     c,
			Type:     rec.state.Type,
			Rotation: rec.state.Rotation,
			Level:    rec.state.Level,
			RegionID: rec.regionID,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cube.Q != out[j].Cube.Q {
			return out[i].Cube.Q < out[j].Cube.Q
		}
		return out[i].Cube.R < out[j].Cube.R
	})
	return out
}

func (w *WorldMap) populatedCount() int {
	n := 0
	for _, r := range w.regions {
		if r.State == Populated {
			n++
		}
	}
	return n
}

func (w *WorldMap) populatedNeighborCount(gridX, gridZ int32) int {
	n := 0
	for d := coord.Direction(0); d < coord.NumDirections; d++ {
		gx, gz := regionGridNeighbor(gridX, gridZ, d)
		if r, ok := w.regionByGrid[gridKey{gx, gz}]; ok && r.State == Populated {
			n++
		}
	}
	return n
}

// eligible reports whether a grid position is allowed to hold a
// Placeholder region right now: within world bounds, and — once the
// world has more than one populated region — adjacent to at least two
// populated regions. Also used to prune stale placeholders.
func (w *WorldMap) eligible(gridX, gridZ int32) bool {
	if !w.withinBounds(gridX, gridZ) {
		return false
	}
	if w.populatedCount() > 1 && w.populatedNeighborCount(gridX, gridZ) < 2 {
		return false
	}
	return true
}

// onRegionPopulated advertises a Placeholder region in each of the six
// directions around a newly Populated region, subject to world bounds
// and the populated-neighbor-count rule, then prunes any existing
// Placeholder that no longer qualifies.
func (w *WorldMap) onRegionPopulated(r *Region) {
	for d := coord.Direction(0); d < coord.NumDirections; d++ {
		gx, gz := regionGridNeighbor(r.GridX, r.GridZ, d)
		if _, exists := w.regionByGrid[gridKey{gx, gz}]; exists {
			continue
		}
		if !w.eligible(gx, gz) {
			continue
		}
		w.CreateRegion(gx, gz)
	}
	w.pruneStalePlaceholders()
}

func (w *WorldMap) pruneStalePlaceholders() {
	for id, r := range w.regions {
		if r.State != Placeholder {
			continue
		}
		if w.eligible(r.GridX, r.GridZ) {
			continue
		}
		delete(w.regions, id)
		delete(w.regionByGrid, gridKey{r.GridX, r.GridZ})
	}
}
