// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package worker

import (
	"context"
	"testing"
	"time"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/solver"
	"github.com/hexwfc/world/internal/tiles"
)

func isolatedCellLibrary() *rules.Index {
	grass := tiles.TileDef{
		Name:   "grass",
		Edges:  [coord.NumDirections]tiles.Label{tiles.Grass, tiles.Grass, tiles.Grass, tiles.Grass, tiles.Grass, tiles.Grass},
		Weight: 100,
	}
	lib := tiles.NewLibrary([]tiles.TileDef{grass}, 1)
	return rules.Build(lib)
}

func TestWorkerSolveSucceeds(t *testing.T) {
	w := New()
	defer w.Stop()

	idx := isolatedCellLibrary()
	x := coord.Cube{}
	in := solver.Input{SolveCells: []coord.Cube{x}, Options: solver.Options{Seed: 1}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result, err := w.Solve(ctx, idx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.States[x]; !ok {
		t.Fatal("result missing solved cell")
	}
}

func TestWorkerSolveRespectsCancellation(t *testing.T) {
	w := New()
	defer w.Stop()

	idx := isolatedCellLibrary()
	in := solver.Input{SolveCells: []coord.Cube{{}}, Options: solver.Options{Seed: 1}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already cancelled before the request is even submitted.

	if _, err := w.Solve(ctx, idx, in); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestWorkerHandlesMultipleSequentialSolves(t *testing.T) {
	w := New()
	defer w.Stop()

	idx := isolatedCellLibrary()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		in := solver.Input{SolveCells: []coord.Cube{{Q: int32(i), R: -int32(i), S: 0}}, Options: solver.Options{Seed: uint32(i)}}
		if _, err := w.Solve(ctx, idx, in); err != nil {
			t.Fatalf("solve %d failed: %v", i, err)
		}
	}
}
