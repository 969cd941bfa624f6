// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hexwfc/world/config"
	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/region"
	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/tiles"
	"github.com/hexwfc/world/internal/worker"
	"github.com/hexwfc/world/internal/worldmap"
)

var argsRoot = struct {
	catalog     string
	seed        int64
	radius      int
	bound       int
	maxRestarts int
	timeout     time.Duration
	expand      string
}{
	catalog:     "",
	seed:        1,
	radius:      8,
	bound:       2,
	maxRestarts: 10,
	timeout:     10 * time.Second,
	expand:      "",
}

var cmdRoot = &cobra.Command{
	Use:   "hexworld",
	Short: "Generate a hex-tile world with the Wave Function Collapse engine",
	Long:  `hexworld seeds a world from a tile catalog and walks a region-expansion script, printing the resulting cell map.`,
}

var cmdGenerate = &cobra.Command{
	Use:   "generate",
	Short: "populate the origin region and an optional expansion script",
	Long: `Populate the origin region, then walk --expand (a comma-separated list
of hex directions — NE,E,SE,SW,W,NW — each one step from the previously
populated region) populating one region per step, and print every
committed cell in the final world.`,
	RunE: runGenerate,
}

func init() {
	cmdRoot.AddCommand(cmdGenerate)

	cmdGenerate.Flags().StringVar(&argsRoot.catalog, "catalog", "", "path to a tile catalog YAML file (required)")
	cmdGenerate.Flags().Int64Var(&argsRoot.seed, "seed", argsRoot.seed, "world PRNG seed")
	cmdGenerate.Flags().IntVar(&argsRoot.radius, "radius", argsRoot.radius, "region cell radius R")
	cmdGenerate.Flags().IntVar(&argsRoot.bound, "bound", argsRoot.bound, "inclusive region-grid distance from the origin regions may be created within")
	cmdGenerate.Flags().IntVar(&argsRoot.maxRestarts, "max-restarts", argsRoot.maxRestarts, "solver restart budget per solve attempt")
	cmdGenerate.Flags().DurationVar(&argsRoot.timeout, "timeout", argsRoot.timeout, "wall-clock timeout per region solve")
	cmdGenerate.Flags().StringVar(&argsRoot.expand, "expand", "", "comma-separated expansion script, e.g. \"E,E,NE\"")
	_ = cmdGenerate.MarkFlagRequired("catalog")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	lib, err := config.Load(argsRoot.catalog)
	if err != nil {
		return err
	}

	catalog, err := resolveCatalog(lib)
	if err != nil {
		return err
	}

	idx := rules.Build(lib)
	w := worker.New()
	defer w.Stop()

	wm := worldmap.New(idx, argsRoot.radius, int32(argsRoot.bound), catalog, argsRoot.maxRestarts, uint32(argsRoot.seed), w)

	origin, err := wm.CreateRegion(0, 0)
	if err != nil {
		return err
	}
	if err := populate(wm, origin.ID); err != nil {
		return fmt.Errorf("populate origin: %w", err)
	}
	log.Printf("populated origin region %s (%d cells)", origin.ID, len(wm.Snapshot()))

	gridX, gridZ := origin.GridX, origin.GridZ
	for _, step := range parseExpand(argsRoot.expand) {
		gridX, gridZ = wm.GridNeighbor(gridX, gridZ, step)
		r, err := wm.CreateRegion(gridX, gridZ)
		if err != nil {
			return fmt.Errorf("expand %v: %w", step, err)
		}
		if err := populate(wm, r.ID); err != nil {
			return fmt.Errorf("expand %v: %w", step, err)
		}
		log.Printf("populated region %s at (%d,%d) via %v", r.ID, gridX, gridZ, step)
	}

	printSnapshot(lib, wm.Snapshot())
	return nil
}

func populate(wm *worldmap.WorldMap, regionID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), argsRoot.timeout)
	defer cancel()
	_, err := wm.PopulateRegion(ctx, regionID)
	return err
}

func resolveCatalog(lib *tiles.Library) (region.Catalog, error) {
	var cat region.Catalog
	grassFound, waterFound := false, false
	for i, def := range lib.Types {
		switch strings.ToLower(def.Name) {
		case "grass":
			cat.GrassType = i
			grassFound = true
		case "water":
			cat.WaterType = i
			waterFound = true
		}
	}
	if !grassFound {
		return cat, fmt.Errorf("catalog must contain a tile named %q for default region seeding", "grass")
	}
	if !waterFound {
		// Water-sector seeding is optional: a catalog without a water
		// tile simply seeds its sector with grass.
		cat.WaterType = cat.GrassType
	}
	return cat, nil
}

// parseExpand splits a "E,E,NE" expansion script into coord.Direction
// steps, skipping blank entries so a trailing comma or empty flag value
// is harmless.
func parseExpand(script string) []coord.Direction {
	var out []coord.Direction
	for _, name := range strings.Split(script, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		d, ok := coord.ParseDirection(strings.ToUpper(name))
		if !ok {
			die("unknown expansion direction %q", name)
		}
		out = append(out, d)
	}
	return out
}

func printSnapshot(lib *tiles.Library, cells []worldmap.CommittedCell) {
	fmt.Printf("%d cells committed\n", len(cells))
	for _, c := range cells {
		name := "?"
		if c.Type >= 0 && c.Type < len(lib.Types) {
			name = lib.Types[c.Type].Name
		}
		fmt.Printf("(%d,%d,%d) %s rot=%d level=%d region=%s\n",
			c.Cube.Q, c.Cube.R, c.Cube.S, name, c.Rotation, c.Level, c.RegionID)
	}
}
