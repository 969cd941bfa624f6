// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package config loads a tile catalog from a YAML document into a
// tiles.Library: a plain struct decoded with gopkg.in/yaml.v3, a load
// function that applies defaults, and hand-written validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hexwfc/world/internal/coord"
	"github.com/hexwfc/world/internal/tiles"
)

// TileEntry is one catalog entry as authored in YAML.
type TileEntry struct {
	Name           string   `yaml:"name"`
	Edges          []string `yaml:"edges"`           // six labels, NE-first canonical order.
	HighEdges      []string `yaml:"high_edges"`      // subset of direction names: NE,E,SE,SW,W,NW.
	LevelIncrement int      `yaml:"level_increment"` // default 1 if zero.
	Weight         float64  `yaml:"weight"`           // default 1 if zero.
}

// Catalog is the top-level tile catalog document.
type Catalog struct {
	LevelsCount int         `yaml:"levels_count"`
	Tiles       []TileEntry `yaml:"tiles"`
}

// DefaultLevelsCount is used when a catalog document omits levels_count.
const DefaultLevelsCount = 4

// Load reads and decodes a tile catalog YAML file at path into a
// tiles.Library. A missing or malformed catalog is an error rather
// than a fallback to defaults — there is no sensible default tile
// catalog to generate a world from.
func Load(path string) (*tiles.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a tile catalog YAML document into a tiles.Library.
func Parse(data []byte) (*tiles.Library, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("config: parse catalog: %w", err)
	}
	return Build(cat)
}

// Build validates a decoded Catalog and compiles it into a
// tiles.Library, defaulting level_increment and weight to 1 where a
// tile entry omits them.
func Build(cat Catalog) (*tiles.Library, error) {
	if len(cat.Tiles) == 0 {
		return nil, fmt.Errorf("config: catalog has no tiles")
	}
	levels := cat.LevelsCount
	if levels == 0 {
		levels = DefaultLevelsCount
	}

	defs := make([]tiles.TileDef, 0, len(cat.Tiles))
	for _, entry := range cat.Tiles {
		def, err := buildTileDef(entry)
		if err != nil {
			return nil, fmt.Errorf("config: tile %q: %w", entry.Name, err)
		}
		defs = append(defs, def)
	}
	return tiles.NewLibrary(defs, levels), nil
}

func buildTileDef(entry TileEntry) (tiles.TileDef, error) {
	if entry.Name == "" {
		return tiles.TileDef{}, fmt.Errorf("missing name")
	}
	if len(entry.Edges) != coord.NumDirections {
		return tiles.TileDef{}, fmt.Errorf("edges must list exactly %d labels, got %d", coord.NumDirections, len(entry.Edges))
	}

	var edges [coord.NumDirections]tiles.Label
	for i, name := range entry.Edges {
		label, ok := tiles.ParseLabel(name)
		if !ok {
			return tiles.TileDef{}, fmt.Errorf("unknown edge label %q", name)
		}
		edges[i] = label
	}

	var high [coord.NumDirections]bool
	for _, name := range entry.HighEdges {
		dir, ok := coord.ParseDirection(name)
		if !ok {
			return tiles.TileDef{}, fmt.Errorf("unknown direction %q in high_edges", name)
		}
		high[dir] = true
	}

	increment := entry.LevelIncrement
	if increment == 0 {
		increment = 1
	}
	weight := entry.Weight
	if weight == 0 {
		weight = 1
	}
	if weight < 0 {
		return tiles.TileDef{}, fmt.Errorf("weight must be positive, got %v", weight)
	}

	return tiles.TileDef{
		Name:           entry.Name,
		Edges:          edges,
		HighEdges:      high,
		LevelIncrement: increment,
		Weight:         weight,
	}, nil
}
