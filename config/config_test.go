// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseValidCatalog(t *testing.T) {
	data := []byte(`
levels_count: 4
tiles:
  - name: grass
    edges: [grass, grass, grass, grass, grass, grass]
    weight: 300
  - name: slope
    edges: [grass, road, road, grass, grass, grass]
    high_edges: [NE, NW]
    level_increment: 1
    weight: 10
`)
	lib, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.LevelsCount != 4 {
		t.Errorf("LevelsCount = %d, want 4", lib.LevelsCount)
	}
	if len(lib.Types) != 2 {
		t.Fatalf("len(Types) = %d, want 2", len(lib.Types))
	}
	if !lib.Types[1].IsSlope() {
		t.Error("slope tile should report IsSlope true")
	}
	if lib.Types[0].Weight != 300 {
		t.Errorf("grass weight = %v, want 300", lib.Types[0].Weight)
	}
}

func TestParseDefaultsLevelIncrementAndWeight(t *testing.T) {
	data := []byte(`
tiles:
  - name: grass
    edges: [grass, grass, grass, grass, grass, grass]
`)
	lib, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.LevelsCount != DefaultLevelsCount {
		t.Errorf("LevelsCount = %d, want default %d", lib.LevelsCount, DefaultLevelsCount)
	}
	if lib.Types[0].Weight != 1 {
		t.Errorf("default weight = %v, want 1", lib.Types[0].Weight)
	}
	if lib.Types[0].LevelIncrement != 1 {
		t.Errorf("default level_increment = %v, want 1", lib.Types[0].LevelIncrement)
	}
}

func TestParseRejectsUnknownLabel(t *testing.T) {
	data := []byte(`
tiles:
  - name: bogus
    edges: [lava, grass, grass, grass, grass, grass]
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for unknown edge label")
	}
}

func TestParseRejectsWrongEdgeCount(t *testing.T) {
	data := []byte(`
tiles:
  - name: bogus
    edges: [grass, grass]
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for wrong edge count")
	}
}

func TestParseRejectsEmptyCatalog(t *testing.T) {
	if _, err := Parse([]byte(`tiles: []`)); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/catalog.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "catalog.yaml")
	content := `
levels_count: 2
tiles:
  - name: grass
    edges: [grass, grass, grass, grass, grass, grass]
    weight: 300
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lib.Types) != 1 {
		t.Fatalf("len(Types) = %d, want 1", len(lib.Types))
	}
}
