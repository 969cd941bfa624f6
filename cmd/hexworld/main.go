// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command hexworld is a small demo CLI that seeds a world from a tile
// catalog, walks a region-expansion script, and prints the resulting
// global cell map. It exists purely to exercise the engine end to end;
// the engine itself is a library.
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	if err := cmdRoot.Execute(); err != nil {
		log.Printf("hexworld: %v\n", err)
		os.Exit(1)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
