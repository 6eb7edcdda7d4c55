//go:build ignore

// Write the markup-free copy of a gold corpus, keeping its subset layout.
// The output is what a system under test is run on.
// Usage: go run ./scripts/strip-corpus.go <gold-dir> <out-dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	nereval "github.com/jamesainslie/go-nereval"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: go run ./scripts/strip-corpus.go <gold-dir> <out-dir>")
		os.Exit(1)
	}
	inDir, outDir := os.Args[1], os.Args[2]

	subsets, err := os.ReadDir(inDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", inDir, err)
		os.Exit(1)
	}

	total := 0
	for _, subset := range subsets {
		if !subset.IsDir() {
			continue
		}

		fmt.Printf("Processing %s...\n", subset.Name())
		n, err := stripSubset(filepath.Join(inDir, subset.Name()), filepath.Join(outDir, subset.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", subset.Name(), err)
			os.Exit(1)
		}
		fmt.Printf("  Wrote %d files\n", n)
		total += n
	}

	fmt.Printf("Done: %d files\n", total)
}

func stripSubset(inDir, outDir string) (int, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	n := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(inDir, entry.Name()))
		if err != nil {
			return n, err
		}
		plain := nereval.Strip(string(data))
		if err := os.WriteFile(filepath.Join(outDir, entry.Name()), []byte(plain), 0o644); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
