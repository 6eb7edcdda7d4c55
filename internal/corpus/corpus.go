// Package corpus pairs gold and predicted documents on disk.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Layout describes where a predicted document lives relative to its gold twin.
type Layout int

const (
	// LayoutMirrored expects pred/<subset>/<file> for gold/<subset>/<file>.
	LayoutMirrored Layout = iota
	// LayoutFlat expects pred/<file> for gold/<subset>/<file>.
	LayoutFlat
)

func (l Layout) String() string {
	switch l {
	case LayoutMirrored:
		return "mirrored"
	case LayoutFlat:
		return "flat"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout converts a layout name to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "mirrored":
		return LayoutMirrored, nil
	case "flat":
		return LayoutFlat, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", s)
	}
}

// Document is one gold file with its predicted counterpart.
type Document struct {
	Name     string
	GoldPath string
	PredPath string
}

// Subset is one immediate subdirectory of the gold root.
type Subset struct {
	Name      string
	Documents []Document
	Missing   []string // predicted paths that do not exist
}

// Options controls Walk.
type Options struct {
	Layout  Layout
	Pattern string // filepath.Match pattern applied to file names; empty matches all
}

// Walk lists every subset of goldRoot and pairs its files with files under
// predRoot. Entries directly under goldRoot that are not directories are
// ignored, as are directories inside a subset. Subsets and documents are
// returned in lexical order.
func Walk(goldRoot, predRoot string, opts Options) ([]Subset, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*"
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("file pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(goldRoot)
	if err != nil {
		return nil, fmt.Errorf("read gold dir: %w", err)
	}

	var subsets []Subset
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		subset, err := walkSubset(goldRoot, predRoot, entry.Name(), pattern, opts.Layout)
		if err != nil {
			return nil, err
		}
		subsets = append(subsets, subset)
	}

	return subsets, nil
}

func walkSubset(goldRoot, predRoot, name, pattern string, layout Layout) (Subset, error) {
	subset := Subset{Name: name}

	dir := filepath.Join(goldRoot, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Subset{}, fmt.Errorf("read subset %s: %w", name, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Pattern was validated by Walk.
		if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
			continue
		}

		predPath := filepath.Join(predRoot, name, entry.Name())
		if layout == LayoutFlat {
			predPath = filepath.Join(predRoot, entry.Name())
		}

		exists, err := isFile(predPath)
		if err != nil {
			return Subset{}, err
		}
		if !exists {
			subset.Missing = append(subset.Missing, predPath)
			continue
		}

		subset.Documents = append(subset.Documents, Document{
			Name:     entry.Name(),
			GoldPath: filepath.Join(dir, entry.Name()),
			PredPath: predPath,
		})
	}

	return subset, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}
