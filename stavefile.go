//go:build stave

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// All lints, tests and builds.
func All() error {
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Build compiles ner-cli and ner-eval into bin/.
func Build() error {
	st.Deps(Build_CLI, Build_Eval)
	return nil
}

// Build_CLI compiles bin/ner-cli.
func Build_CLI() error {
	return buildBinary("ner-cli")
}

// Build_Eval compiles bin/ner-eval.
func Build_Eval() error {
	return buildBinary("ner-eval")
}

func buildBinary(name string) error {
	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}

	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	ldflags := fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version), strings.TrimSpace(commit), time.Now().Format(time.RFC3339))

	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, "./cmd/"+name)
}

// Test runs all tests with the race detector and writes coverage.out.
func Test() error {
	return sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./...")
}

// Lint runs go vet and golangci-lint.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes bin/ and coverage output.
func Clean() error {
	for _, a := range []string{"bin/", "coverage.out"} {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Eval namespace for corpus evaluation targets.
type Eval st.Namespace

// Run scores $NEREVAL_PRED against $NEREVAL_GOLD (defaults: testdata/gold, testdata/pred).
func (Eval) Run() error {
	st.Deps(Build_Eval)

	gold, pred := corpusDirs()
	return sh.RunV("./bin/ner-eval", "--levels", gold, pred)
}

// Table scores the corpus and prints the aligned table report.
func (Eval) Table() error {
	st.Deps(Build_Eval)

	gold, pred := corpusDirs()
	return sh.RunV("./bin/ner-eval", "--format", "table", "--levels", gold, pred)
}

// Strip writes the tag-free copy of the gold corpus to testdata/plain.
func (Eval) Strip() error {
	gold, _ := corpusDirs()
	return sh.RunV("go", "run", "./scripts/strip-corpus.go", gold, "testdata/plain")
}

func corpusDirs() (gold, pred string) {
	gold = os.Getenv("NEREVAL_GOLD")
	if gold == "" {
		gold = "testdata/gold"
	}
	pred = os.Getenv("NEREVAL_PRED")
	if pred == "" {
		pred = "testdata/pred"
	}
	return gold, pred
}
