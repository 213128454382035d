//go:build mage

// Package main contains Mage build targets for cabrillo-engine developer tooling.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	"logs",
	"output",
	"history",
	".station",
}

// Init creates the project directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "cabrillo-engine"
	cmdPkg  = "./cmd/cabrillo-engine"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests for every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Stats prints the QSO count and claimed score of every Cabrillo file in
// output/, then the Go line counts of the project.
func Stats() error {
	logs, err := filepath.Glob(filepath.Join("output", "*.log"))
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No Cabrillo files in output/.")
	}
	for _, path := range logs {
		qsos, claimed, err := cabrilloStats(path)
		if err != nil {
			return err
		}
		fmt.Printf("%-32s QSOs: %4d  CLAIMED-SCORE: %s\n", path, qsos, claimed)
	}

	prod, tests, err := goLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", tests)
	return nil
}

// cabrilloStats counts the QSO lines of a Cabrillo file and returns its
// CLAIMED-SCORE header value. A mismatch between the two is worth a look
// before submitting.
func cabrilloStats(path string) (int, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	qsos, claimed := 0, "?"
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "QSO:"):
			qsos++
		case strings.HasPrefix(line, "CLAIMED-SCORE:"):
			claimed = strings.TrimSpace(strings.TrimPrefix(line, "CLAIMED-SCORE:"))
		}
	}
	if err := sc.Err(); err != nil {
		return 0, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return qsos, claimed, nil
}

// goLines counts non-blank lines in production and _test.go files under
// root. Hidden directories, bin/ and _-prefixed directories are skipped.
func goLines(root string) (prod, tests int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "bin") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := nonBlankLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			tests += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, tests, err
}

func nonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
