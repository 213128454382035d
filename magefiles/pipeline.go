//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// logInput returns the log document named by LOG, or the first PDF in logs/.
func logInput() (string, error) {
	if in := os.Getenv("LOG"); in != "" {
		return in, nil
	}
	matches, err := filepath.Glob(filepath.Join("logs", "*.pdf"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no log found: set LOG or place a PDF in logs/")
	}
	return matches[0], nil
}

// Generate builds the CLI and writes output/cabrillo.log from the contest log.
func Generate() error {
	mg.Deps(Build)
	in, err := logInput()
	if err != nil {
		return err
	}
	return sh.RunV(filepath.Join(binDir, binName), "generate", in,
		"--output", filepath.Join("output", "cabrillo.log"), "--history")
}

// Summary builds the CLI and prints per-band totals for the contest log.
func Summary() error {
	mg.Deps(Build)
	in, err := logInput()
	if err != nil {
		return err
	}
	return sh.RunV(filepath.Join(binDir, binName), "summary", in)
}
