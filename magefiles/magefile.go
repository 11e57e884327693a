//go:build mage

// Package main contains Mage build targets for dblp-bibtex developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "dblp-bibtex"
	cmdPkg  = "./cmd/dblp-bibtex"
)

// Default target when mage runs without arguments.
var Default = Build

func binPath() string { return filepath.Join(binDir, binName) }

// version returns the VERSION env var, or the short git revision, or "dev".
func version() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	if rev, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && rev != "" {
		return strings.TrimSpace(rev)
	}
	return "dev"
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	ldflags := "-X main.version=" + version()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath(), cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath())
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Serve builds the binary and starts the web server on the configured address.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "serve")
}

// Check builds the binary and probes DBLP reachability.
func Check() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "check")
}

// Search builds the binary and prints BibTeX for one query.
func Search(query string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "search", query)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
