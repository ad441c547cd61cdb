//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Ingest imports a CSV, JSON, or YAML file into the local catalog.
func Ingest(file string) error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath, "ingest", file)
}

// Check tests connectivity to the configured source.
func Check() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "check")
}
