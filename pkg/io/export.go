// Package io provides file import/export for plan documents. The "-"
// path convention maps to stdout/stdin so commands compose in
// pipelines.
package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/facade/pkg/plan"
)

// WriteJSON encodes a plan as JSON and writes it to w.
func WriteJSON(p *plan.Plan, w io.Writer) error {
	data, err := plan.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// ExportJSON writes a plan to a JSON file at path, or stdout when
// path is "-".
func ExportJSON(p *plan.Plan, path string) error {
	if path == "-" {
		return WriteJSON(p, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

// WriteArtifact stores rendered bytes at path, or stdout when path
// is "-".
func WriteArtifact(data []byte, path string) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
