package io

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/matzehuels/facade/pkg/core/building"
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/plan"
)

func testPlan(t *testing.T) *plan.Plan {
	t.Helper()
	fp, err := footprint.New([]footprint.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	if err != nil {
		t.Fatalf("footprint.New: %v", err)
	}
	b, err := building.NewUniform(fp, 1, 3.0, 7, building.DefaultConfig())
	if err != nil {
		t.Fatalf("NewUniform: %v", err)
	}
	p, err := plan.FromBuilding(b, "io-test")
	if err != nil {
		t.Fatalf("FromBuilding: %v", err)
	}
	return p
}

func TestWriteJSONRoundTrip(t *testing.T) {
	p := testPlan(t)
	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := plan.Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.Hash() != p.Hash() {
		t.Error("round trip changed content hash")
	}
}

func TestExportImportFile(t *testing.T) {
	p := testPlan(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := ExportJSON(p, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if back.Name != "io-test" {
		t.Errorf("name = %q", back.Name)
	}
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := WriteArtifact([]byte("<svg/>"), path); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}
	back, err := ImportJSON(path)
	if err == nil {
		t.Errorf("importing an SVG as a plan succeeded: %+v", back)
	}
}
