package structure

import (
	"strings"
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
	b, err := building.NewUniform(fp, 2, 3.0, 42, building.DefaultConfig())
	if err != nil {
		t.Fatalf("NewUniform: %v", err)
	}
	p, err := plan.FromBuilding(b, "tower")
	if err != nil {
		t.Fatalf("FromBuilding: %v", err)
	}
	return p
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testPlan(t))

	for _, want := range []string{
		"digraph plan {",
		"seed 42",
		"floor0",
		"floor1",
		"floor0_doors",
		"floor1_windows",
		"floor1_corners",
		"root -> floor0;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q", want)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("DOT output not closed")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	p := testPlan(t)
	if ToDOT(p) != ToDOT(p) {
		t.Error("identical plans produced different DOT")
	}
}
