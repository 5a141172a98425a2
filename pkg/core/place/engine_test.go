package place

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/core/seed"
)

func mustFootprint(t *testing.T, vs []footprint.Point) *footprint.Footprint {
	t.Helper()
	fp, err := footprint.New(vs)
	if err != nil {
		t.Fatalf("footprint.New: %v", err)
	}
	return fp
}

func square(t *testing.T) *footprint.Footprint {
	return mustFootprint(t, []footprint.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
}

func TestRunDeterminism(t *testing.T) {
	fp := square(t)
	opts := Options{Count: 8, Spacing: 1.5, EdgeSpacing: 1.0, MinUsable: 0.3}

	r1 := Run(fp, seed.NewRand(42), NewOccupancy(), opts)
	r2 := Run(fp, seed.NewRand(42), NewOccupancy(), opts)

	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("identical seeds produced different results:\n%+v\n%+v", r1, r2)
	}
	if len(r1.Placements)+r1.Dropped != opts.Count {
		t.Errorf("placements %d + dropped %d != count %d", len(r1.Placements), r1.Dropped, opts.Count)
	}
}

func TestRunRespectsSpacing(t *testing.T) {
	fp := square(t)
	opts := Options{Count: 20, Spacing: 1.5, EdgeSpacing: 1.0, MinUsable: 0.3}
	res := Run(fp, seed.NewRand(7), NewOccupancy(), opts)

	byEdge := map[int][]float64{}
	for _, p := range res.Placements {
		byEdge[p.Edge] = append(byEdge[p.Edge], p.Offset)
	}
	for edge, offsets := range byEdge {
		for i := 0; i < len(offsets); i++ {
			for j := i + 1; j < len(offsets); j++ {
				if d := math.Abs(offsets[i] - offsets[j]); d < opts.Spacing-1e-9 {
					t.Errorf("edge %d: placements %g and %g only %g apart, want >= %g",
						edge, offsets[i], offsets[j], d, opts.Spacing)
				}
			}
		}
	}
}

func TestRunRespectsEdgeSpacing(t *testing.T) {
	fp := square(t)
	opts := Options{Count: 20, Spacing: 1.0, EdgeSpacing: 1.5, MinUsable: 0.3}
	res := Run(fp, seed.NewRand(9), NewOccupancy(), opts)

	if len(res.Placements) == 0 {
		t.Fatal("no placements")
	}
	for _, p := range res.Placements {
		length := fp.Edge(p.Edge).Length
		if p.Offset < opts.EdgeSpacing-1e-9 || p.Offset > length-opts.EdgeSpacing+1e-9 {
			t.Errorf("placement at %g on edge %d outside [%g, %g]",
				p.Offset, p.Edge, opts.EdgeSpacing, length-opts.EdgeSpacing)
		}
		if math.Abs(p.T-p.Offset/length) > 1e-9 {
			t.Errorf("T = %g inconsistent with Offset %g on edge of length %g", p.T, p.Offset, length)
		}
	}
}

func TestRunSkipsShortEdges(t *testing.T) {
	// A chamfered square: edge 1 is a 0.28 m cut that cannot hold
	// elements once endpoint clearance is subtracted.
	fp := mustFootprint(t, []footprint.Point{
		{X: 0, Y: 0}, {X: 9.8, Y: 0}, {X: 10, Y: 0.2}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	opts := Options{Count: 30, Spacing: 0.5, EdgeSpacing: 0.1, MinUsable: 0.3}
	res := Run(fp, seed.NewRand(11), NewOccupancy(), opts)

	if len(res.Placements) == 0 {
		t.Fatal("no placements")
	}
	for _, p := range res.Placements {
		if p.Edge == 1 {
			t.Errorf("placement landed on short edge at offset %g", p.Offset)
		}
	}
}

func TestRunAllEdgesTooShort(t *testing.T) {
	fp := mustFootprint(t, []footprint.Point{{X: 0, Y: 0}, {X: 0.4, Y: 0}, {X: 0.2, Y: 0.3}})
	opts := Options{Count: 5, Spacing: 1.0, EdgeSpacing: 0, MinUsable: 0.5}
	res := Run(fp, seed.NewRand(1), NewOccupancy(), opts)

	if len(res.Placements) != 0 {
		t.Errorf("placed %d elements on a footprint with no usable edge", len(res.Placements))
	}
	if res.Dropped != opts.Count {
		t.Errorf("Dropped = %d, want %d", res.Dropped, opts.Count)
	}
}

func TestRunDropAccounting(t *testing.T) {
	fp := square(t)
	// Far more elements than the perimeter can hold.
	opts := Options{Count: 50, Spacing: 4.0, EdgeSpacing: 1.0, MinUsable: 0.3}
	res := Run(fp, seed.NewRand(5), NewOccupancy(), opts)

	if res.Dropped == 0 {
		t.Error("expected drops on an oversubscribed footprint")
	}
	if len(res.Placements)+res.Dropped != opts.Count {
		t.Errorf("placements %d + dropped %d != count %d", len(res.Placements), res.Dropped, opts.Count)
	}
}

func TestRunHonorsExistingReservations(t *testing.T) {
	fp := square(t)
	occ := NewOccupancy()
	// Block edge 0 end to end.
	occ.Reserve(0, 5, 10)

	opts := Options{Count: 12, Spacing: 1.0, EdgeSpacing: 0.5, MinUsable: 0.3}
	res := Run(fp, seed.NewRand(21), occ, opts)

	for _, p := range res.Placements {
		if p.Edge == 0 {
			t.Errorf("placement at %g landed on fully reserved edge", p.Offset)
		}
	}
}

func TestRunIndexStability(t *testing.T) {
	fp := square(t)
	opts := Options{Count: 50, Spacing: 4.0, EdgeSpacing: 1.0, MinUsable: 0.3}
	res := Run(fp, seed.NewRand(13), NewOccupancy(), opts)

	if res.Dropped == 0 {
		t.Fatal("test needs drops to be meaningful")
	}
	last := -1
	for _, p := range res.Placements {
		if p.Index <= last {
			t.Errorf("indices not strictly increasing: %d after %d", p.Index, last)
		}
		if p.Index < 0 || p.Index >= opts.Count {
			t.Errorf("index %d outside [0, %d)", p.Index, opts.Count)
		}
		last = p.Index
	}
}

func TestRunZeroCount(t *testing.T) {
	fp := square(t)
	res := Run(fp, seed.NewRand(1), NewOccupancy(), Options{Count: 0, Spacing: 1})
	if len(res.Placements) != 0 || res.Dropped != 0 {
		t.Errorf("Run with zero count = %+v, want empty", res)
	}
}

func TestSearchNearest(t *testing.T) {
	opts := Options{Spacing: 2, SearchStep: 0.1}.withDefaults()

	t.Run("finds nearest free spot", func(t *testing.T) {
		occ := Occupancy{0: {{Start: 4.0, End: 4.4}}}
		// Candidates in [3.0, 5.4] collide. From 5.0 the first free
		// position outward is 5.5.
		got, ok := searchNearest(occ, 0, 5.0, 1, 9, opts)
		if !ok {
			t.Fatal("searchNearest found nothing")
		}
		if math.Abs(got-5.5) > 1e-9 {
			t.Errorf("searchNearest = %g, want 5.5", got)
		}
	})

	t.Run("positive direction wins ties", func(t *testing.T) {
		o := Options{Spacing: 0.4, SearchStep: 0.1}.withDefaults()
		occ := Occupancy{0: {{Start: 4.9, End: 5.1}}}
		// Blocked span for spacing 0.4 is [4.7, 5.3]; 5.4 and 4.6
		// free up at the same step.
		got, ok := searchNearest(occ, 0, 5.0, 1, 9, o)
		if !ok {
			t.Fatal("searchNearest found nothing")
		}
		if math.Abs(got-5.4) > 1e-9 {
			t.Errorf("searchNearest = %g, want 5.4", got)
		}
	})

	t.Run("gives up beyond spacing radius", func(t *testing.T) {
		occ := Occupancy{0: {{Start: 2, End: 8}}}
		// Everything within 5.0 +/- 2.0 collides for spacing 2.
		if got, ok := searchNearest(occ, 0, 5.0, 1, 9, opts); ok {
			t.Errorf("searchNearest = %g, want no result", got)
		}
	})

	t.Run("skips positions outside bounds", func(t *testing.T) {
		o := Options{Spacing: 1, SearchStep: 0.1}.withDefaults()
		occ := Occupancy{0: {{Start: 8.5, End: 9.5}}}
		// Upward candidates stay blocked through the hi bound, so
		// the search must come back down below the interval.
		got, ok := searchNearest(occ, 0, 8.9, 1, 9, o)
		if !ok {
			t.Fatal("searchNearest found nothing")
		}
		if math.Abs(got-7.9) > 1e-9 {
			t.Errorf("searchNearest = %g, want 7.9", got)
		}
		if got > 9 {
			t.Errorf("searchNearest = %g, beyond hi bound", got)
		}
	})
}
