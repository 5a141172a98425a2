package building

import (
	"reflect"
	"testing"

	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/errors"
)

func TestFloorCacheIdempotence(t *testing.T) {
	fp := square10(t)
	f := NewFloor(fp, 0, 3.0, 0, 12345, DefaultConfig())

	if f.Computed() {
		t.Error("fresh floor reports a computed bundle")
	}
	b1, err := f.Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if !f.Computed() {
		t.Error("floor does not report computed after Elements")
	}

	// Cached read returns the same bundle without regeneration.
	b2, err := f.Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if b1 != b2 {
		t.Error("cached read returned a different bundle pointer")
	}

	f.Invalidate()
	if f.Computed() {
		t.Error("floor still computed after Invalidate")
	}
	b3, err := f.Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if b1 == b3 {
		t.Error("regeneration returned the cached pointer")
	}
	if !reflect.DeepEqual(b1, b3) {
		t.Error("regeneration with identical inputs produced a different bundle")
	}
}

func TestBuildingZBookkeeping(t *testing.T) {
	fp := square10(t)
	b, err := New([]*footprint.Footprint{fp, fp, fp}, []float64{3, 2.5, 4}, 1, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	wantBase := []float64{0, 3, 5.5}
	for i, f := range b.Floors() {
		if f.BaseZ() != wantBase[i] {
			t.Errorf("floor %d base Z = %g, want %g", i, f.BaseZ(), wantBase[i])
		}
	}
	if b.TotalHeight() != 9.5 {
		t.Errorf("total height = %g, want 9.5", b.TotalHeight())
	}
}

func TestBuildingDefaultHeight(t *testing.T) {
	fp := square10(t)
	b, err := New([]*footprint.Footprint{fp, fp}, nil, 1, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if h := b.Floor(1).Height(); h != DefaultFloorHeight {
		t.Errorf("floor height = %g, want %g", h, DefaultFloorHeight)
	}
}

func TestBuildingHeightMismatch(t *testing.T) {
	fp := square10(t)
	_, err := New([]*footprint.Footprint{fp, fp, fp}, []float64{3, 3}, 1, DefaultConfig())
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("mismatched heights: got %v", err)
	}
}

func TestBuildingDoorsOnGroundFloorOnly(t *testing.T) {
	fp := square10(t)
	b, err := NewUniform(fp, 3, 3.0, 12345, DefaultConfig())
	if err != nil {
		t.Fatalf("NewUniform: %v", err)
	}
	for i, f := range b.Floors() {
		bundle, err := f.Elements()
		if err != nil {
			t.Fatalf("floor %d Elements: %v", i, err)
		}
		if i == 0 && len(bundle.Doors) == 0 {
			t.Error("ground floor has no doors")
		}
		if i > 0 && len(bundle.Doors) != 0 {
			t.Errorf("floor %d has %d doors", i, len(bundle.Doors))
		}
	}
}

func TestWindowColumnsAlignAcrossFloors(t *testing.T) {
	// Same base seed on every floor: identical footprints put the
	// window branch in the same state, so upper floors repeat the
	// pattern wherever door occupancy does not interfere.
	fp := square10(t)
	b, err := NewUniform(fp, 3, 3.0, 777, DefaultConfig())
	if err != nil {
		t.Fatalf("NewUniform: %v", err)
	}
	b1, err := b.Floor(1).Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	b2, err := b.Floor(2).Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if len(b1.Windows) != len(b2.Windows) {
		t.Fatalf("floor 1 has %d windows, floor 2 has %d", len(b1.Windows), len(b2.Windows))
	}
	for i := range b1.Windows {
		w1, w2 := b1.Windows[i], b2.Windows[i]
		if w1.EdgeIndex != w2.EdgeIndex || w1.Offset != w2.Offset {
			t.Errorf("window %d differs between floors: %+v vs %+v", i, w1, w2)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	cfg.WindowSpacing = -1
	if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("negative spacing: got %v", err)
	}
}
