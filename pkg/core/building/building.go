package building

import (
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/errors"
)

// Building is an ordered stack of floors sharing one base seed and
// one config. The same seed feeds every floor, so identical
// footprints produce vertically aligned window columns; branch
// identifiers keep door, window, and corner streams independent.
type Building struct {
	floors []*Floor
	seed   int64
	cfg    Config
}

// New constructs a building from per-floor footprints. The heights
// list must be empty (DefaultFloorHeight applies to every floor) or
// match the footprint count exactly.
func New(footprints []*footprint.Footprint, heights []float64, seed int64, cfg Config) (*Building, error) {
	if len(footprints) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "building needs at least one floor")
	}
	for i, fp := range footprints {
		if fp == nil {
			return nil, errors.New(errors.ErrCodeInvalidFootprint, "floor %d footprint is nil", i)
		}
	}
	if err := errors.ValidateSeed(seed); err != nil {
		return nil, err
	}
	if err := errors.ValidateFloorHeights(heights, len(footprints)); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Building{seed: seed, cfg: cfg}
	var z float64
	for i, fp := range footprints {
		h := DefaultFloorHeight
		if len(heights) > 0 {
			h = heights[i]
		}
		b.floors = append(b.floors, NewFloor(fp, i, h, z, seed, cfg))
		z += h
	}
	return b, nil
}

// NewUniform stacks the same footprint count times with a uniform
// height.
func NewUniform(fp *footprint.Footprint, count int, height float64, seedVal int64, cfg Config) (*Building, error) {
	if count <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "floor count must be positive, got %d", count)
	}
	if height <= 0 {
		height = DefaultFloorHeight
	}
	fps := make([]*footprint.Footprint, count)
	heights := make([]float64, count)
	for i := range fps {
		fps[i] = fp
		heights[i] = height
	}
	return New(fps, heights, seedVal, cfg)
}

// FloorCount returns the number of floors.
func (b *Building) FloorCount() int { return len(b.floors) }

// Floor returns the floor at index, or nil when out of range.
func (b *Building) Floor(i int) *Floor {
	if i < 0 || i >= len(b.floors) {
		return nil
	}
	return b.floors[i]
}

// Floors returns the floors in stacking order. The slice is a copy;
// the floors themselves are shared.
func (b *Building) Floors() []*Floor {
	out := make([]*Floor, len(b.floors))
	copy(out, b.floors)
	return out
}

// Seed returns the base generation seed.
func (b *Building) Seed() int64 { return b.seed }

// Config returns the effective config after defaulting.
func (b *Building) Config() Config { return b.cfg }

// TotalHeight returns the sum of all floor heights.
func (b *Building) TotalHeight() float64 {
	if len(b.floors) == 0 {
		return 0
	}
	last := b.floors[len(b.floors)-1]
	return last.TopZ()
}

// Invalidate clears every floor's cached bundle.
func (b *Building) Invalidate() {
	for _, f := range b.floors {
		f.Invalidate()
	}
}
