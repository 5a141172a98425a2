package building

import (
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/core/seed"
	"github.com/matzehuels/facade/pkg/errors"
)

// Generate produces the element bundle for one floor. The three
// element kinds draw from independent seed branches, so changing the
// density of one kind never perturbs the others. Doors run first,
// windows honor door occupancy, corners are deterministic per vertex.
//
// Identical (footprint, floorIdx, baseSeed, cfg) inputs yield
// bit-identical bundles.
func Generate(fp *footprint.Footprint, floorIdx int, baseSeed int64, cfg Config) (*Bundle, error) {
	if fp == nil {
		return nil, errors.New(errors.ErrCodeInvalidFootprint, "footprint is nil")
	}
	if err := errors.ValidateSeed(baseSeed); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	doorSeed := seed.Derive(baseSeed, seed.BranchDoors)
	windowSeed := seed.Derive(baseSeed, seed.BranchWindows)
	cornerSeed := seed.Derive(baseSeed, seed.BranchCorners)

	doors, doorOcc, droppedDoors := generateDoors(fp, floorIdx, doorSeed, cfg)
	windows, droppedWindows := generateWindows(fp, floorIdx, windowSeed, doorOcc, cfg)
	corners := generateCorners(fp, floorIdx, cornerSeed, cfg)

	return &Bundle{
		Doors:          doors,
		Windows:        windows,
		Corners:        corners,
		DroppedDoors:   droppedDoors,
		DroppedWindows: droppedWindows,
	}, nil
}
