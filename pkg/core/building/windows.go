package building

import (
	"math"

	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/core/place"
	"github.com/matzehuels/facade/pkg/core/props"
	"github.com/matzehuels/facade/pkg/core/seed"
)

// generateWindows places windows on any floor. The door occupancy map
// is cloned before seeding the run, so windows keep clear of doors
// while doors are never re-evaluated against windows.
func generateWindows(fp *footprint.Footprint, floorIdx int, branchSeed int64, doorOcc place.Occupancy, cfg Config) ([]Window, int) {
	// No forced minimum: a short perimeter or low density may
	// legitimately yield zero windows.
	target := int(math.Floor(fp.Perimeter() * cfg.WindowDensity))
	if target <= 0 {
		return nil, 0
	}

	res := place.Run(fp, seed.NewRand(branchSeed), doorOcc.Clone(), place.Options{
		Count:       target,
		Spacing:     cfg.WindowSpacing,
		EdgeSpacing: cfg.EdgeSpacing,
		MinUsable:   minUsableWindow,
	})

	windows := make([]Window, 0, len(res.Placements))
	for _, p := range res.Placements {
		e := fp.Edge(p.Edge)
		windows = append(windows, Window{
			EdgeIndex:  p.Edge,
			T:          p.T,
			Offset:     p.Offset,
			Position:   e.AtOffset(p.Offset),
			Facing:     e.Normal(),
			FloorIndex: floorIdx,
			Props:      props.ForWindow(branchSeed, p.Index, cfg.Extra),
		})
	}
	return windows, res.Dropped
}
