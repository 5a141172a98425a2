package building

import (
	"math"

	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/core/place"
	"github.com/matzehuels/facade/pkg/core/props"
	"github.com/matzehuels/facade/pkg/core/seed"
)

// generateDoors places doors on the ground floor. Non-ground floors
// get no doors and an empty occupancy map. The occupancy map is
// returned so window generation can honor door reservations.
func generateDoors(fp *footprint.Footprint, floorIdx int, branchSeed int64, cfg Config) ([]Door, place.Occupancy, int) {
	occ := place.NewOccupancy()
	if floorIdx != 0 {
		return nil, occ, 0
	}

	// Doors always get at least one slot, even at zero density: a
	// ground floor without an entrance is not a building.
	target := max(1, int(math.Floor(fp.Perimeter()*cfg.DoorDensity)))

	res := place.Run(fp, seed.NewRand(branchSeed), occ, place.Options{
		Count:       target,
		Spacing:     cfg.DoorSpacing,
		EdgeSpacing: cfg.EdgeSpacing,
		MinUsable:   minUsableDoor,
	})

	doors := make([]Door, 0, len(res.Placements))
	for _, p := range res.Placements {
		e := fp.Edge(p.Edge)
		doors = append(doors, Door{
			EdgeIndex:  p.Edge,
			T:          p.T,
			Offset:     p.Offset,
			Position:   e.AtOffset(p.Offset),
			Facing:     e.Normal(),
			FloorIndex: floorIdx,
			Props:      props.ForDoor(branchSeed, p.Index, target, cfg.Extra),
		})
	}
	return doors, occ, res.Dropped
}
