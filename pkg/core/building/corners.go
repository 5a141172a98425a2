package building

import (
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/core/props"
)

// generateCorners places exactly one corner per footprint vertex.
// The branch seed only varies the cosmetic properties, never the
// count or positions.
func generateCorners(fp *footprint.Footprint, floorIdx int, branchSeed int64, cfg Config) []Corner {
	vs := fp.Vertices()
	corners := make([]Corner, len(vs))
	for i, v := range vs {
		corners[i] = Corner{
			VertexIndex: i,
			Position:    v,
			Prev:        fp.Vertex(i - 1),
			Next:        fp.Vertex(i + 1),
			FloorIndex:  floorIdx,
			Props:       props.ForCorner(branchSeed, i, cfg.CornerWidth, cfg.Extra),
		}
	}
	return corners
}
