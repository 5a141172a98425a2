package building

import (
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/core/props"
)

// Door is a placed door. Position and Facing are derived from the
// edge geometry at placement time; the struct is a value and never
// mutated after generation.
type Door struct {
	EdgeIndex  int             `json:"edge_index"`
	T          float64         `json:"t"` // normalized position on the edge, 0..1
	Offset     float64         `json:"offset"`
	Position   footprint.Point `json:"position"`
	Facing     footprint.Point `json:"facing"` // outward unit normal
	FloorIndex int             `json:"floor_index"`
	Props      props.Door      `json:"props"`
}

// Window is a placed window.
type Window struct {
	EdgeIndex  int             `json:"edge_index"`
	T          float64         `json:"t"`
	Offset     float64         `json:"offset"`
	Position   footprint.Point `json:"position"`
	Facing     footprint.Point `json:"facing"`
	FloorIndex int             `json:"floor_index"`
	Props      props.Window    `json:"props"`
}

// Corner is a placed corner piece. Prev and Next carry the
// neighboring vertices for downstream bevel geometry.
type Corner struct {
	VertexIndex int             `json:"vertex_index"`
	Position    footprint.Point `json:"position"`
	Prev        footprint.Point `json:"prev"`
	Next        footprint.Point `json:"next"`
	FloorIndex  int             `json:"floor_index"`
	Props       props.Corner    `json:"props"`
}

// Bundle is the complete element set of one floor. Slices keep
// generation order. Dropped counts record elements that found no
// collision-free spot within the retry budget.
type Bundle struct {
	Doors   []Door   `json:"doors"`
	Windows []Window `json:"windows"`
	Corners []Corner `json:"corners"`

	DroppedDoors   int `json:"dropped_doors,omitempty"`
	DroppedWindows int `json:"dropped_windows,omitempty"`
}
