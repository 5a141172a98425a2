package place

// Interval is a reserved span along an edge, in meters from the edge
// start. Inclusive on both ends: a candidate whose span touches an
// interval boundary counts as colliding.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Occupancy tracks reserved intervals per edge index. Generators that
// must avoid each other's elements share one occupancy map, or clone
// it when the avoidance is one-directional.
type Occupancy map[int][]Interval

// NewOccupancy returns an empty occupancy map.
func NewOccupancy() Occupancy {
	return make(Occupancy)
}

// Blocked reports whether an element of the given spacing centered at
// pos would collide with any reserved interval on the edge.
func (o Occupancy) Blocked(edge int, pos, spacing float64) bool {
	half := spacing / 2
	for _, iv := range o[edge] {
		if pos+half < iv.Start || pos-half > iv.End {
			continue
		}
		return true
	}
	return false
}

// Reserve records the span of an element with the given spacing
// centered at pos.
func (o Occupancy) Reserve(edge int, pos, spacing float64) {
	half := spacing / 2
	o[edge] = append(o[edge], Interval{Start: pos - half, End: pos + half})
}

// Clone returns a deep copy. Reservations added to the copy do not
// affect the original, which lets a later generator honor an earlier
// one's reservations without the reverse being true.
func (o Occupancy) Clone() Occupancy {
	out := make(Occupancy, len(o))
	for edge, ivs := range o {
		cp := make([]Interval, len(ivs))
		copy(cp, ivs)
		out[edge] = cp
	}
	return out
}

// Spans returns a copy of the reserved intervals on an edge.
func (o Occupancy) Spans(edge int) []Interval {
	ivs := o[edge]
	if len(ivs) == 0 {
		return nil
	}
	cp := make([]Interval, len(ivs))
	copy(cp, ivs)
	return cp
}
