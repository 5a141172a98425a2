package place

import "testing"

func TestOccupancyBlocked(t *testing.T) {
	occ := NewOccupancy()
	occ.Reserve(0, 3, 2) // interval [2,4]

	tests := []struct {
		name    string
		pos     float64
		spacing float64
		want    bool
	}{
		{"inside interval", 3, 2, true},
		{"overlapping from right", 4.5, 2, true},
		{"touching right end", 5, 2, true},
		{"clear of right end", 5.001, 2, false},
		{"touching left end", 1, 2, true},
		{"clear of left end", 0.999, 2, false},
		{"zero spacing inside", 3.5, 0, true},
		{"zero spacing outside", 4.5, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := occ.Blocked(0, tt.pos, tt.spacing); got != tt.want {
				t.Errorf("Blocked(0, %g, %g) = %v, want %v", tt.pos, tt.spacing, got, tt.want)
			}
		})
	}
}

func TestOccupancyPerEdge(t *testing.T) {
	occ := NewOccupancy()
	occ.Reserve(0, 5, 2)

	if occ.Blocked(1, 5, 2) {
		t.Error("reservation on edge 0 blocks edge 1")
	}
	if got := len(occ.Spans(0)); got != 1 {
		t.Errorf("Spans(0) has %d intervals, want 1", got)
	}
	if got := occ.Spans(1); got != nil {
		t.Errorf("Spans(1) = %v, want nil", got)
	}
}

func TestOccupancyClone(t *testing.T) {
	occ := NewOccupancy()
	occ.Reserve(2, 5, 1)

	clone := occ.Clone()
	clone.Reserve(2, 8, 1)
	clone.Reserve(3, 1, 1)

	if got := len(occ.Spans(2)); got != 1 {
		t.Errorf("original edge 2 has %d intervals after clone mutation, want 1", got)
	}
	if occ.Blocked(3, 1, 1) {
		t.Error("reservation on clone leaked into original")
	}
	if !clone.Blocked(2, 5, 1) {
		t.Error("clone lost original reservation")
	}
}
