package footprint

import (
	"math"
	"testing"

	"github.com/matzehuels/facade/pkg/errors"
)

func square10() []Point {
	return []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		vertices []Point
		wantErr  bool
	}{
		{"square", square10(), false},
		{"square with closing vertex", append(square10(), Point{0, 0}), false},
		{"triangle", []Point{{0, 0}, {4, 0}, {2, 3}}, false},
		{"too few vertices", []Point{{0, 0}, {1, 1}}, true},
		{"closing vertex leaves too few", []Point{{0, 0}, {1, 1}, {0, 0}}, true},
		{"duplicate consecutive vertices", []Point{{0, 0}, {10, 0}, {10, 0}, {0, 10}}, true},
		{"collinear", []Point{{0, 0}, {5, 0}, {10, 0}}, true},
		{"bowtie", []Point{{0, 0}, {10, 10}, {10, 0}, {0, 10}}, true},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.vertices)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFootprint) {
				t.Errorf("New() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFootprint)
			}
		})
	}
}

func TestWindingNormalization(t *testing.T) {
	ccw, err := New(square10())
	if err != nil {
		t.Fatalf("New(ccw): %v", err)
	}
	clockwise := []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	cw, err := New(clockwise)
	if err != nil {
		t.Fatalf("New(cw): %v", err)
	}

	if ccw.Area() <= 0 || cw.Area() <= 0 {
		t.Errorf("areas must be positive: ccw=%g cw=%g", ccw.Area(), cw.Area())
	}
	// Both orderings describe the same square, so after normalization
	// the signed area and perimeter agree.
	if math.Abs(ccw.Area()-cw.Area()) > 1e-9 {
		t.Errorf("Area mismatch: ccw=%g cw=%g", ccw.Area(), cw.Area())
	}
	if math.Abs(signedArea(cw.Vertices())) < 1e-9 || signedArea(cw.Vertices()) < 0 {
		t.Error("clockwise input was not reversed to counter-clockwise")
	}
}

func TestPerimeterAndArea(t *testing.T) {
	fp, err := New(square10())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := fp.Perimeter(); math.Abs(got-40) > 1e-9 {
		t.Errorf("Perimeter() = %g, want 40", got)
	}
	if got := fp.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("Area() = %g, want 100", got)
	}
	if got := fp.EdgeCount(); got != 4 {
		t.Errorf("EdgeCount() = %d, want 4", got)
	}
}

func TestOutwardNormals(t *testing.T) {
	fp, err := New(square10())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// For a counter-clockwise square starting at the origin the
	// outward normals point down, right, up, left in edge order.
	want := []Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for i, w := range want {
		n := fp.Edge(i).Normal()
		if math.Abs(n.X-w.X) > 1e-9 || math.Abs(n.Y-w.Y) > 1e-9 {
			t.Errorf("Edge(%d).Normal() = (%g,%g), want (%g,%g)", i, n.X, n.Y, w.X, w.Y)
		}
	}
}

func TestEdgeAt(t *testing.T) {
	e := Edge{Start: Point{0, 0}, End: Point{10, 0}, Length: 10}

	if p := e.At(0.5); math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Errorf("At(0.5) = (%g,%g), want (5,0)", p.X, p.Y)
	}
	if p := e.AtOffset(2.5); math.Abs(p.X-2.5) > 1e-9 {
		t.Errorf("AtOffset(2.5) = (%g,%g), want (2.5,0)", p.X, p.Y)
	}
	if d := e.Direction(); math.Abs(d.X-1) > 1e-9 || math.Abs(d.Y) > 1e-9 {
		t.Errorf("Direction() = (%g,%g), want (1,0)", d.X, d.Y)
	}
}

func TestIndexWraparound(t *testing.T) {
	fp, err := New(square10())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := fp.Edge(-1), fp.Edge(3); got != want {
		t.Errorf("Edge(-1) = %+v, want %+v", got, want)
	}
	if got, want := fp.Edge(4), fp.Edge(0); got != want {
		t.Errorf("Edge(4) = %+v, want %+v", got, want)
	}
	if got, want := fp.Vertex(-1), fp.Vertex(3); got != want {
		t.Errorf("Vertex(-1) = %+v, want %+v", got, want)
	}
}

func TestBBoxAndCentroid(t *testing.T) {
	fp, err := New([]Point{{2, 1}, {8, 1}, {8, 5}, {2, 5}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	min, max := fp.BBox()
	if min.X != 2 || min.Y != 1 || max.X != 8 || max.Y != 5 {
		t.Errorf("BBox() = (%+v,%+v), want ((2,1),(8,5))", min, max)
	}
	c := fp.Centroid()
	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y-3) > 1e-9 {
		t.Errorf("Centroid() = (%g,%g), want (5,3)", c.X, c.Y)
	}
}

func TestRectangle(t *testing.T) {
	fp, err := Rectangle(12, 8)
	if err != nil {
		t.Fatalf("Rectangle: %v", err)
	}
	if got := fp.Perimeter(); math.Abs(got-40) > 1e-9 {
		t.Errorf("Perimeter() = %g, want 40", got)
	}
	if _, err := Rectangle(0, 5); err == nil {
		t.Error("Rectangle(0,5) succeeded, want error")
	}
}

func TestImmutability(t *testing.T) {
	input := square10()
	fp, err := New(input)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	input[0] = Point{99, 99}
	if fp.Vertex(0) == (Point{99, 99}) {
		t.Error("footprint aliases caller slice")
	}
	vs := fp.Vertices()
	vs[1] = Point{-1, -1}
	if fp.Vertex(1) == (Point{-1, -1}) {
		t.Error("Vertices() exposes internal slice")
	}
}
