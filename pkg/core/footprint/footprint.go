// Package footprint models a building outline as a closed simple
// polygon. Construction validates the input and normalizes winding to
// counter-clockwise, so every consumer can rely on edge normals
// pointing away from the interior.
package footprint

import (
	"math"

	"github.com/matzehuels/facade/pkg/errors"
)

// geomEpsilon guards divisions by near-zero lengths and degenerate
// area and orientation checks.
const geomEpsilon = 1e-9

// Point is a 2D coordinate in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is a directed segment between two consecutive vertices of the
// outline. The closing segment from the last vertex back to the first
// is an edge like any other.
type Edge struct {
	Start  Point
	End    Point
	Length float64
}

// At returns the point at parameter t along the edge, where t=0 is
// Start and t=1 is End. Values outside [0,1] extrapolate.
func (e Edge) At(t float64) Point {
	return Point{
		X: e.Start.X + t*(e.End.X-e.Start.X),
		Y: e.Start.Y + t*(e.End.Y-e.Start.Y),
	}
}

// AtOffset returns the point at an arc-length offset in meters from
// Start.
func (e Edge) AtOffset(d float64) Point {
	if e.Length < geomEpsilon {
		return e.Start
	}
	return e.At(d / e.Length)
}

// Direction returns the unit vector from Start to End.
func (e Edge) Direction() Point {
	if e.Length < geomEpsilon {
		return Point{}
	}
	return Point{
		X: (e.End.X - e.Start.X) / e.Length,
		Y: (e.End.Y - e.Start.Y) / e.Length,
	}
}

// Normal returns the unit normal pointing away from the polygon
// interior. With counter-clockwise winding the outward normal of a
// segment with direction (dx, dy) is (dy, -dx).
func (e Edge) Normal() Point {
	d := e.Direction()
	return Point{X: d.Y, Y: -d.X}
}

// Footprint is an immutable simple polygon. The zero value is not
// usable; construct with New.
type Footprint struct {
	vertices  []Point
	edges     []Edge
	perimeter float64
	area      float64
}

// New validates the vertex list and returns a normalized footprint.
// A duplicated closing vertex is dropped. The polygon must have at
// least three distinct vertices, non-zero area, and no two
// non-adjacent edges may touch or cross. Clockwise input is reversed
// to counter-clockwise.
func New(vertices []Point) (*Footprint, error) {
	vs := make([]Point, len(vertices))
	copy(vs, vertices)

	if n := len(vs); n >= 2 && samePoint(vs[0], vs[n-1]) {
		vs = vs[:n-1]
	}
	if len(vs) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidFootprint,
			"footprint needs at least 3 vertices, got %d", len(vs))
	}
	for i := range vs {
		next := vs[(i+1)%len(vs)]
		if samePoint(vs[i], next) {
			return nil, errors.New(errors.ErrCodeInvalidFootprint,
				"duplicate consecutive vertices at index %d", i)
		}
	}

	signed := signedArea(vs)
	if math.Abs(signed) < geomEpsilon {
		return nil, errors.New(errors.ErrCodeInvalidFootprint,
			"footprint has near-zero area")
	}
	if signed < 0 {
		reverse(vs)
		signed = -signed
	}

	if i, j, ok := findSelfIntersection(vs); ok {
		return nil, errors.New(errors.ErrCodeInvalidFootprint,
			"footprint self-intersects: edges %d and %d", i, j)
	}

	fp := &Footprint{vertices: vs, area: signed}
	fp.edges = make([]Edge, len(vs))
	for i := range vs {
		a, b := vs[i], vs[(i+1)%len(vs)]
		e := Edge{Start: a, End: b, Length: math.Hypot(b.X-a.X, b.Y-a.Y)}
		fp.edges[i] = e
		fp.perimeter += e.Length
	}
	return fp, nil
}

// Rectangle is a convenience constructor for an axis-aligned
// rectangular footprint with its lower-left corner at the origin.
func Rectangle(width, height float64) (*Footprint, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFootprint,
			"rectangle dimensions must be positive, got %gx%g", width, height)
	}
	return New([]Point{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	})
}

// Vertices returns a copy of the vertex list in counter-clockwise
// order without the duplicated closing vertex.
func (f *Footprint) Vertices() []Point {
	out := make([]Point, len(f.vertices))
	copy(out, f.vertices)
	return out
}

// Vertex returns the vertex at index i. Indices wrap around, so
// Vertex(-1) is the last vertex.
func (f *Footprint) Vertex(i int) Point {
	return f.vertices[wrap(i, len(f.vertices))]
}

// EdgeCount returns the number of edges, which equals the number of
// vertices.
func (f *Footprint) EdgeCount() int {
	return len(f.edges)
}

// Edge returns the edge starting at vertex i. Indices wrap around, so
// Edge(-1) is the closing edge into vertex 0.
func (f *Footprint) Edge(i int) Edge {
	return f.edges[wrap(i, len(f.edges))]
}

// Edges returns a copy of all edges in traversal order.
func (f *Footprint) Edges() []Edge {
	out := make([]Edge, len(f.edges))
	copy(out, f.edges)
	return out
}

// Perimeter returns the total outline length in meters.
func (f *Footprint) Perimeter() float64 {
	return f.perimeter
}

// Area returns the enclosed area in square meters.
func (f *Footprint) Area() float64 {
	return f.area
}

// BBox returns the axis-aligned bounding box as min and max corners.
func (f *Footprint) BBox() (min, max Point) {
	min = f.vertices[0]
	max = f.vertices[0]
	for _, v := range f.vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// Centroid returns the area centroid of the polygon.
func (f *Footprint) Centroid() Point {
	var cx, cy float64
	for i, a := range f.vertices {
		b := f.vertices[(i+1)%len(f.vertices)]
		w := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * w
		cy += (a.Y + b.Y) * w
	}
	inv := 1 / (6 * f.area)
	return Point{X: cx * inv, Y: cy * inv}
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func samePoint(a, b Point) bool {
	return math.Abs(a.X-b.X) < geomEpsilon && math.Abs(a.Y-b.Y) < geomEpsilon
}

func reverse(vs []Point) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

// signedArea is the shoelace sum, positive for counter-clockwise
// winding.
func signedArea(vs []Point) float64 {
	var sum float64
	for i, a := range vs {
		b := vs[(i+1)%len(vs)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// findSelfIntersection reports the first pair of non-adjacent edges
// that touch or cross.
func findSelfIntersection(vs []Point) (int, int, bool) {
	n := len(vs)
	for i := 0; i < n; i++ {
		a1, a2 := vs[i], vs[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip the shared-endpoint pairs, including the
			// wraparound pair of first and last edges.
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := vs[j], vs[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func crossSign(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X)-geomEpsilon <= p.X && p.X <= math.Max(a.X, b.X)+geomEpsilon &&
		math.Min(a.Y, b.Y)-geomEpsilon <= p.Y && p.Y <= math.Max(a.Y, b.Y)+geomEpsilon
}

func segmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := crossSign(p3, p4, p1)
	d2 := crossSign(p3, p4, p2)
	d3 := crossSign(p1, p2, p3)
	d4 := crossSign(p1, p2, p4)

	if ((d1 > geomEpsilon && d2 < -geomEpsilon) || (d1 < -geomEpsilon && d2 > geomEpsilon)) &&
		((d3 > geomEpsilon && d4 < -geomEpsilon) || (d3 < -geomEpsilon && d4 > geomEpsilon)) {
		return true
	}
	switch {
	case math.Abs(d1) < geomEpsilon && onSegment(p3, p4, p1):
		return true
	case math.Abs(d2) < geomEpsilon && onSegment(p3, p4, p2):
		return true
	case math.Abs(d3) < geomEpsilon && onSegment(p1, p2, p3):
		return true
	case math.Abs(d4) < geomEpsilon && onSegment(p1, p2, p4):
		return true
	}
	return false
}
