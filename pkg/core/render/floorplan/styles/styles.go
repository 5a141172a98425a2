// Package styles defines the visual vocabulary for floor-plan
// rendering. A Style turns scene primitives (outlines, element
// markers, grid lines, labels) into SVG fragments; the sink composes
// them into a document. Raster sinks read the color accessors
// instead of the SVG methods.
package styles

import (
	"bytes"
	"fmt"
)

// Point is a page-space coordinate in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is a page-space segment.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Marker is one rendered element. X,Y is the element center, DX,DY
// the outward facing direction, W the element width in pixels. Main
// flags the main entrance door.
type Marker struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
	W    float64 `json:"w"`
	Main bool    `json:"main,omitempty"`
}

// Label is positioned text.
type Label struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Style renders scene primitives as SVG fragments.
type Style interface {
	// Name identifies the style in options and cache keys.
	Name() string
	// Colors returns the palette for raster sinks.
	Colors() Palette
	// RenderDefs writes SVG <defs> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderOutline draws a closed floor outline.
	RenderOutline(buf *bytes.Buffer, pts []Point)
	// RenderDoor draws a door marker.
	RenderDoor(buf *bytes.Buffer, m Marker)
	// RenderWindow draws a window marker.
	RenderWindow(buf *bytes.Buffer, m Marker)
	// RenderCorner draws a corner marker.
	RenderCorner(buf *bytes.Buffer, m Marker)
	// RenderGrid draws one scale-grid line.
	RenderGrid(buf *bytes.Buffer, l Line)
	// RenderLabel draws positioned text.
	RenderLabel(buf *bytes.Buffer, lb Label)
}

// Palette is the color set shared by the SVG and raster renderers.
// Colors are CSS hex strings.
type Palette struct {
	Background string
	Wall       string
	Door       string
	Window     string
	Corner     string
	Grid       string
	Text       string
}

// ByName resolves a style name. Unknown names report false.
func ByName(name string) (Style, bool) {
	switch name {
	case "", NameBlueprint:
		return Blueprint{}, true
	case NameSimple:
		return Simple{}, true
	}
	return nil, false
}

// Style names.
const (
	NameBlueprint = "blueprint"
	NameSimple    = "simple"
)

// pathFromPoints builds a closed SVG path.
func pathFromPoints(pts []Point) string {
	var b bytes.Buffer
	for i, p := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.2f %.2f ", cmd, p.X, p.Y)
	}
	b.WriteString("Z")
	return b.String()
}

// tick returns the endpoints of a segment of length w centered on the
// marker and perpendicular to its facing direction, i.e. lying along
// the wall.
func tick(m Marker) (x1, y1, x2, y2 float64) {
	// Wall direction is the facing normal rotated a quarter turn.
	tx, ty := -m.DY, m.DX
	h := m.W / 2
	return m.X - tx*h, m.Y - ty*h, m.X + tx*h, m.Y + ty*h
}
