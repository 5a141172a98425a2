package styles

import (
	"bytes"
	"fmt"
)

// Simple is a monochrome style for print and diffing: black lines on
// white, no fills, no defs.
type Simple struct{}

// Name implements Style.
func (Simple) Name() string { return NameSimple }

// Colors implements Style.
func (Simple) Colors() Palette {
	return Palette{
		Background: "#ffffff",
		Wall:       "#111111",
		Door:       "#111111",
		Window:     "#555555",
		Corner:     "#111111",
		Grid:       "#dddddd",
		Text:       "#111111",
	}
}

// RenderDefs implements Style.
func (Simple) RenderDefs(*bytes.Buffer) {}

// RenderOutline implements Style.
func (s Simple) RenderOutline(buf *bytes.Buffer, pts []Point) {
	fmt.Fprintf(buf, "  <path d=%q fill=\"none\" stroke=%q stroke-width=\"2\"/>\n",
		pathFromPoints(pts), s.Colors().Wall)
}

// RenderDoor implements Style.
func (s Simple) RenderDoor(buf *bytes.Buffer, m Marker) {
	x1, y1, x2, y2 := tick(m)
	width := 2.0
	if m.Main {
		width = 3.0
	}
	fmt.Fprintf(buf, "  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"%.1f\"/>\n",
		x1, y1, x2, y2, s.Colors().Door, width)
}

// RenderWindow implements Style.
func (s Simple) RenderWindow(buf *bytes.Buffer, m Marker) {
	x1, y1, x2, y2 := tick(m)
	fmt.Fprintf(buf, "  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"1.5\" stroke-dasharray=\"2 2\"/>\n",
		x1, y1, x2, y2, s.Colors().Window)
}

// RenderCorner implements Style.
func (s Simple) RenderCorner(buf *bytes.Buffer, m Marker) {
	fmt.Fprintf(buf, "  <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=%q/>\n",
		m.X-m.W/2, m.Y-m.W/2, m.W, m.W, s.Colors().Corner)
}

// RenderGrid implements Style.
func (s Simple) RenderGrid(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf, "  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"0.5\"/>\n",
		l.X1, l.Y1, l.X2, l.Y2, s.Colors().Grid)
}

// RenderLabel implements Style.
func (s Simple) RenderLabel(buf *bytes.Buffer, lb Label) {
	fmt.Fprintf(buf, "  <text x=\"%.2f\" y=\"%.2f\" fill=%q font-family=\"monospace\" font-size=\"12\">%s</text>\n",
		lb.X, lb.Y, s.Colors().Text, lb.Text)
}
