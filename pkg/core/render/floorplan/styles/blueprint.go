package styles

import (
	"bytes"
	"fmt"
)

// Blueprint is the default style: white linework on a deep blue
// ground, door swings drawn as quarter arcs, windows as double
// ticks.
type Blueprint struct{}

// Name implements Style.
func (Blueprint) Name() string { return NameBlueprint }

// Colors implements Style.
func (Blueprint) Colors() Palette {
	return Palette{
		Background: "#1d3a6e",
		Wall:       "#f4f7fb",
		Door:       "#ffd166",
		Window:     "#9fd0ff",
		Corner:     "#f4f7fb",
		Grid:       "#2c4d87",
		Text:       "#dce6f5",
	}
}

// RenderDefs implements Style.
func (Blueprint) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString("    <pattern id=\"bp-grid\" width=\"8\" height=\"8\" patternUnits=\"userSpaceOnUse\">\n")
	buf.WriteString("      <path d=\"M8 0H0V8\" fill=\"none\" stroke=\"#24427a\" stroke-width=\"0.5\"/>\n")
	buf.WriteString("    </pattern>\n")
	buf.WriteString("  </defs>\n")
}

// RenderOutline implements Style.
func (s Blueprint) RenderOutline(buf *bytes.Buffer, pts []Point) {
	c := s.Colors()
	fmt.Fprintf(buf, "  <path d=%q fill=\"url(#bp-grid)\" stroke=%q stroke-width=\"2.5\" stroke-linejoin=\"round\"/>\n",
		pathFromPoints(pts), c.Wall)
}

// RenderDoor implements Style. The door leaf is a tick along the
// wall plus a quarter-arc swing into the outward direction; the main
// entrance gets a thicker leaf.
func (s Blueprint) RenderDoor(buf *bytes.Buffer, m Marker) {
	c := s.Colors()
	x1, y1, x2, y2 := tick(m)
	width := 2.0
	if m.Main {
		width = 3.5
	}
	fmt.Fprintf(buf, "  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"%.1f\"/>\n",
		x1, y1, x2, y2, c.Door, width)
	// Swing arc from the hinge end to the outward point.
	r := m.W
	fmt.Fprintf(buf, "  <path d=\"M%.2f %.2f A%.2f %.2f 0 0 1 %.2f %.2f\" fill=\"none\" stroke=%q stroke-width=\"1\" stroke-dasharray=\"3 2\"/>\n",
		x2, y2, r, r, x1+m.DX*r, y1+m.DY*r, c.Door)
}

// RenderWindow implements Style: two parallel ticks offset along the
// facing direction.
func (s Blueprint) RenderWindow(buf *bytes.Buffer, m Marker) {
	c := s.Colors()
	x1, y1, x2, y2 := tick(m)
	for _, off := range [2]float64{-1.5, 1.5} {
		fmt.Fprintf(buf, "  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"1.5\"/>\n",
			x1+m.DX*off, y1+m.DY*off, x2+m.DX*off, y2+m.DY*off, c.Window)
	}
}

// RenderCorner implements Style.
func (s Blueprint) RenderCorner(buf *bytes.Buffer, m Marker) {
	c := s.Colors()
	fmt.Fprintf(buf, "  <circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=%q/>\n",
		m.X, m.Y, maxf(m.W/2, 2), c.Corner)
}

// RenderGrid implements Style.
func (s Blueprint) RenderGrid(buf *bytes.Buffer, l Line) {
	c := s.Colors()
	fmt.Fprintf(buf, "  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"0.5\"/>\n",
		l.X1, l.Y1, l.X2, l.Y2, c.Grid)
}

// RenderLabel implements Style.
func (s Blueprint) RenderLabel(buf *bytes.Buffer, lb Label) {
	c := s.Colors()
	fmt.Fprintf(buf, "  <text x=\"%.2f\" y=\"%.2f\" fill=%q font-family=\"monospace\" font-size=\"12\">%s</text>\n",
		lb.X, lb.Y, c.Text, lb.Text)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
