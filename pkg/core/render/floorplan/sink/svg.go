// Package sink renders floor-plan scenes to output formats: SVG is
// hand-written markup, PNG rasterizes through gg, JSON exposes the
// scene itself for downstream tooling.
package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/facade/pkg/core/render/floorplan"
	"github.com/matzehuels/facade/pkg/core/render/floorplan/styles"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
}

// WithStyle selects the visual style, Blueprint by default.
func WithStyle(s styles.Style) SVGOption {
	return func(r *svgRenderer) { r.style = s }
}

// RenderSVG renders the scene as a standalone SVG document. Output
// is deterministic for a given scene and style.
func RenderSVG(scene floorplan.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Blueprint{}}
	for _, opt := range opts {
		opt(&r)
	}
	c := r.style.Colors()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		scene.Width, scene.Height, scene.Width, scene.Height)
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, "  <rect width=\"100%%\" height=\"100%%\" fill=%q/>\n", c.Background)

	for _, f := range scene.Floors {
		fmt.Fprintf(&buf, "  <g id=\"floor-%d\">\n", f.Index)
		for _, l := range f.Grid {
			r.style.RenderGrid(&buf, l)
		}
		r.style.RenderOutline(&buf, f.Outline)
		for _, m := range f.Windows {
			r.style.RenderWindow(&buf, m)
		}
		for _, m := range f.Doors {
			r.style.RenderDoor(&buf, m)
		}
		for _, m := range f.Corners {
			r.style.RenderCorner(&buf, m)
		}
		for _, lb := range f.Labels {
			r.style.RenderLabel(&buf, lb)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
