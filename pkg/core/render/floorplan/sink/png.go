package sink

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/matzehuels/facade/pkg/core/render/floorplan"
	"github.com/matzehuels/facade/pkg/core/render/floorplan/styles"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style styles.Style
	scale float64
}

// WithPNGStyle selects the visual style, Blueprint by default.
func WithPNGStyle(s styles.Style) PNGOption {
	return func(r *pngRenderer) { r.style = s }
}

// WithPNGScale sets the supersampling factor (default 2.0).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the scene natively. No external converter is
// involved; the drawing mirrors what RenderSVG emits.
func RenderPNG(scene floorplan.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: styles.Blueprint{}, scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	c := r.style.Colors()

	dc := gg.NewContext(int(scene.Width*r.scale), int(scene.Height*r.scale))
	dc.Scale(r.scale, r.scale)
	dc.SetHexColor(c.Background)
	dc.Clear()

	for _, f := range scene.Floors {
		dc.SetHexColor(c.Grid)
		dc.SetLineWidth(0.5)
		for _, l := range f.Grid {
			dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
			dc.Stroke()
		}

		if len(f.Outline) > 0 {
			dc.NewSubPath()
			dc.MoveTo(f.Outline[0].X, f.Outline[0].Y)
			for _, p := range f.Outline[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.ClosePath()
			dc.SetHexColor(c.Wall)
			dc.SetLineWidth(2.5)
			dc.Stroke()
		}

		dc.SetHexColor(c.Window)
		dc.SetLineWidth(1.5)
		for _, m := range f.Windows {
			drawTick(dc, m)
		}

		dc.SetHexColor(c.Door)
		for _, m := range f.Doors {
			if m.Main {
				dc.SetLineWidth(3.5)
			} else {
				dc.SetLineWidth(2)
			}
			drawTick(dc, m)
		}

		dc.SetHexColor(c.Corner)
		for _, m := range f.Corners {
			dc.DrawCircle(m.X, m.Y, maxf(m.W/2, 2))
			dc.Fill()
		}

		dc.SetHexColor(c.Text)
		for _, lb := range f.Labels {
			dc.DrawString(lb.Text, lb.X, lb.Y)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTick strokes the wall-aligned segment of a marker.
func drawTick(dc *gg.Context, m styles.Marker) {
	tx, ty := -m.DY, m.DX
	h := m.W / 2
	dc.DrawLine(m.X-tx*h, m.Y-ty*h, m.X+tx*h, m.Y+ty*h)
	dc.Stroke()
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
