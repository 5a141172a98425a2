// Package floorplan converts a plan document into a page-space
// scene: floors tiled left to right, each with its outline, element
// markers, optional scale grid, and label. Sinks turn the scene into
// SVG, PNG, or JSON without re-deriving any geometry.
package floorplan

import (
	"fmt"
	"math"

	"github.com/matzehuels/facade/pkg/core/render/floorplan/styles"
	"github.com/matzehuels/facade/pkg/errors"
	"github.com/matzehuels/facade/pkg/plan"
)

// Layout defaults in pixels.
const (
	DefaultScale  = 20.0 // pixels per meter
	DefaultMargin = 40.0

	// AllFloors selects every floor of the plan.
	AllFloors = -1
)

// Options selects floors and controls the page transform.
type Options struct {
	// Scale is the pixels-per-meter factor, DefaultScale when zero.
	Scale float64
	// Margin is the page margin and inter-floor gap in pixels.
	Margin float64
	// Floor selects one floor index, or AllFloors.
	Floor int
	// ShowLabels adds a caption under each floor.
	ShowLabels bool
	// ShowGrid draws a 1-meter grid behind each floor.
	ShowGrid bool
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	return o
}

// FloorScene is one floor in page coordinates.
type FloorScene struct {
	Index   int             `json:"index"`
	Outline []styles.Point  `json:"outline"`
	Doors   []styles.Marker `json:"doors"`
	Windows []styles.Marker `json:"windows"`
	Corners []styles.Marker `json:"corners"`
	Grid    []styles.Line   `json:"grid,omitempty"`
	Labels  []styles.Label  `json:"labels,omitempty"`
}

// Scene is a complete page.
type Scene struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Floors []FloorScene `json:"floors"`
}

// Build lays the selected floors of p out on one page. Pages grow to
// the right, one tile per floor, tallest floor setting the page
// height.
func Build(p *plan.Plan, opts Options) (Scene, error) {
	opts = opts.withDefaults()

	floors := p.Floors
	if opts.Floor != AllFloors {
		if opts.Floor < 0 || opts.Floor >= len(p.Floors) {
			return Scene{}, errors.New(errors.ErrCodeFloorNotFound,
				"floor %d out of range, plan has %d floors", opts.Floor, len(p.Floors))
		}
		floors = p.Floors[opts.Floor : opts.Floor+1]
	}

	var scene Scene
	offsetX := opts.Margin
	maxH := 0.0
	for _, f := range floors {
		fs, w, h := buildFloor(f, offsetX, opts)
		scene.Floors = append(scene.Floors, fs)
		offsetX += w + opts.Margin
		maxH = math.Max(maxH, h)
	}
	scene.Width = offsetX
	scene.Height = maxH + 2*opts.Margin
	if opts.ShowLabels {
		scene.Height += 20
	}
	return scene, nil
}

// buildFloor transforms one floor into page space and returns the
// scene plus the tile's width and height in pixels.
func buildFloor(f plan.Floor, offsetX float64, opts Options) (FloorScene, float64, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range f.Vertices {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	w := (maxX - minX) * opts.Scale
	h := (maxY - minY) * opts.Scale

	// Page Y grows downward; world Y grows upward.
	toPage := func(p plan.Point) styles.Point {
		return styles.Point{
			X: offsetX + (p.X-minX)*opts.Scale,
			Y: opts.Margin + (maxY-p.Y)*opts.Scale,
		}
	}
	toDir := func(p plan.Point) (float64, float64) {
		return p.X, -p.Y
	}

	fs := FloorScene{Index: f.Index}
	for _, v := range f.Vertices {
		fs.Outline = append(fs.Outline, toPage(v))
	}

	if opts.ShowGrid {
		for x := math.Ceil(minX); x <= maxX; x++ {
			a := toPage(plan.Point{X: x, Y: minY})
			b := toPage(plan.Point{X: x, Y: maxY})
			fs.Grid = append(fs.Grid, styles.Line{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
		}
		for y := math.Ceil(minY); y <= maxY; y++ {
			a := toPage(plan.Point{X: minX, Y: y})
			b := toPage(plan.Point{X: maxX, Y: y})
			fs.Grid = append(fs.Grid, styles.Line{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
		}
	}

	for _, d := range f.Doors {
		pt := toPage(d.Position)
		dx, dy := toDir(d.Facing)
		fs.Doors = append(fs.Doors, styles.Marker{
			X: pt.X, Y: pt.Y, DX: dx, DY: dy,
			W:    propWidth(d.Props, 1.0) * opts.Scale,
			Main: propBool(d.Props, "main_entrance"),
		})
	}
	for _, wd := range f.Windows {
		pt := toPage(wd.Position)
		dx, dy := toDir(wd.Facing)
		fs.Windows = append(fs.Windows, styles.Marker{
			X: pt.X, Y: pt.Y, DX: dx, DY: dy,
			W: propWidth(wd.Props, 1.2) * opts.Scale,
		})
	}
	for _, c := range f.Corners {
		pt := toPage(c.Position)
		fs.Corners = append(fs.Corners, styles.Marker{
			X: pt.X, Y: pt.Y,
			W: propWidth(c.Props, 0.15) * opts.Scale,
		})
	}

	if opts.ShowLabels {
		fs.Labels = append(fs.Labels, styles.Label{
			X:    offsetX,
			Y:    opts.Margin + h + 16,
			Text: fmt.Sprintf("floor %d  (%d doors, %d windows)", f.Index, len(f.Doors), len(f.Windows)),
		})
	}

	return fs, w, h
}

// propWidth reads a width from a flattened property bundle, falling
// back when the bundle is missing or malformed.
func propWidth(props map[string]any, fallback float64) float64 {
	if w, ok := props["width"].(float64); ok && w > 0 {
		return w
	}
	return fallback
}

func propBool(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}
