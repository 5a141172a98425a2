package pipeline

import (
	"github.com/matzehuels/facade/pkg/core/render/floorplan"
	"github.com/matzehuels/facade/pkg/core/render/floorplan/sink"
	"github.com/matzehuels/facade/pkg/core/render/floorplan/styles"
	"github.com/matzehuels/facade/pkg/core/render/structure"
	"github.com/matzehuels/facade/pkg/errors"
	"github.com/matzehuels/facade/pkg/plan"
)

// Render generates artifacts for every requested format from a plan.
// This is the uncached render stage; use Runner.Render for caching.
func Render(p *plan.Plan, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(p, format, opts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeRender
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		out[format] = data
	}
	return out, nil
}

// renderFormat produces one artifact. The dot format renders the
// generation structure; everything else goes through the floor-plan
// scene with the selected style.
func renderFormat(p *plan.Plan, format string, opts Options) ([]byte, error) {
	if format == FormatDOT {
		return []byte(structure.ToDOT(p)), nil
	}

	style, ok := styles.ByName(opts.Style)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", opts.Style)
	}

	scene, err := floorplan.Build(p, floorplan.Options{
		Scale:      opts.Scale,
		Floor:      opts.FloorIndex(),
		ShowLabels: opts.ShowLabels,
		ShowGrid:   opts.ShowGrid,
	})
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(scene, sink.WithStyle(style)), nil
	case FormatPNG:
		return sink.RenderPNG(scene, sink.WithPNGStyle(style))
	case FormatJSON:
		return sink.RenderJSON(scene, sink.WithJSONStyle(style.Name()))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}
