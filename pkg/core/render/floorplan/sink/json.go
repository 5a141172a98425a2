package sink

import (
	"encoding/json"

	"github.com/matzehuels/facade/pkg/core/render/floorplan"
)

// jsonOutput wraps a scene with the style name so an external tool
// can re-render it faithfully.
type jsonOutput struct {
	Style string `json:"style,omitempty"`
	floorplan.Scene
}

// JSONOption configures JSON rendering.
type JSONOption func(*jsonOutput)

// WithJSONStyle records the style name in the output.
func WithJSONStyle(name string) JSONOption {
	return func(o *jsonOutput) { o.Style = name }
}

// RenderJSON exports the computed scene as pretty-printed JSON. This
// is the interchange format for external renderers: all geometry is
// already in page space, so a consumer only draws primitives.
func RenderJSON(scene floorplan.Scene, opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{Scene: scene}
	for _, opt := range opts {
		opt(&out)
	}
	return json.MarshalIndent(out, "", "  ")
}
