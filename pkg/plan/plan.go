// Package plan defines the serializable snapshot of a generated
// building. A plan is the interchange format between the generator
// and its consumers: renderers, exporters, the HTTP API, and the
// store all speak plan documents. The format carries BSON tags for
// document storage and is stable enough to hash for cache keys.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/facade/pkg/cache"
	"github.com/matzehuels/facade/pkg/core/building"
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/errors"
)

// Point mirrors footprint.Point with storage tags.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Door is a serialized door placement.
type Door struct {
	EdgeIndex int            `json:"edge_index" bson:"edge_index"`
	T         float64        `json:"t" bson:"t"`
	Offset    float64        `json:"offset" bson:"offset"`
	Position  Point          `json:"position" bson:"position"`
	Facing    Point          `json:"facing" bson:"facing"`
	Props     map[string]any `json:"props,omitempty" bson:"props,omitempty"`
}

// Window is a serialized window placement.
type Window struct {
	EdgeIndex int            `json:"edge_index" bson:"edge_index"`
	T         float64        `json:"t" bson:"t"`
	Offset    float64        `json:"offset" bson:"offset"`
	Position  Point          `json:"position" bson:"position"`
	Facing    Point          `json:"facing" bson:"facing"`
	Props     map[string]any `json:"props,omitempty" bson:"props,omitempty"`
}

// Corner is a serialized corner placement.
type Corner struct {
	VertexIndex int            `json:"vertex_index" bson:"vertex_index"`
	Position    Point          `json:"position" bson:"position"`
	Prev        Point          `json:"prev" bson:"prev"`
	Next        Point          `json:"next" bson:"next"`
	Props       map[string]any `json:"props,omitempty" bson:"props,omitempty"`
}

// Floor is one floor of a plan.
type Floor struct {
	Index    int     `json:"index" bson:"index"`
	Height   float64 `json:"height" bson:"height"`
	BaseZ    float64 `json:"base_z" bson:"base_z"`
	Vertices []Point `json:"vertices" bson:"vertices"`

	Doors   []Door   `json:"doors" bson:"doors"`
	Windows []Window `json:"windows" bson:"windows"`
	Corners []Corner `json:"corners" bson:"corners"`

	DroppedDoors   int `json:"dropped_doors,omitempty" bson:"dropped_doors,omitempty"`
	DroppedWindows int `json:"dropped_windows,omitempty" bson:"dropped_windows,omitempty"`
}

// Plan is the complete document: inputs echoed for reproducibility
// plus the generated placements per floor.
type Plan struct {
	Name   string          `json:"name,omitempty" bson:"name,omitempty"`
	Seed   int64           `json:"seed" bson:"seed"`
	Config building.Config `json:"config" bson:"config"`
	Floors []Floor         `json:"floors" bson:"floors"`
}

// FromBuilding generates every floor of b and snapshots the result.
// Cached bundles are reused; uncomputed floors are computed here.
func FromBuilding(b *building.Building, name string) (*Plan, error) {
	p := &Plan{
		Name:   name,
		Seed:   b.Seed(),
		Config: b.Config(),
	}
	for _, f := range b.Floors() {
		bundle, err := f.Elements()
		if err != nil {
			return nil, fmt.Errorf("floor %d: %w", f.Index(), err)
		}
		p.Floors = append(p.Floors, floorFromBundle(f, bundle))
	}
	return p, nil
}

func floorFromBundle(f *building.Floor, b *building.Bundle) Floor {
	out := Floor{
		Index:          f.Index(),
		Height:         f.Height(),
		BaseZ:          f.BaseZ(),
		Vertices:       points(f.Footprint().Vertices()),
		Doors:          make([]Door, len(b.Doors)),
		Windows:        make([]Window, len(b.Windows)),
		Corners:        make([]Corner, len(b.Corners)),
		DroppedDoors:   b.DroppedDoors,
		DroppedWindows: b.DroppedWindows,
	}
	for i, d := range b.Doors {
		out.Doors[i] = Door{
			EdgeIndex: d.EdgeIndex,
			T:         d.T,
			Offset:    d.Offset,
			Position:  point(d.Position),
			Facing:    point(d.Facing),
			Props:     flatten(d.Props),
		}
	}
	for i, w := range b.Windows {
		out.Windows[i] = Window{
			EdgeIndex: w.EdgeIndex,
			T:         w.T,
			Offset:    w.Offset,
			Position:  point(w.Position),
			Facing:    point(w.Facing),
			Props:     flatten(w.Props),
		}
	}
	for i, c := range b.Corners {
		out.Corners[i] = Corner{
			VertexIndex: c.VertexIndex,
			Position:    point(c.Position),
			Prev:        point(c.Prev),
			Next:        point(c.Next),
			Props:       flatten(c.Props),
		}
	}
	return out
}

// flatten converts a typed property bundle into the generic key-value
// form the document format uses. Round-trips through JSON so the
// result matches what a deserialized plan would hold.
func flatten(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

func point(p footprint.Point) Point { return Point{X: p.X, Y: p.Y} }

func points(ps []footprint.Point) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = point(p)
	}
	return out
}

// Marshal serializes a plan as indented JSON. The output is
// deterministic for a given plan, so it doubles as hash input.
func Marshal(p *Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Unmarshal deserializes a plan document.
func Unmarshal(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode plan")
	}
	if len(p.Floors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "plan has no floors")
	}
	return &p, nil
}

// Read decodes a plan from r.
func Read(r io.Reader) (*Plan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// ReadFile loads a plan document from path.
func ReadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "plan file %s", path)
		}
		return nil, err
	}
	return Unmarshal(data)
}

// WriteFile stores a plan document at path.
func WriteFile(p *Plan, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Hash returns the content hash of the plan document, used as cache
// and store key material.
func (p *Plan) Hash() string {
	data, err := Marshal(p)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// FloorCount returns the number of floors.
func (p *Plan) FloorCount() int { return len(p.Floors) }

// Totals sums element counts across floors.
func (p *Plan) Totals() (doors, windows, corners, dropped int) {
	for _, f := range p.Floors {
		doors += len(f.Doors)
		windows += len(f.Windows)
		corners += len(f.Corners)
		dropped += f.DroppedDoors + f.DroppedWindows
	}
	return
}
