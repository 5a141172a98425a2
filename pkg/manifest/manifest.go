// Package manifest loads building manifests from TOML files.
//
// A manifest describes a building completely: name, base seed,
// generation parameters, and one block per floor with its height and
// footprint vertices. Floors that omit vertices inherit the footprint
// of the previous floor, so a tower of identical floors only spells
// its polygon out once:
//
//	name = "warehouse"
//	seed = 12345
//
//	[params]
//	door_density = 0.05
//	window_density = 0.3
//
//	[properties]
//	cladding = "brick"
//
//	[[floor]]
//	height = 4.0
//	vertices = [[0.0, 0.0], [30.0, 0.0], [30.0, 20.0], [0.0, 20.0]]
//
//	[[floor]]
//	height = 3.0
package manifest

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/facade/pkg/core/building"
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/errors"
	"github.com/matzehuels/facade/pkg/pipeline"
)

// Manifest is a parsed building manifest.
type Manifest struct {
	Name       string            `toml:"name"`
	Seed       int64             `toml:"seed"`
	Params     building.Config   `toml:"params"`
	Properties map[string]string `toml:"properties"`
	Floor      []FloorSpec       `toml:"floor"`
}

// FloorSpec is one [[floor]] block.
type FloorSpec struct {
	Height   float64     `toml:"height"`
	Vertices [][]float64 `toml:"vertices"`
}

// Load reads and validates a manifest from a TOML file.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open manifest: %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads and validates a manifest from a reader.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	md, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"unknown manifest keys: %s", strings.Join(keys, ", "))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems. Load and
// Parse call this; it is exported for manifests built in code.
func (m *Manifest) Validate() error {
	if err := errors.ValidatePlanName(m.Name); err != nil {
		return err
	}
	if err := errors.ValidateSeed(m.Seed); err != nil {
		return err
	}
	if err := m.Params.Validate(); err != nil {
		return err
	}
	if len(m.Floor) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest needs at least one [[floor]] block")
	}
	if len(m.Floor[0].Vertices) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "first floor must define vertices")
	}
	for i, f := range m.Floor {
		if f.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidManifest,
				"floor %d height must be positive, got %g", i, f.Height)
		}
		if len(f.Vertices) > 0 && len(f.Vertices) < 3 {
			return errors.New(errors.ErrCodeInvalidManifest,
				"floor %d needs at least 3 vertices, got %d", i, len(f.Vertices))
		}
		for j, v := range f.Vertices {
			if len(v) != 2 {
				return errors.New(errors.ErrCodeInvalidManifest,
					"floor %d vertex %d must be [x, y], got %d values", i, j, len(v))
			}
		}
	}
	return nil
}

// Config returns the generation parameters with the manifest's
// properties folded into the extra bundle. A manifest without any
// [params] values gets the package defaults.
func (m *Manifest) Config() building.Config {
	cfg := m.Params
	if cfg.IsZero() {
		cfg = building.DefaultConfig()
	}
	if len(cfg.Extra)+len(m.Properties) > 0 {
		// Fresh map: the struct copy above still aliases Params.Extra,
		// and merging in place would mutate the parsed manifest.
		merged := make(map[string]string, len(cfg.Extra)+len(m.Properties))
		for k, v := range cfg.Extra {
			merged[k] = v
		}
		for k, v := range m.Properties {
			merged[k] = v
		}
		cfg.Extra = merged
	}
	return cfg
}

// Building constructs the building the manifest describes.
func (m *Manifest) Building() (*building.Building, error) {
	heights := make([]float64, len(m.Floor))
	footprints := make([]*footprint.Footprint, len(m.Floor))

	var prev *footprint.Footprint
	for i, f := range m.Floor {
		heights[i] = f.Height
		if len(f.Vertices) == 0 {
			footprints[i] = prev
			continue
		}
		pts := make([]footprint.Point, len(f.Vertices))
		for j, v := range f.Vertices {
			pts[j] = footprint.Point{X: v[0], Y: v[1]}
		}
		fp, err := footprint.New(pts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "floor %d footprint", i)
		}
		footprints[i] = fp
		prev = fp
	}

	return building.New(footprints, heights, m.Seed, m.Config())
}

// Options converts the manifest into pipeline options. Render settings
// are left at their defaults for the caller to fill in.
func (m *Manifest) Options() (pipeline.Options, error) {
	b, err := m.Building()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Name:     m.Name,
		Seed:     m.Seed,
		Config:   m.Config(),
		Building: b,
	}, nil
}
