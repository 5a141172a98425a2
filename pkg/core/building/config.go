// Package building places doors, windows, and corners on building
// floors. Each floor derives independent seed branches for the three
// element kinds, runs the placement engine per kind, and caches the
// resulting bundle until explicitly invalidated. Generation is a pure
// function of (footprint, floor index, seed, config).
package building

import (
	"github.com/matzehuels/facade/pkg/errors"
)

// Generation defaults. Densities are elements per meter of perimeter,
// spacings are meters.
const (
	DefaultDoorDensity   = 0.05
	DefaultWindowDensity = 0.3
	DefaultEdgeSpacing   = 1.0
	DefaultDoorSpacing   = 2.0
	DefaultWindowSpacing = 1.5
	DefaultCornerWidth   = 0.15

	// minUsableDoor and minUsableWindow are the shortest usable edge
	// spans, after endpoint clearance, that still admit an element.
	minUsableDoor   = 0.5
	minUsableWindow = 0.3

	// DefaultFloorHeight applies when a building gets no height list.
	DefaultFloorHeight = 3.0
)

// Config holds the recognized generation options. Unrecognized
// settings travel in Extra and are handed to property generation
// untouched; placement never reads them.
type Config struct {
	DoorDensity   float64 `json:"door_density" toml:"door_density"`
	WindowDensity float64 `json:"window_density" toml:"window_density"`
	EdgeSpacing   float64 `json:"edge_spacing" toml:"edge_spacing"`
	DoorSpacing   float64 `json:"door_spacing" toml:"door_spacing"`
	WindowSpacing float64 `json:"window_spacing" toml:"window_spacing"`
	CornerWidth   float64 `json:"corner_width" toml:"corner_width"`

	Extra map[string]string `json:"extra,omitempty" toml:"extra"`
}

// IsZero reports whether no typed option is set. Extra is ignored.
func (c Config) IsZero() bool {
	return c.DoorDensity == 0 && c.WindowDensity == 0 &&
		c.EdgeSpacing == 0 && c.DoorSpacing == 0 &&
		c.WindowSpacing == 0 && c.CornerWidth == 0
}

// DefaultConfig returns the config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		DoorDensity:   DefaultDoorDensity,
		WindowDensity: DefaultWindowDensity,
		EdgeSpacing:   DefaultEdgeSpacing,
		DoorSpacing:   DefaultDoorSpacing,
		WindowSpacing: DefaultWindowSpacing,
		CornerWidth:   DefaultCornerWidth,
	}
}

// withDefaults fills zero-valued spacing fields with the package
// defaults. Densities are honored as given: zero density means zero
// elements of that kind. Callers that treat an absent config as
// "use defaults" start from [DefaultConfig] instead.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.EdgeSpacing == 0 {
		c.EdgeSpacing = d.EdgeSpacing
	}
	if c.DoorSpacing == 0 {
		c.DoorSpacing = d.DoorSpacing
	}
	if c.WindowSpacing == 0 {
		c.WindowSpacing = d.WindowSpacing
	}
	if c.CornerWidth == 0 {
		c.CornerWidth = d.CornerWidth
	}
	return c
}

// Validate checks every recognized option. It does not mutate the
// config; call DefaultConfig and overwrite fields to build a valid
// one.
func (c Config) Validate() error {
	if err := errors.ValidateDensity("door_density", c.DoorDensity); err != nil {
		return err
	}
	if err := errors.ValidateDensity("window_density", c.WindowDensity); err != nil {
		return err
	}
	if err := errors.ValidateSpacing("edge_spacing", c.EdgeSpacing); err != nil {
		return err
	}
	if err := errors.ValidateSpacing("door_spacing", c.DoorSpacing); err != nil {
		return err
	}
	if err := errors.ValidateSpacing("window_spacing", c.WindowSpacing); err != nil {
		return err
	}
	return errors.ValidateSpacing("corner_width", c.CornerWidth)
}
