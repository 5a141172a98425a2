// Package pipeline provides the core generation pipeline for Facade.
//
// This package implements the complete generate → render pipeline that
// can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: Place doors, windows, and corners on the building's
//     floors and produce a plan document
//  2. Render: Generate output in various formats (SVG, PNG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Name:     "warehouse",
//	    Vertices: square,
//	    Floors:   3,
//	    Seed:     12345,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Generate only
//	p, err := runner.Generate(ctx, opts)
//
//	// Render an existing plan
//	artifacts, err := runner.Render(ctx, p, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facade/pkg/cache"
	"github.com/matzehuels/facade/pkg/core/building"
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/core/render/floorplan"
	"github.com/matzehuels/facade/pkg/core/render/floorplan/styles"
	"github.com/matzehuels/facade/pkg/errors"
	"github.com/matzehuels/facade/pkg/plan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFloors is the floor count when neither Floors nor Heights
	// is given.
	DefaultFloors = 1

	// DefaultSeed is the default base seed for reproducibility.
	DefaultSeed = int64(42)

	// DefaultScale is the default pixels-per-meter factor for rendering.
	DefaultScale = floorplan.DefaultScale
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.NameBlueprint

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	styles.NameBlueprint: true,
	styles.NameSimple:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Name        string            `json:"name,omitempty"`
	Vertices    []footprint.Point `json:"vertices,omitempty"`     // footprint shared by every floor
	Floors      int               `json:"floors,omitempty"`       // floor count when Heights is empty
	FloorHeight float64           `json:"floor_height,omitempty"` // uniform height when Heights is empty
	Heights     []float64         `json:"heights,omitempty"`      // per-floor heights (overrides Floors)
	Seed        int64             `json:"seed,omitempty"`
	Config      building.Config   `json:"config,omitempty"`
	Refresh     bool              `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Floor      *int     `json:"floor,omitempty"` // nil renders all floors
	ShowLabels bool     `json:"show_labels,omitempty"`
	ShowGrid   bool     `json:"show_grid,omitempty"`

	// Runtime options (not serialized)
	Building *building.Building `json:"-"` // pre-built building, bypasses Vertices/Floors/Heights
	Logger   *log.Logger        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the generated plan document.
	Plan *plan.Plan

	// PlanHash is the content hash of the plan.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Floors       int
	Doors        int
	Windows      int
	Corners      int
	Dropped      int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the plan came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: blueprint, simple)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks required fields for plan generation.
func (o *Options) ValidateForGenerate() error {
	if o.Building == nil && len(o.Vertices) < 3 {
		return errors.New(errors.ErrCodeInvalidInput,
			"vertices are required (at least 3), got %d", len(o.Vertices))
	}

	// Generate defaults
	if o.Floors == 0 && len(o.Heights) == 0 {
		o.Floors = DefaultFloors
	}
	if o.FloorHeight == 0 {
		o.FloorHeight = building.DefaultFloorHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if err := errors.ValidateSeed(o.Seed); err != nil {
		return err
	}
	if o.Config.IsZero() {
		extra := o.Config.Extra
		o.Config = building.DefaultConfig()
		o.Config.Extra = extra
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// FloorIndex returns the selected floor index, or floorplan.AllFloors
// when no single floor was requested.
func (o *Options) FloorIndex() int {
	if o.Floor == nil {
		return floorplan.AllFloors
	}
	return *o.Floor
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		Scale:      o.Scale,
		Floor:      o.FloorIndex(),
		ShowLabels: o.ShowLabels,
		ShowGrid:   o.ShowGrid,
	}
}

// building resolves the building to generate from. A pre-built
// Building takes precedence over the serializable inputs.
func (o *Options) building() (*building.Building, error) {
	if o.Building != nil {
		return o.Building, nil
	}
	fp, err := footprint.New(o.Vertices)
	if err != nil {
		return nil, err
	}
	if len(o.Heights) > 0 {
		fps := make([]*footprint.Footprint, len(o.Heights))
		for i := range fps {
			fps[i] = fp
		}
		return building.New(fps, o.Heights, o.Seed, o.Config)
	}
	return building.NewUniform(fp, o.Floors, o.FloorHeight, o.Seed, o.Config)
}
