package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facade/pkg/cache"
	"github.com/matzehuels/facade/pkg/core/building"
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/errors"
	"github.com/matzehuels/facade/pkg/observability"
	"github.com/matzehuels/facade/pkg/plan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	generateStart := time.Now()
	p, generateHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, wrapStage(err, "generate")
	}
	result.Plan = p
	result.PlanHash = p.Hash()
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.Floors = p.FloorCount()
	result.Stats.Doors, result.Stats.Windows, result.Stats.Corners, result.Stats.Dropped = p.Totals()
	result.CacheInfo.GenerateHit = generateHit

	r.Logger.Info("generated plan",
		"floors", result.Stats.Floors,
		"doors", result.Stats.Doors,
		"windows", result.Stats.Windows,
		"corners", result.Stats.Corners,
		"dropped", result.Stats.Dropped,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, wrapStage(err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo generates a plan with caching and returns cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*plan.Plan, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	b, err := opts.building()
	if err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.PlanKey(inputHash(b, opts.Name), planKeyOpts(b))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if p, err := plan.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return p, true, nil // Cache hit
			}
			// Corrupt entry, fall through to regenerate
		}
	}
	observability.Cache().OnCacheMiss(ctx, "plan")

	// Generate
	observability.Generation().OnGenerateStart(ctx, opts.Name, b.FloorCount())
	start := time.Now()
	p, err := plan.FromBuilding(b, opts.Name)
	if err != nil {
		observability.Generation().OnGenerateComplete(ctx, opts.Name, 0, time.Since(start), err)
		return nil, false, err
	}
	for _, f := range p.Floors {
		observability.Generation().OnFloorGenerated(ctx, f.Index,
			len(f.Doors), len(f.Windows), len(f.Corners),
			f.DroppedDoors+f.DroppedWindows)
	}
	doors, windows, corners, _ := p.Totals()
	observability.Generation().OnGenerateComplete(ctx, opts.Name,
		doors+windows+corners, time.Since(start), nil)

	// Cache the result
	if data, err := plan.Marshal(p); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan)
		observability.Cache().OnCacheSet(ctx, "plan", len(data))
	}

	return p, false, nil // Cache miss
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*plan.Plan, error) {
	p, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return p, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *plan.Plan, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	planHash := p.Hash()

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	observability.Generation().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(p, opts)
	observability.Generation().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, p *plan.Plan, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// wrapStage adds the stage name to an error without losing its code.
func wrapStage(err error, stage string) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "%s", stage)
}

// planKeyOpts extracts the generation parameters that must be part of
// the plan cache key.
func planKeyOpts(b *building.Building) cache.PlanKeyOpts {
	cfg := b.Config()
	return cache.PlanKeyOpts{
		Seed:          b.Seed(),
		DoorDensity:   cfg.DoorDensity,
		WindowDensity: cfg.WindowDensity,
		EdgeSpacing:   cfg.EdgeSpacing,
		DoorSpacing:   cfg.DoorSpacing,
		WindowSpacing: cfg.WindowSpacing,
		CornerWidth:   cfg.CornerWidth,
		Extra:         cfg.Extra,
	}
}

// inputHash identifies the building geometry: per-floor footprints and
// heights plus the plan name. Everything else lives in PlanKeyOpts.
func inputHash(b *building.Building, name string) string {
	type floorInput struct {
		Vertices []footprint.Point `json:"vertices"`
		Height   float64           `json:"height"`
	}
	in := struct {
		Name   string       `json:"name"`
		Floors []floorInput `json:"floors"`
	}{Name: name}
	for _, f := range b.Floors() {
		in.Floors = append(in.Floors, floorInput{
			Vertices: f.Footprint().Vertices(),
			Height:   f.Height(),
		})
	}
	data, _ := json.Marshal(in)
	return cache.Hash(data)
}
