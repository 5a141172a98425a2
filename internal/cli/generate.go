package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facade/pkg/core/building"
	"github.com/matzehuels/facade/pkg/core/footprint"
	"github.com/matzehuels/facade/pkg/errors"
	planio "github.com/matzehuels/facade/pkg/io"
	"github.com/matzehuels/facade/pkg/manifest"
	"github.com/matzehuels/facade/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	name        string  // plan name
	footprint   string  // semicolon-separated x,y vertex list
	rect        string  // WxD rectangle shortcut
	floors      int     // floor count when heights is empty
	floorHeight float64 // uniform floor height
	heights     string  // comma-separated per-floor heights
	seed        int64   // base seed
	output      string  // plan output path ("-" for stdout)
	formats     string  // optional direct render formats
	style       string  // render style for direct formats
	noCache     bool    // disable the plan cache
	refresh     bool    // regenerate even on a cache hit

	doorDensity   float64
	windowDensity float64
	edgeSpacing   float64
	doorSpacing   float64
	windowSpacing float64
	cornerWidth   float64
}

// generateCommand creates the generate command.
//
// With a manifest argument the building comes from the TOML file;
// otherwise the footprint flags describe a single building inline.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		rect:          "10x10",
		floors:        1,
		floorHeight:   building.DefaultFloorHeight,
		seed:          pipeline.DefaultSeed,
		output:        "plan.json",
		doorDensity:   building.DefaultDoorDensity,
		windowDensity: building.DefaultWindowDensity,
		edgeSpacing:   building.DefaultEdgeSpacing,
		doorSpacing:   building.DefaultDoorSpacing,
		windowSpacing: building.DefaultWindowSpacing,
		cornerWidth:   building.DefaultCornerWidth,
	}

	cmd := &cobra.Command{
		Use:   "generate [manifest.toml]",
		Short: "Generate a building plan",
		Long: `Generate places doors, windows, and corner trim on a building and
writes the resulting plan document as JSON. The building comes from a
TOML manifest, or from the footprint flags when no manifest is given.
Identical inputs always produce identical plans.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := ""
			if len(args) == 1 {
				manifestPath = args[0]
			}
			return c.runGenerate(cmd.Context(), manifestPath, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "plan name (defaults to the output file stem)")
	cmd.Flags().StringVar(&opts.footprint, "footprint", "", "footprint vertices as x,y;x,y;... (counter-clockwise)")
	cmd.Flags().StringVar(&opts.rect, "rect", opts.rect, "rectangular footprint WxD in meters (ignored with --footprint)")
	cmd.Flags().IntVar(&opts.floors, "floors", opts.floors, "number of floors")
	cmd.Flags().Float64Var(&opts.floorHeight, "floor-height", opts.floorHeight, "uniform floor height in meters")
	cmd.Flags().StringVar(&opts.heights, "heights", "", "per-floor heights, comma-separated (overrides --floors)")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "base seed for deterministic generation")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "plan output path ('-' for stdout)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "also render: svg, png, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "render style: blueprint (default), simple")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the plan cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")

	cmd.Flags().Float64Var(&opts.doorDensity, "door-density", opts.doorDensity, "doors per meter of perimeter (ground floor)")
	cmd.Flags().Float64Var(&opts.windowDensity, "window-density", opts.windowDensity, "windows per meter of perimeter")
	cmd.Flags().Float64Var(&opts.edgeSpacing, "edge-spacing", opts.edgeSpacing, "clearance from edge endpoints in meters")
	cmd.Flags().Float64Var(&opts.doorSpacing, "door-spacing", opts.doorSpacing, "minimum door separation in meters")
	cmd.Flags().Float64Var(&opts.windowSpacing, "window-spacing", opts.windowSpacing, "minimum window separation in meters")
	cmd.Flags().Float64Var(&opts.cornerWidth, "corner-width", opts.cornerWidth, "corner trim width in meters")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, manifestPath string, opts *generateOpts) error {
	pipeOpts, err := buildPipelineOptions(manifestPath, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	p, hit, err := runner.GenerateWithCacheInfo(ctx, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d floors", p.FloorCount()))

	if err := planio.ExportJSON(p, opts.output); err != nil {
		return err
	}

	doors, windows, corners, dropped := p.Totals()
	printSuccess("Plan %s", p.Name)
	printStats(p.FloorCount(), doors, windows, corners, hit)
	if dropped > 0 {
		printWarning("%d placements dropped (crowded edges)", dropped)
	}
	if opts.output != "-" {
		printFile(opts.output)
	}

	if opts.formats == "" {
		return nil
	}

	// Direct render next to the plan document.
	pipeOpts.Formats = parseFormats(opts.formats)
	pipeOpts.Style = opts.style
	artifacts, err := runner.Render(ctx, p, pipeOpts)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(opts.output, filepath.Ext(opts.output))
	if opts.output == "-" {
		base = sanitizeName(p.Name)
	}
	for _, format := range pipeOpts.Formats {
		path := base + "." + format
		if err := planio.WriteArtifact(artifacts[format], path); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// buildPipelineOptions assembles pipeline options from a manifest or
// from the inline footprint flags.
func buildPipelineOptions(manifestPath string, opts *generateOpts) (pipeline.Options, error) {
	if manifestPath != "" {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		pipeOpts, err := m.Options()
		if err != nil {
			return pipeline.Options{}, err
		}
		pipeOpts.Refresh = opts.refresh
		return pipeOpts, nil
	}

	vertices, err := footprintFromFlags(opts)
	if err != nil {
		return pipeline.Options{}, err
	}
	heights, err := parseHeights(opts.heights)
	if err != nil {
		return pipeline.Options{}, err
	}

	name := opts.name
	if name == "" {
		name = sanitizeName(strings.TrimSuffix(filepath.Base(opts.output), filepath.Ext(opts.output)))
	}

	return pipeline.Options{
		Name:        name,
		Vertices:    vertices,
		Floors:      opts.floors,
		FloorHeight: opts.floorHeight,
		Heights:     heights,
		Seed:        opts.seed,
		Refresh:     opts.refresh,
		Config: building.Config{
			DoorDensity:   opts.doorDensity,
			WindowDensity: opts.windowDensity,
			EdgeSpacing:   opts.edgeSpacing,
			DoorSpacing:   opts.doorSpacing,
			WindowSpacing: opts.windowSpacing,
			CornerWidth:   opts.cornerWidth,
		},
	}, nil
}

// footprintFromFlags resolves --footprint or falls back to --rect.
func footprintFromFlags(opts *generateOpts) ([]footprint.Point, error) {
	if opts.footprint != "" {
		return parseFootprint(opts.footprint)
	}
	w, d, err := parseRect(opts.rect)
	if err != nil {
		return nil, err
	}
	return []footprint.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: d}, {X: 0, Y: d}}, nil
}

// parseFootprint parses "x,y;x,y;..." into vertices.
func parseFootprint(s string) ([]footprint.Point, error) {
	var pts []footprint.Point
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"footprint vertex %q must be x,y", pair)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if errX != nil || errY != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"footprint vertex %q has non-numeric coordinates", pair)
		}
		pts = append(pts, footprint.Point{X: x, Y: y})
	}
	if len(pts) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"footprint needs at least 3 vertices, got %d", len(pts))
	}
	return pts, nil
}

// parseRect parses "WxD" into width and depth.
func parseRect(s string) (float64, float64, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "rect %q must be WxD", s)
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	d, errD := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errD != nil || w <= 0 || d <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "rect %q must be WxD with positive sizes", s)
	}
	return w, d, nil
}

// parseHeights parses "3,2.5,4" into a height list. Empty input means
// uniform heights.
func parseHeights(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	heights := make([]float64, len(parts))
	for i, p := range parts {
		h, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || h <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"height %q must be a positive number", p)
		}
		heights[i] = h
	}
	return heights, nil
}

// sanitizeName turns a path stem into a plan name.
func sanitizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return "plan"
	}
	return s
}
