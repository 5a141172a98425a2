package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	planio "github.com/matzehuels/facade/pkg/io"
	"github.com/matzehuels/facade/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file (single format) or base path (multiple)
	formats    string // comma-separated output formats
	style      string // visual style: blueprint or simple
	scale      float64
	floor      int  // floor index; negative renders all floors
	allFloors  bool // set when --floor was not given
	showLabels bool
	showGrid   bool
	noCache    bool
}

// renderCommand creates the render command for drawing plan documents.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		style:      pipeline.DefaultStyle,
		scale:      pipeline.DefaultScale,
		showLabels: true,
	}

	cmd := &cobra.Command{
		Use:   "render [plan.json]",
		Short: "Render a plan to SVG, PNG, JSON, or DOT",
		Long: `Render draws a generated plan document. The floor-plan formats (svg,
png, json) show each floor's outline with door and window ticks; the
dot format emits the generation structure for Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.allFloors = !cmd.Flags().Changed("floor")
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: blueprint (default), simple")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixels per meter")
	cmd.Flags().IntVar(&opts.floor, "floor", 0, "render a single floor index (default: all floors)")
	cmd.Flags().BoolVar(&opts.showLabels, "labels", opts.showLabels, "draw floor captions")
	cmd.Flags().BoolVar(&opts.showGrid, "grid", false, "draw a 1-meter grid")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if err := pipeline.ValidateStyle(opts.style); err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	p, err := planio.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Info("loaded plan", "name", p.Name, "floors", p.FloorCount())

	pipeOpts := pipeline.Options{
		Formats:    formats,
		Style:      opts.style,
		Scale:      opts.scale,
		ShowLabels: opts.showLabels,
		ShowGrid:   opts.showGrid,
		Logger:     c.Logger,
	}
	if !opts.allFloors {
		floor := opts.floor
		pipeOpts.Floor = &floor
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinner(ctx, fmt.Sprintf("Rendering %s", strings.Join(formats, ", ")))
	spin.Start()
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, p, pipeOpts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	status := iconFresh
	if hit {
		status = iconCached
	}
	printSuccess("Rendered %d artifact(s) (%s)", len(artifacts), status)

	base := basePath(opts.output, input)
	for _, format := range formats {
		path := outputPath(base, opts.output, format, len(formats))
		if err := planio.WriteArtifact(artifacts[format], path); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from the input file.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath picks the file name for one artifact. A single format
// honors an explicit --output verbatim (including "-" for stdout).
func outputPath(base, output, format string, formatCount int) string {
	if formatCount == 1 && output != "" {
		return output
	}
	return base + "." + format
}
