package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nnetplot/pkg/diagram"
	"github.com/matzehuels/nnetplot/pkg/errors"
	"github.com/matzehuels/nnetplot/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single format), base path (several), or "-" for stdout
	formats string // comma-separated output formats
	cache   cacheFlags
	opts    pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [diagram.toml|yaml|json]",
		Short: "Render a diagram document to SVG, PNG, PDF or JSON",
		Long: `Render a diagram document.

The document format is taken from the file extension. With a single output
format, -o names the output file ("-" writes to stdout). With several formats,
-o is a base path and each format gets its own extension.

The diagram type (-t diagram) draws every node and connector; the nodelink
type draws one box per layer with Graphviz. PDF output, and PNG output of the
nodelink type, need rsvg-convert.

Rendered artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &ro, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&ro.opts.VizType, "type", "t", pipeline.DefaultVizType, "visualization type: diagram, nodelink")
	cmd.Flags().Float64Var(&ro.opts.Scale, "scale", 0, "pixels per diagram unit (default: document canvas or 100)")
	cmd.Flags().Float64Var(&ro.opts.Margin, "margin", 0, "margin in diagram units (default: document canvas or 0.2)")
	cmd.Flags().StringVar(&ro.opts.Background, "background", "", "background color (default: document canvas)")
	cmd.Flags().BoolVar(&ro.opts.Detailed, "detailed", false, "show shape and activation in nodelink labels")
	cmd.Flags().BoolVar(&ro.opts.Refresh, "refresh", false, "re-render even if cached")
	ro.cache.register(cmd)

	return cmd
}

// runRender renders input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, ro *renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidatePath(input); err != nil {
		return err
	}
	docFormat, err := diagram.FormatFromPath(input)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", input)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	opts := ro.opts
	opts.Document = data
	opts.DocFormat = docFormat
	opts.Source = filepath.Base(input)
	opts.Formats = pipeline.ParseFormats(ro.formats)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if ro.output == "-" && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx, ro.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	p.done("Rendered "+strings.Join(opts.Formats, ", "), "cached", result.CacheInfo.RenderHit)

	if ro.output == "-" {
		_, err := stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(ro.output, input, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}

	out := newPrinter(stdout)
	out.success("Render complete")
	for _, format := range opts.Formats {
		out.file(paths[format])
	}
	out.stats(result.Stats.DrawStats, cacheStatus(result.CacheInfo.RenderHit))
	for _, w := range result.Diagram.Warnings {
		out.warning("%s", w)
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output uses it verbatim; otherwise the base path gets one
// extension per format.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
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
