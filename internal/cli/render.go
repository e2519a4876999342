package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineagemap/pkg/pipeline"
	"github.com/matzehuels/lineagemap/pkg/render/tree/styles"
)

// renderCommand creates the render command: family document to artifacts in
// one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in         familyInput
		formatsStr string
		output     string
		noCache    bool
	)
	opts := layoutOptions()

	cmd := &cobra.Command{
		Use:   "render [family.json]",
		Short: "Render a family document to SVG, JSON or DOT",
		Long: `Render a family document to SVG, JSON or DOT.

Runs the full pipeline: index the family, compute the layout, route the
connectors, and render every requested format. Use "-" to read the document
from stdin.

Examples:
  lineagemap render family.json
  lineagemap render family.json -f svg,json --style sepia --panzoom
  lineagemap render --sample kennedy -o kennedy.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.path = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := c.applyConfigGeometry(cmd, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), in, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&in.sample, "sample", "", "use a built-in sample instead of a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: tree (default), nodelink")
	addRenderFlags(cmd, &opts)
	addGeometryFlags(cmd, &opts)

	return cmd
}

// addRenderFlags registers the flags that only affect rendering.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.StringVar(&opts.Style, "style", opts.Style, "visual style: "+strings.Join(styles.Names(), ", "))
	f.BoolVar(&opts.Unions, "unions", opts.Unions, "draw a dot at each union")
	f.BoolVar(&opts.PanZoom, "panzoom", opts.PanZoom, "embed pan and zoom script in the SVG")
}

// runRender loads the family and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, in familyInput, opts pipeline.Options, output string, noCache bool) error {
	doc, err := c.load(ctx, in)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Family = in.name()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.Family))
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("Rendered " + opts.Family)

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      outputBase(in, output),
		output:    output,
	}); err != nil {
		return err
	}
	printStats(result.Stats.Persons, result.Stats.Unions, result.Stats.Warnings, result.CacheInfo.LayoutHit)
	printWarnings(result.Layout.Warnings, 5)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// parseFormats parses the --format flag. An empty value means svg.
func parseFormats(s string) []string {
	if formats := pipeline.ParseFormats(s); len(formats) > 0 {
		return formats
	}
	return []string{pipeline.FormatSVG}
}

// readInput reads a file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// baseName returns the file name of path without directory or extension.
func baseName(path string) string {
	if path == "" || path == "-" {
		return "family"
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, ".layout")
}

// outputBase derives the output path without extension. An explicit output
// wins (minus a known format extension); otherwise the input path is used.
func outputBase(in familyInput, output string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if in.path == "" || in.path == "-" {
		return in.name()
	}
	base := strings.TrimSuffix(in.path, filepath.Ext(in.path))
	return strings.TrimSuffix(base, ".layout")
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string
	output    string // explicit path, used as is for a single format
}

// writeArtifacts writes each artifact to <base>.<format>, or to output when
// exactly one format was requested.
func writeArtifacts(p artifactWriteParams) error {
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := p.base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
