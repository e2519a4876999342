package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := layoutOptions()

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it. The layout holds every position and connector path, so this step
needs neither the family document nor a new layout pass.

Use 'render' to go directly from a family document to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("style") {
				opts.Style = ""
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot (comma-separated)")
	addRenderFlags(cmd, &opts)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	opts.VizType = l.VizType
	if opts.Style == "" {
		opts.Style = l.Style
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", l.VizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		base:      outputBase(familyInput{path: input}, output),
		output:    output,
	}); err != nil {
		return err
	}
	persons, unions := layoutCounts(l)
	printStats(persons, unions, len(l.Warnings), cacheHit)
	return nil
}
