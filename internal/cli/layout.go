package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing family layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in      familyInput
		output  string
		noCache bool
	)
	opts := layoutOptions()

	cmd := &cobra.Command{
		Use:   "layout [family.json]",
		Short: "Compute the family-tree layout of a family document",
		Long: `Compute the family-tree layout of a family document.

The output is a layout.json file (same format as 'render -f json') holding
card positions, routed connector paths and stats. Render it with
'lineagemap visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.path = args[0]
			}
			if err := c.applyConfigGeometry(cmd, &opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), in, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&in.sample, "sample", "", "use a built-in sample instead of a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: tree (default), nodelink")
	addGeometryFlags(cmd, &opts)

	return cmd
}

// addGeometryFlags registers the layout geometry flags shared by layout and
// render. Defaults come from the loaded config.
func addGeometryFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.Float64Var(&opts.Layout.CardWidth, "card-width", opts.Layout.CardWidth, "card width")
	f.Float64Var(&opts.Layout.CardHeight, "card-height", opts.Layout.CardHeight, "card height")
	f.Float64Var(&opts.Layout.RankGap, "rank-gap", opts.Layout.RankGap, "vertical gap between generations")
	f.Float64Var(&opts.Layout.SiblingGap, "sibling-gap", opts.Layout.SiblingGap, "gap between sibling subtrees")
	f.BoolVar(&opts.Layout.Curved, "curved", opts.Layout.Curved, "draw child connectors as curves")
	f.BoolVar(&opts.Layout.StrictRoots, "strict-roots", opts.Layout.StrictRoots, "keep married-in partners on the top row")
}

// runLayout loads the family, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, in familyInput, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinner(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(in, "") + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	persons, unions := layoutCounts(l)
	printStats(persons, unions, len(l.Warnings), cacheHit)
	printWarnings(l.Warnings, 5)
	printNewline()
	printNextStep("Render", "lineagemap visualize "+outputPath)

	return nil
}

// layoutCounts returns the person and union counts of a layout.
func layoutCounts(l graph.Layout) (persons, unions int) {
	if l.Stats != nil {
		return l.Stats.Persons, l.Stats.Unions
	}
	for _, n := range l.Nodes {
		if n.IsUnion() {
			unions++
		} else {
			persons++
		}
	}
	return persons, unions
}
