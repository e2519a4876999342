package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineagemap/pkg/store"
)

// samplesCommand creates the samples command for the built-in families.
func (c *CLI) samplesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSamplesList(cmd.Context())
		},
	}
	cmd.AddCommand(c.samplesExportCommand())
	return cmd
}

func (c *CLI) runSamplesList(ctx context.Context) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	samples := newSamples(cfg)

	printInfo("Built-in samples")
	for _, id := range samples.Names() {
		label := id
		if id == store.DefaultSample {
			label += " (default)"
		}
		doc, err := samples.Get(ctx, id)
		if err != nil {
			printKeyValue(label, StyleDim.Render("not installed"))
			continue
		}
		printKeyValue(label, strconv.Itoa(len(doc.People))+" people")
	}
	return nil
}

// samplesExportCommand creates "samples export", which writes a sample's
// document so it can be edited and rendered as a file.
func (c *CLI) samplesExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Write a sample family document to a file",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: completeSamples,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			doc, err := newSamples(cfg).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := doc.Marshal()
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = store.Resolve(args[0]) + ".json"
			}
			if err := writeFile(path, data); err != nil {
				return err
			}
			if path != "-" {
				printSuccess("Exported %s (%d people)", args[0], len(doc.People))
				printFile(path)
				printNextStep("Render", fmt.Sprintf("lineagemap render %s", path))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <id>.json, - for stdout)")
	return cmd
}
