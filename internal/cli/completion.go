package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineagemap/pkg/pipeline"
	"github.com/matzehuels/lineagemap/pkg/render/tree/styles"
	"github.com/matzehuels/lineagemap/pkg/store"
)

// completionCommand prints a shell completion script. Besides subcommands
// and flags, the scripts complete sample ids, styles, formats and
// visualization types.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for lineagemap.

The script completes the subcommands (layout, render, visualize, serve,
samples, browse, cache) and their flags, including built-in sample ids for
--sample and "samples export", style names for --style, formats for
--format and visualization types for --type.

  bash:        source <(lineagemap completion bash)
  zsh:         lineagemap completion zsh > "${fpath[1]}/_lineagemap"
  fish:        lineagemap completion fish > ~/.config/fish/completions/lineagemap.fish
  powershell:  lineagemap completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// flagCompletions maps flag names to the values offered for them.
var flagCompletions = map[string]func() []string{
	"sample": func() []string { return store.AllowedSamples },
	"style":  styles.Names,
	"format": func() []string { return slices.Sorted(maps.Keys(pipeline.ValidFormats)) },
	"type":   func() []string { return slices.Sorted(maps.Keys(pipeline.ValidVizTypes)) },
}

// registerCompletions attaches value completion to every command in the
// tree that defines one of the flags in flagCompletions.
func registerCompletions(cmd *cobra.Command) {
	for name, values := range flagCompletions {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, completeFrom(values, name == "format"))
	}
	for _, sub := range cmd.Commands() {
		registerCompletions(sub)
	}
}

// completeFrom offers values with the prefix being typed. For list flags
// the prefix is the part after the last comma, and earlier entries are kept.
func completeFrom(values func() []string, list bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		head, prefix := "", toComplete
		if i := strings.LastIndex(toComplete, ","); list && i >= 0 {
			head, prefix = toComplete[:i+1], toComplete[i+1:]
		}
		var out []string
		for _, v := range values() {
			if strings.HasPrefix(v, prefix) {
				out = append(out, head+v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeSamples completes the id argument of commands taking a sample.
func completeSamples(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeFrom(flagCompletions["sample"], false)(cmd, args, toComplete)
}
