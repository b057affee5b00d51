package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dream-lang/dream-go/analysis"
	"github.com/dream-lang/dream-go/compiler"
)

func newFeaturesCmd() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "features FILE",
		Short: "Print the item/feature graph as JSON",
		Long: `Print which items are gated on which features, plus features that are
referenced but disabled and enabled features that nothing references.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			items, err := compiler.NewCompiler(compiler.WithLogger(logger)).ParseFile(args[0])
			if err != nil {
				return err
			}

			graph := analysis.BuildFeatureGraph(items, opts.Features())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(graph)
		},
	}
	flags.register(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newFeaturesCmd())
}
