package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dream-lang/dream-go/compiler"
)

func newCheckCmd() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Show which items survive conditional compilation",
		Long: `Evaluate the cfg attributes of every item in FILE and print whether
each item is included or excluded.

Examples:
  # Default options
  dreamc check items.dream

  # Test build with the json feature
  dreamc check items.dream --test --feature json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			comp := compiler.NewCompiler(compiler.WithLogger(logger))
			items, err := comp.ParseFile(args[0])
			if err != nil {
				return err
			}

			plan, err := comp.Plan(cmd.Context(), items, opts)
			if err != nil {
				return err
			}
			logger.Debug("Options in effect",
				zap.Bool("test", opts.TestMode()),
				zap.Strings("features", opts.Features()))
			writePlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func writePlan(w io.Writer, plan *compiler.Plan) {
	for _, d := range plan.Decisions {
		status := "include"
		if !d.Included {
			status = "exclude"
		}
		fmt.Fprintf(w, "%-8s %s %s\n", status, d.Item.Kind, d.Item.Name)
	}
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}
