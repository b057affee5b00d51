package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dream-lang/dream-go/compiler"
	"github.com/dream-lang/dream-go/config"
)

func newTestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tests FILE",
		Short: "List test functions and cfg(test)-only items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp := compiler.NewCompiler(compiler.WithLogger(logger))
			items, err := comp.ParseFile(args[0])
			if err != nil {
				return err
			}

			plan, err := comp.Plan(cmd.Context(), items, config.ForTesting())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, item := range plan.Tests {
				fmt.Fprintf(out, "test      %s %s\n", item.Kind, item.Name)
			}
			for _, item := range plan.TestOnly {
				fmt.Fprintf(out, "cfg(test) %s %s\n", item.Kind, item.Name)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newTestsCmd())
}
