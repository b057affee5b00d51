package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dream-lang/dream-go/compiler"
	"github.com/dream-lang/dream-go/lint"
)

func newLintCmd() *cobra.Command {
	var malformed string

	cmd := &cobra.Command{
		Use:   "lint FILE",
		Short: "Report cfg conditions that can never hold or are malformed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := lint.ParseMalformedMode(malformed)
			if err != nil {
				return err
			}

			items, err := compiler.NewCompiler(compiler.WithLogger(logger)).ParseFile(args[0])
			if err != nil {
				return err
			}

			issues := lint.LintItems(items, args[0], lint.LintOptions{MalformedMode: mode})
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue.String())
			}
			if lint.HasErrors(issues) {
				return fmt.Errorf("%d lint issue(s) found", len(issues))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&malformed, "malformed", "warn", "Severity for always-false conditions: ignore, warn or error")
	return cmd
}

func init() {
	rootCmd.AddCommand(newLintCmd())
}
