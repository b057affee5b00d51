package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dream-lang/dream-go/compiler"
	"github.com/dream-lang/dream-go/config"
)

func newWatchCmd() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-run check whenever the compile options file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.configPath == "" {
				return fmt.Errorf("--config is required for watch")
			}

			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			comp := compiler.NewCompiler(compiler.WithLogger(logger))
			items, err := comp.ParseFile(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			run := func(snap *config.Snapshot) {
				plan, err := comp.Plan(ctx, items, snap.Options)
				if err != nil {
					return
				}
				fmt.Fprintf(out, "# options v%d\n", snap.Version)
				writePlan(out, plan)
			}

			store := config.NewStore(opts)
			run(store.Load())

			watcher, err := config.NewWatcher(flags.configPath, store,
				config.WithLogger(logger),
				config.OnReload(func(snap *config.Snapshot) {
					// Flags keep overriding the reloaded file.
					run(&config.Snapshot{Version: snap.Version, Options: flags.apply(cmd, snap.Options)})
				}),
			)
			if err != nil {
				return err
			}
			return watcher.Run(ctx)
		},
	}
	flags.register(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newWatchCmd())
}
