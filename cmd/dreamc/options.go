package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dream-lang/dream-go/config"
)

// optionFlags are the flags shared by every command that evaluates cfg attributes.
type optionFlags struct {
	configPath string
	test       bool
	features   []string
}

func (f *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Compile options file (.yaml or .json)")
	cmd.Flags().BoolVar(&f.test, "test", false, "Compile in test mode")
	cmd.Flags().StringSliceVarP(&f.features, "feature", "f", nil, "Enable a feature (repeatable)")
}

// resolve loads the config file, if any, and applies flag overrides.
func (f *optionFlags) resolve(cmd *cobra.Command) (config.CompileOptions, error) {
	opts := config.New()
	if f.configPath != "" {
		cfg, err := config.Load(f.configPath)
		if err != nil && !errors.Is(err, config.ErrNoConfig) {
			return opts, err
		}
		if err == nil {
			opts, err = cfg.Options(filepath.Dir(f.configPath))
			if err != nil {
				return opts, fmt.Errorf("config %s: %w", f.configPath, err)
			}
		}
	}
	return f.apply(cmd, opts), nil
}

func (f *optionFlags) apply(cmd *cobra.Command, opts config.CompileOptions) config.CompileOptions {
	if cmd.Flags().Changed("test") {
		opts = opts.SetTestMode(f.test)
	}
	for _, name := range f.features {
		opts = opts.EnableFeature(name)
	}
	return opts
}
