package main

import (
	"github.com/spf13/cobra"

	guide "github.com/saltaireguide/directory"
)

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "guide",
		Short:         "Saltaire Guide directory service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "guide.yaml", "path to the YAML config file (optional)")

	root.AddCommand(
		newServeCommand(opts),
		newImportCommand(opts),
		newMigrateCommand(opts),
	)
	return root
}

func (o *rootOptions) load() (guide.Config, error) {
	return guide.LoadConfig(o.configPath)
}
