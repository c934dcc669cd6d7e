package main

import (
	"fmt"

	"github.com/spf13/cobra"

	guide "github.com/saltaireguide/directory"
)

func newMigrateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			module, err := guide.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer module.Close()

			applied, err := module.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			return nil
		},
	}
}
