package main

import (
	"fmt"

	"github.com/spf13/cobra"

	guide "github.com/saltaireguide/directory"
)

func newImportCommand(root *rootOptions) *cobra.Command {
	var (
		dryRun  bool
		publish bool
		pattern string
	)
	cmd := &cobra.Command{
		Use:   "import [directory]",
		Short: "Import listing Markdown files into the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			dir := cfg.Import.ContentDir
			if len(args) == 1 {
				dir = args[0]
			}
			if !cmd.Flags().Changed("pattern") {
				pattern = cfg.Import.Pattern
			}
			if !cmd.Flags().Changed("publish") {
				publish = cfg.Import.Publish
			}

			module, err := guide.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer module.Close()

			result, err := module.ImportListings(cmd.Context(), guide.ImportListingsCommand{
				Directory: dir,
				Pattern:   pattern,
				Recursive: cfg.Import.Recursive,
				DryRun:    dryRun,
				Publish:   publish,
			})
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "created=%d updated=%d skipped=%d errors=%d\n",
					len(result.Created), len(result.Updated), len(result.Skipped), len(result.Errors))
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and map documents without writing them")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish documents that do not set a status")
	cmd.Flags().StringVar(&pattern, "pattern", "*.md", "glob applied to file names")
	return cmd
}
