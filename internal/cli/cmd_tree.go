package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/holonoms/docwiki/internal/tree"
	"github.com/holonoms/docwiki/internal/util"
)

// newTreeCmd creates the tree command
func newTreeCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [directory]",
		Short: "Print the documentation tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts, args)
			if err != nil {
				return err
			}

			x, err := ws.provider.Index(cmd.Context())
			if err != nil {
				return fmt.Errorf("unable to scan workspace: %w", err)
			}

			out := cmd.OutOrStdout()
			err = tree.Render(out, x.Roots(), tree.RenderOptions{
				Root:   filepath.Base(ws.root),
				Titles: !opts.Raw,
				Color:  useColor(opts),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "\n\n%s\n", util.Plural(len(x.Files()), "document"))
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Show file names instead of titles")

	return cmd
}
