package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/holonoms/docwiki/internal/tree"
)

// newListCmd creates the list command
func newListCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List documents in tree order",
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
			if !opts.Long {
				for _, n := range x.Files() {
					fmt.Fprintln(out, tree.RelativePath(x.Ancestors(n), n))
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tTITLE\tVIEWER\tDESCRIPTION")
			for _, n := range x.Files() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					tree.RelativePath(x.Ancestors(n), n), n.Title, ws.provider.Command(n), n.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "Show title, viewer and description")

	return cmd
}
