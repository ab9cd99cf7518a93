package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/holonoms/docwiki/internal/config"
	"github.com/holonoms/docwiki/internal/preview"
	"github.com/holonoms/docwiki/internal/tree"
)

// newOpenCmd creates the open command
func newOpenCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Preview a document, or edit it with --edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts, nil)
			if err != nil {
				return err
			}

			node, err := ws.lookup(cmd, args[0])
			if err != nil {
				return err
			}

			viewer := ws.provider.Command(node)
			switch {
			case opts.Edit:
				viewer = config.ViewerEditor
			case opts.HTML:
				viewer = config.ViewerHTML
			}
			ws.logger.Debug("opening document", "path", node.Path, "viewer", viewer)

			if viewer == config.ViewerEditor {
				return preview.Edit(cmd.Context(), node.Path)
			}

			content, err := os.ReadFile(node.Path)
			if err != nil {
				return fmt.Errorf("unable to read document: %w", err)
			}

			renderOpts := preview.RenderOptions{Title: node.Title, Width: opts.Width}
			if !useColor(opts) || !isTerminal(cmd.OutOrStdout()) {
				renderOpts.Style = "notty"
			}
			return preview.Render(cmd.OutOrStdout(), content, viewer, renderOpts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Edit, "edit", "e", false, "Open in $VISUAL or $EDITOR")
	cmd.Flags().BoolVar(&opts.HTML, "html", false, "Print the document as an HTML page")
	cmd.Flags().IntVarP(&opts.Width, "width", "w", 0, "Wrap terminal output at this width")
	cmd.MarkFlagsMutuallyExclusive("edit", "html")

	return cmd
}

// newFindCmd creates the find command
func newFindCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <file>",
		Short: "Show where a document sits in the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts, nil)
			if err != nil {
				return err
			}

			node, err := ws.lookup(cmd, args[0])
			if err != nil {
				return err
			}

			x, err := ws.provider.Index(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			chain := append(x.Ancestors(node), node)
			for depth, n := range chain {
				indent := ""
				if depth > 0 {
					indent = fmt.Sprintf("%*s└── ", (depth-1)*4, "")
				}
				fmt.Fprintf(out, "%s%s\n", indent, n.Title)
			}
			fmt.Fprintf(out, "\n%s\n", node.Path)
			return nil
		},
	}

	return cmd
}

// lookup resolves a command-line path to a file node of the current tree.
// Relative paths are tried against the working directory first and then
// the workspace root.
func (ws *workspace) lookup(cmd *cobra.Command, arg string) (*tree.Node, error) {
	if _, err := ws.provider.Index(cmd.Context()); err != nil {
		return nil, fmt.Errorf("unable to scan workspace: %w", err)
	}

	candidates := []string{arg}
	if !filepath.IsAbs(arg) {
		if abs, err := filepath.Abs(arg); err == nil {
			candidates = []string{abs}
		}
		candidates = append(candidates, filepath.Join(ws.root, arg))
	}

	for _, path := range candidates {
		if n := ws.provider.FindNodeByPath(path); n != nil {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%s is not a document in %s", arg, ws.root)
}
