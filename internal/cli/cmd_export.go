package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/holonoms/docwiki/internal/bundle"
	"github.com/holonoms/docwiki/internal/provider"
	"github.com/holonoms/docwiki/internal/util"
)

const defaultOutputFile = "docwiki.txt"

// newExportCmd creates the export command
func newExportCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [directory]",
		Short: "Write every document into a single file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.OutputFile == "" {
				opts.OutputFile = defaultOutputFile
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exporting documentation to '%s'...\n", opts.OutputFile)
			size, err := runExport(cmd, opts, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported '%s' (%s)\n", opts.OutputFile, util.FormatSize(size))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "", "Output file (default: "+defaultOutputFile+")")

	return cmd
}

func runExport(cmd *cobra.Command, opts *Options, args []string) (int64, error) {
	output, err := filepath.Abs(opts.OutputFile)
	if err != nil {
		return 0, fmt.Errorf("unable to resolve output file: %w", err)
	}

	// Always leave the output file out, it may sit inside the workspace
	ws, err := openWorkspace(cmd, opts, args, provider.WithSkipPaths(output))
	if err != nil {
		return 0, err
	}

	x, err := ws.provider.Index(cmd.Context())
	if err != nil {
		return 0, fmt.Errorf("unable to scan workspace: %w", err)
	}

	b := bundle.New(ws.provider.Documents(), x.Roots(), bundle.Options{
		Root:   filepath.Base(ws.root),
		Logger: ws.logger,
	})

	size, err := b.WriteFile(output)
	if err != nil {
		return 0, fmt.Errorf("unable to export documents: %w", err)
	}
	return size, nil
}
