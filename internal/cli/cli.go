// Package cli provides the command-line interface for docwiki.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/holonoms/docwiki/internal/config"
)

var (
	// Default version for development/non-release builds
	// GoReleaser overrides this for release builds with the git tag.
	version = "dev"
)

// NewRootCmd creates the root command with all subcommands. opts receives
// the parsed flags.
func NewRootCmd(opts *Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "docwiki [directory]",
		Short:        "Browse a workspace's documentation as a tree",
		Version:      version,
		SilenceUsage: true,
		// NB: an explicit Args validator keeps `docwiki docs/` from being
		// read as an unknown subcommand.
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.Validate()
		},
		// When no subcommand is supplied, print the tree
		RunE: newTreeCmd(opts).RunE,
	}

	// Tree's own flags, so `docwiki [dir]` accepts everything `docwiki tree` does
	rootCmd.Flags().BoolVar(&opts.Raw, "raw", false, "Show file names instead of titles")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.Directory, "dir", "C", ".", "Workspace directory")
	flags.StringVar(&opts.Sort, "sort", "", "Sibling order: files-first, folders-first or alphabetical")
	flags.BoolVar(&opts.ShowHidden, "show-hidden", false, "Include dot-prefixed files and folders")
	flags.BoolVar(&opts.ShowIgnored, "show-ignored", false, "Skip exclude globs and ignore files")
	flags.IntVar(&opts.MaxDepth, "max-depth", 0, "Deepest document level to include (0 for unlimited)")
	flags.StringSliceVar(&opts.Acronyms, "acronym", nil, "Words to keep in a fixed casing in titles (repeatable)")
	flags.StringSliceVar(&opts.Extensions, "ext", nil, "Document extensions to scan (repeatable)")
	flags.BoolVar(&opts.FrontMatter, "front-matter", false, "Read titles and descriptions from YAML front matter")
	flags.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log scan details to stderr")

	rootCmd.AddCommand(
		newTreeCmd(opts),
		newListCmd(opts),
		newOpenCmd(opts),
		newFindCmd(opts),
		newExportCmd(opts),
		newConfigCmd(opts),
	)

	_ = rootCmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return sortPolicies, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

var sortPolicies = []string{string(config.FilesFirst), string(config.FoldersFirst), string(config.Alphabetical)}
