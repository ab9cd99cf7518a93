package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/holonoms/docwiki/internal/config"
	"github.com/holonoms/docwiki/internal/finder"
	"github.com/holonoms/docwiki/internal/ignore"
	"github.com/holonoms/docwiki/internal/provider"
)

// workspace bundles everything a command needs to browse one directory.
type workspace struct {
	root     string
	source   config.Source
	provider *provider.Provider
	logger   *log.Logger
}

// openWorkspace resolves the workspace directory (args[0] wins over --dir)
// and wires finder, ignore source and settings into a provider. extra
// options are applied after the defaults.
func openWorkspace(cmd *cobra.Command, opts *Options, args []string, extra ...provider.Option) (*workspace, error) {
	if len(args) > 0 {
		opts.Directory = args[0]
	}
	if opts.Directory == "" {
		opts.Directory = "."
	}

	root, err := filepath.Abs(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("unable to open workspace: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", opts.Directory)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	source := config.Load(root, logger)

	f, err := finder.New(root, finder.WithGitignore(true), finder.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("unable to create finder: %w", err)
	}

	providerOpts := []provider.Option{
		provider.WithLogger(logger),
		provider.WithRoot(f.Root()),
		provider.WithIgnoreSource(ignore.NewFile(root)),
		provider.WithFrontMatter(opts.FrontMatter),
		provider.WithScanOverride(opts.scanOverride(cmd)),
	}
	p := provider.New(f, source, append(providerOpts, extra...)...)

	return &workspace{
		root:     root,
		source:   source,
		provider: p,
		logger:   logger,
	}, nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "docwiki",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// useColor reports whether output should carry ANSI colors.
func useColor(opts *Options) bool {
	return !opts.NoColor && !color.NoColor
}

// isTerminal reports whether w writes to an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
