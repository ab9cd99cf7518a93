package cli

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"

	"github.com/holonoms/docwiki/internal/config"
)

// Options holds the command-line options shared across commands
type Options struct {
	// Directory is the workspace root. Commands taking a [directory]
	// argument override it.
	Directory string

	// Scan overrides. Each one replaces the configured value only when its
	// flag was given explicitly.
	Sort        string
	ShowHidden  bool
	ShowIgnored bool
	MaxDepth    int
	Acronyms    []string
	Extensions  []string

	// FrontMatter reads titles and descriptions from markdown headers.
	FrontMatter bool

	NoColor bool
	Verbose bool

	// Raw shows file names instead of titles (tree).
	Raw bool
	// Long adds title, viewer and description columns (list).
	Long bool

	// Edit, HTML and Width control open.
	Edit  bool
	HTML  bool
	Width int

	// OutputFile is where export writes.
	OutputFile string

	// Global targets the per-user settings file (config).
	Global bool
}

// Validate checks flag values that cobra cannot type-check.
func (o *Options) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Sort, validation.In(stringsToAny(sortPolicies)...)),
		validation.Field(&o.MaxDepth, validation.Min(0)),
		validation.Field(&o.Width, validation.Min(0)),
		validation.Field(&o.Extensions, validation.Each(validation.Required)),
	)
}

// scanOverride returns the hook that applies explicitly set flags on top
// of the resolved configuration.
func (o *Options) scanOverride(cmd *cobra.Command) func(*config.ScanConfiguration) {
	changed := cmd.Flags().Changed
	return func(cfg *config.ScanConfiguration) {
		if changed("sort") {
			cfg.DirectorySort = config.DirectorySort(o.Sort)
		}
		if changed("show-hidden") {
			cfg.ShowHiddenFiles = o.ShowHidden
		}
		if changed("show-ignored") {
			cfg.ShowIgnoredFiles = o.ShowIgnored
		}
		if changed("max-depth") {
			cfg.MaxSearchDepth = o.MaxDepth
		}
		if changed("acronym") {
			cfg.AcronymCasing = o.Acronyms
		}
		if changed("ext") {
			cfg.SupportedExtensions = o.Extensions
		}
	}
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
