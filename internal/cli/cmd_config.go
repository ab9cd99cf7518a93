package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"

	"github.com/holonoms/docwiki/internal/config"
)

// ConfigOption represents a configuration option
type ConfigOption struct {
	Key         string
	Description string
	Default     string
	ValidValues []string // For enumerated values like true/false
	// Parse converts the command-line text into the value stored in the
	// settings file.
	Parse func(string) (any, error)
	// Rules validate the parsed value.
	Rules []validation.Rule
}

var (
	boolValues     = []string{"true", "false"}
	viewerValues   = []string{config.ViewerMarkdown, config.ViewerHTML, config.ViewerPlain, config.ViewerEditor}
	openModeValues = []string{string(config.OpenPreview), string(config.OpenEditor)}
)

// Registry of all available configuration options
var configOptions = []ConfigOption{
	{
		Key:         config.KeySupportedExtensions,
		Description: "Comma-separated file extensions scanned as documents",
		Default:     "md,markdown,txt",
		Parse:       parseList,
		Rules:       []validation.Rule{validation.Required, validation.Each(validation.Required)},
	},
	{
		Key:         config.KeyExcludeGlobs,
		Description: "Comma-separated globs excluded from scans",
		Default:     "**/node_modules/**,**/.git/**",
		Parse:       parseList,
		Rules:       []validation.Rule{validation.Each(validation.Required)},
	},
	{
		Key:         config.KeyMaxSearchDepth,
		Description: "Deepest document level included; 0 disables the limit",
		Default:     "10",
		Parse:       parseInt,
		Rules:       []validation.Rule{validation.Min(0)},
	},
	{
		Key:         config.KeyShowIgnoredFiles,
		Description: "Include files matched by exclude globs and ignore files",
		Default:     "false",
		ValidValues: boolValues,
		Parse:       parseBool,
	},
	{
		Key:         config.KeyShowHiddenFiles,
		Description: "Include dot-prefixed files and folders",
		Default:     "false",
		ValidValues: boolValues,
		Parse:       parseBool,
	},
	{
		Key:         config.KeyDirectorySort,
		Description: "Sibling order below READMEs",
		Default:     string(config.FilesFirst),
		ValidValues: sortPolicies,
		Parse:       parseString,
		Rules:       []validation.Rule{validation.Required, validation.In(stringsToAny(sortPolicies)...)},
	},
	{
		Key:         config.KeyAcronymCasing,
		Description: "Comma-separated words kept in this exact casing in titles",
		Default:     "",
		Parse:       parseList,
		Rules:       []validation.Rule{validation.Each(validation.Required)},
	},
	{
		Key:         config.KeyDefaultOpenMode,
		Description: "What opening a document does: preview or editor",
		Default:     string(config.OpenPreview),
		ValidValues: openModeValues,
		Parse:       parseString,
		Rules:       []validation.Rule{validation.Required, validation.In(stringsToAny(openModeValues)...)},
	},
	{
		Key:         config.KeyOpenWith,
		Description: "Viewer per extension, as ext=viewer pairs (viewers: markdown, html, plain, editor)",
		Default:     "md=markdown,markdown=markdown,txt=plain",
		Parse:       parseMap,
		Rules:       []validation.Rule{validation.Required, validation.Each(validation.In(stringsToAny(viewerValues)...))},
	},
}

// MARK: Sub-commands

// newConfigCmd creates the config command and its subcommands
func newConfigCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage docwiki settings",
	}

	cmd.PersistentFlags().BoolVarP(&opts.Global, "global", "g", false, "Use the per-user settings file")

	// Add subcommands
	cmd.AddCommand(
		newConfigListCmd(opts),
		newConfigGetCmd(opts),
		newConfigSetCmd(opts),
		newConfigUnsetCmd(opts),
	)

	return cmd
}

func newConfigListCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := config.NewStore(opts.Directory)
			if err != nil {
				return fmt.Errorf("unable to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available configuration options:")
			fmt.Fprintln(out)

			for _, option := range configOptions {
				fmt.Fprintf(out, "  %s\n", option.Key)
				fmt.Fprintf(out, "    Description: %s\n", option.Description)
				fmt.Fprintf(out, "    Default: %s\n", option.Default)

				if value, scope, ok := store.Lookup(option.Key); ok {
					fmt.Fprintf(out, "    Current: %s (%s)\n", formatValue(value), scope)
				} else {
					fmt.Fprintf(out, "    Current: %s (default)\n", option.Default)
				}
				fmt.Fprintln(out)
			}

			return nil
		},
	}

	return cmd
}

func newConfigSetCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, opts, args[0], args[1])
		},
		ValidArgsFunction: func(
			_ *cobra.Command,
			args []string,
			_ string,
		) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return configOptionsKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			// For values, provide common completions based on the key
			if len(args) == 1 {
				option := findConfigOption(args[0])
				if option != nil && len(option.ValidValues) > 0 {
					return option.ValidValues, cobra.ShellCompDirectiveNoFileComp
				}
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}

	return cmd
}

func runConfigSet(cmd *cobra.Command, opts *Options, key, raw string) error {
	option, err := requireConfigOption(key)
	if err != nil {
		return err
	}

	value, err := option.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := validation.Validate(value, option.Rules...); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	store, err := config.NewStore(opts.Directory)
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}

	scope := configScope(opts)
	if err := store.Set(scope, key, value); err != nil {
		return fmt.Errorf("unable to set config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (%s)\n", key, formatValue(value), scope)
	return nil
}

func newConfigGetCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			option, err := requireConfigOption(args[0])
			if err != nil {
				return err
			}

			store, err := config.NewStore(opts.Directory)
			if err != nil {
				return fmt.Errorf("unable to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			value, scope, ok := store.Lookup(option.Key)
			if !ok {
				fmt.Fprintf(out, "%s = %s (default)\n", option.Key, option.Default)
				return nil
			}
			fmt.Fprintf(out, "%s = %s (%s)\n", option.Key, formatValue(value), scope)
			return nil
		},
		ValidArgsFunction: completeConfigKeys,
	}

	return cmd
}

func newConfigUnsetCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewStore(opts.Directory)
			if err != nil {
				return fmt.Errorf("unable to load config: %w", err)
			}

			scope := configScope(opts)
			if err := store.Delete(scope, args[0]); err != nil {
				return fmt.Errorf("unable to unset config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Unset %s (%s)\n", args[0], scope)
			return nil
		},
		ValidArgsFunction: completeConfigKeys,
	}

	return cmd
}

// MARK: Helpers

// findConfigOption finds a config option by key
func findConfigOption(key string) *ConfigOption {
	for i := range configOptions {
		if configOptions[i].Key == key {
			return &configOptions[i]
		}
	}
	return nil
}

func requireConfigOption(key string) (*ConfigOption, error) {
	option := findConfigOption(key)
	if option == nil {
		return nil, fmt.Errorf("unknown configuration option: %s\n\nRun 'docwiki config list' to see available options", key)
	}
	return option, nil
}

func configOptionsKeys() []string {
	var keys []string
	for _, option := range configOptions {
		keys = append(keys, option.Key)
	}
	return keys
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return configOptionsKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func configScope(opts *Options) config.Scope {
	if opts.Global {
		return config.ScopeGlobal
	}
	return config.ScopeProject
}

// formatValue prints settings values the way they are typed on the
// command line.
func formatValue(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	case map[string]string:
		pairs := make([]string, 0, len(v))
		for key, val := range v {
			pairs = append(pairs, key+"="+val)
		}
		sort.Strings(pairs)
		return strings.Join(pairs, ",")
	case map[string]any:
		pairs := make([]string, 0, len(v))
		for key, val := range v {
			pairs = append(pairs, fmt.Sprintf("%s=%v", key, val))
		}
		sort.Strings(pairs)
		return strings.Join(pairs, ",")
	default:
		return fmt.Sprint(v)
	}
}

// MARK: Parsers

func parseString(value string) (any, error) {
	return strings.TrimSpace(value), nil
}

func parseBool(value string) (any, error) {
	if value != "true" && value != "false" {
		return nil, fmt.Errorf("value must be either 'true' or 'false', got: %s", value)
	}
	return value == "true", nil
}

func parseInt(value string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("value must be a whole number, got: %s", value)
	}
	return n, nil
}

func parseList(value string) (any, error) {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

func parseMap(value string) (any, error) {
	pairs := map[string]string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, val, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("expected ext=viewer, got: %s", item)
		}
		pairs[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	return pairs, nil
}
