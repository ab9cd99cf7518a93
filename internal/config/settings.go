package config

import (
	"math"
	"slices"
)

// Setting keys understood by Resolve and ResolveView.
const (
	KeySupportedExtensions = "supportedExtensions"
	KeyExcludeGlobs        = "excludeGlobs"
	KeyMaxSearchDepth      = "maxSearchDepth"
	KeyShowIgnoredFiles    = "showIgnoredFiles"
	KeyShowHiddenFiles     = "showHiddenFiles"
	KeyDirectorySort       = "directorySort"
	KeyAcronymCasing       = "acronymCasing"
	KeyDefaultOpenMode     = "defaultOpenMode"
	KeyOpenWith            = "openWith"
)

// DirectorySort selects how siblings are ordered below the README-first rule.
type DirectorySort string

// Sort policies.
const (
	FilesFirst   DirectorySort = "files-first"
	FoldersFirst DirectorySort = "folders-first"
	Alphabetical DirectorySort = "alphabetical"
)

// Valid reports whether s is a known policy.
func (s DirectorySort) Valid() bool {
	switch s {
	case FilesFirst, FoldersFirst, Alphabetical:
		return true
	}
	return false
}

// OpenMode selects what a single click on a document does.
type OpenMode string

// Open modes.
const (
	OpenPreview OpenMode = "preview"
	OpenEditor  OpenMode = "editor"
)

// Viewers a document extension can be mapped to in openWith.
const (
	ViewerMarkdown = "markdown"
	ViewerHTML     = "html"
	ViewerPlain    = "plain"
	ViewerEditor   = "editor"
)

// ScanConfiguration is the fully-defaulted settings bundle read once per
// scan cycle.
type ScanConfiguration struct {
	SupportedExtensions []string
	ExcludeGlobs        []string
	// MaxSearchDepth of 0 disables depth filtering.
	MaxSearchDepth   int
	ShowIgnoredFiles bool
	ShowHiddenFiles  bool
	DirectorySort    DirectorySort
	AcronymCasing    []string
}

// ViewConfiguration controls how documents are opened.
type ViewConfiguration struct {
	DefaultOpenMode OpenMode
	OpenWith        map[string]string
}

// DefaultScanConfiguration returns the built-in scan settings.
func DefaultScanConfiguration() ScanConfiguration {
	return ScanConfiguration{
		SupportedExtensions: []string{"md", "markdown", "txt"},
		ExcludeGlobs:        []string{"**/node_modules/**", "**/.git/**"},
		MaxSearchDepth:      10,
		DirectorySort:       FilesFirst,
		AcronymCasing:       []string{},
	}
}

// DefaultViewConfiguration returns the built-in open settings.
func DefaultViewConfiguration() ViewConfiguration {
	return ViewConfiguration{
		DefaultOpenMode: OpenPreview,
		OpenWith: map[string]string{
			"md":       ViewerMarkdown,
			"markdown": ViewerMarkdown,
			"txt":      ViewerPlain,
		},
	}
}

// Resolve reads every scan setting from src, substituting the default for
// any value that is missing or has the wrong type. It never fails.
func Resolve(src Source) ScanConfiguration {
	cfg := DefaultScanConfiguration()
	if src == nil {
		return cfg
	}

	if v, ok := stringList(src.Get(KeySupportedExtensions)); ok {
		cfg.SupportedExtensions = v
	}
	if v, ok := stringList(src.Get(KeyExcludeGlobs)); ok {
		cfg.ExcludeGlobs = v
	}
	if v, ok := nonNegativeInt(src.Get(KeyMaxSearchDepth)); ok {
		cfg.MaxSearchDepth = v
	}
	if v, ok := src.Get(KeyShowIgnoredFiles).(bool); ok {
		cfg.ShowIgnoredFiles = v
	}
	if v, ok := src.Get(KeyShowHiddenFiles).(bool); ok {
		cfg.ShowHiddenFiles = v
	}
	if v, ok := src.Get(KeyDirectorySort).(string); ok && DirectorySort(v).Valid() {
		cfg.DirectorySort = DirectorySort(v)
	}
	if v, ok := stringList(src.Get(KeyAcronymCasing)); ok {
		cfg.AcronymCasing = v
	}

	return cfg
}

// ResolveView reads the open settings from src with the same fallback rules
// as Resolve.
func ResolveView(src Source) ViewConfiguration {
	cfg := DefaultViewConfiguration()
	if src == nil {
		return cfg
	}

	if v, ok := src.Get(KeyDefaultOpenMode).(string); ok && (OpenMode(v) == OpenPreview || OpenMode(v) == OpenEditor) {
		cfg.DefaultOpenMode = OpenMode(v)
	}
	if v, ok := stringMap(src.Get(KeyOpenWith)); ok {
		cfg.OpenWith = v
	}

	return cfg
}

// Clone returns a copy that shares no slices with c.
func (c ScanConfiguration) Clone() ScanConfiguration {
	c.SupportedExtensions = slices.Clone(c.SupportedExtensions)
	c.ExcludeGlobs = slices.Clone(c.ExcludeGlobs)
	c.AcronymCasing = slices.Clone(c.AcronymCasing)
	return c
}

func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return slices.Clone(list), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func stringMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func nonNegativeInt(v any) (int, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		n = int64(x)
	case uint64:
		if x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, false
		}
		n = int64(x)
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
