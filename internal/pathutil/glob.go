package pathutil

import (
	"regexp"
	"strings"
)

// Glob is a compiled exclusion pattern. Patterns that cannot be compiled
// fall back to a case-insensitive substring test on the raw pattern.
type Glob struct {
	pattern string
	re      *regexp.Regexp
}

// CompileGlob translates a glob into a case-insensitive matcher.
//
//   - "**" crosses directory boundaries, "*" and "?" stay within a segment
//   - "**/x" matches anywhere, "/x" is anchored to the start of the path
//   - "a/b" (no leading anchor) matches at any directory boundary
//   - "x" (no slash) matches the final path segment only
//   - a trailing "/**" leaves the end of the match open
func CompileGlob(pattern string) Glob {
	var expr strings.Builder
	expr.WriteString("(?i)")

	body := pattern
	switch {
	case strings.HasPrefix(pattern, "**/"):
		expr.WriteString("(^|/)")
		body = pattern[len("**/"):]
	case strings.HasPrefix(pattern, "/"):
		expr.WriteString("^/?")
		body = pattern[1:]
	default:
		expr.WriteString("(^|/)")
	}

	expr.WriteString(translateGlob(body))
	if !strings.HasSuffix(pattern, "/**") {
		expr.WriteString("$")
	}

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return Glob{pattern: pattern}
	}
	return Glob{pattern: pattern, re: re}
}

// Match reports whether path (either separator) matches the glob.
func (g Glob) Match(path string) bool {
	if path == "" || g.pattern == "" {
		return false
	}
	normalized := NormalizePath(path)
	if g.re == nil {
		return strings.Contains(strings.ToLower(normalized), strings.ToLower(g.pattern))
	}
	return g.re.MatchString(normalized)
}

// GlobSet is a list of compiled globs, compiled once per scan.
type GlobSet []Glob

// CompileGlobs compiles every pattern in order.
func CompileGlobs(patterns []string) GlobSet {
	set := make(GlobSet, 0, len(patterns))
	for _, p := range patterns {
		set = append(set, CompileGlob(p))
	}
	return set
}

// Match reports whether any glob in the set matches path.
func (s GlobSet) Match(path string) bool {
	for _, g := range s {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// MatchesAnyGlob reports whether path matches any of patterns. An empty path
// or an empty pattern list never matches.
func MatchesAnyGlob(path string, patterns []string) bool {
	if path == "" || len(patterns) == 0 {
		return false
	}
	return CompileGlobs(patterns).Match(path)
}

func translateGlob(glob string) string {
	var out strings.Builder
	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				out.WriteString(".*")
				i++
				continue
			}
			out.WriteString("[^/]*")
		case '?':
			out.WriteString("[^/]")
		default:
			out.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}
	return out.String()
}
