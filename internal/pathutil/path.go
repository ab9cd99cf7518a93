// Package pathutil holds the path primitives shared by the scanner and the
// tree builder: separator normalization, segment depth, hidden-segment
// detection and case-insensitive glob matching. Every function is total:
// malformed input yields a zero value rather than an error.
package pathutil

import (
	"strings"
)

// NormalizePath converts every backslash to a forward slash.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	return strings.ReplaceAll(path, `\`, "/")
}

// Segments splits a path on either separator and drops empty segments, so
// leading, trailing and doubled slashes never produce blank names.
func Segments(path string) []string {
	parts := strings.Split(NormalizePath(path), "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// PathDepth returns the number of non-empty segments in path. The empty path
// and the root path have depth 0.
func PathDepth(path string) int {
	return len(Segments(path))
}

// IsHiddenSegment reports whether any segment of path is dot-prefixed.
// ".", ".." and names ending in a dot ("file.") are never hidden.
func IsHiddenSegment(path string) bool {
	if path == "" {
		return false
	}
	for _, part := range strings.FieldsFunc(path, isSeparator) {
		if len(part) > 1 && part[0] == '.' && !strings.HasSuffix(part, ".") {
			return true
		}
	}
	return false
}

// FileName returns the final segment of path, or "" when there is none.
func FileName(path string) string {
	parts := strings.Split(NormalizePath(path), "/")
	return parts[len(parts)-1]
}

// DirName returns the name of the directory directly containing path.
func DirName(path string) string {
	parts := strings.Split(NormalizePath(path), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// CommonDir returns the longest directory prefix shared by every path,
// considering directory segments only. The filename is never part of the
// prefix, so a single nested file cannot shorten it.
func CommonDir(paths []string) []string {
	var common []string
	for i, path := range paths {
		segments := Segments(path)
		if len(segments) > 0 {
			segments = segments[:len(segments)-1]
		}
		if i == 0 {
			common = segments
			continue
		}
		n := 0
		for n < len(common) && n < len(segments) && common[n] == segments[n] {
			n++
		}
		common = common[:n]
	}
	return common
}

// TrimBase returns the segments of path that follow base. Paths outside
// base are returned whole.
func TrimBase(path string, base []string) []string {
	segments := Segments(path)
	if len(base) == 0 || len(segments) < len(base) {
		return segments
	}
	for i, part := range base {
		if segments[i] != part {
			return segments
		}
	}
	return segments[len(base):]
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
