// Package ignore reads project ignore files. File turns one ignore file into
// exclude globs for the scanner; NewMatcher loads the same rules into a
// go-git matcher for the disk finder. A .docwikiignore at the workspace
// root always takes the place of .gitignore.
package ignore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Candidate ignore file names, in lookup order.
const (
	DocwikiIgnore = ".docwikiignore"
	GitIgnore     = ".gitignore"
)

// File is an ignore-file source rooted at a workspace directory.
type File struct {
	root string
	name string
}

// NewFile returns a source reading root/.docwikiignore when it exists and
// root/.gitignore otherwise.
func NewFile(root string) *File {
	return &File{root: root}
}

// NewNamedFile returns a source reading exactly root/name.
func NewNamedFile(root, name string) *File {
	return &File{root: root, name: name}
}

// Path returns the ignore file that Patterns will read, or "" if none of
// the candidates exist.
func (f *File) Path() string {
	if f.name != "" {
		return filepath.Join(f.root, f.name)
	}
	for _, name := range []string{DocwikiIgnore, GitIgnore} {
		path := filepath.Join(f.root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Patterns returns the ignore file's rules as exclude globs. A missing file
// yields no patterns and no error.
func (f *File) Patterns(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := f.Path()
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}

	return Parse(data), nil
}

// Parse converts ignore-file content into exclude globs.
func Parse(data []byte) []string {
	var globs []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		globs = append(globs, ToGlobs(scanner.Text())...)
	}
	return globs
}

// ToGlobs translates one ignore rule into exclude globs:
//
//	"dist/"    -> "**/dist/**"
//	"/tmp"     -> "**/tmp", "**/tmp/**"
//	"*.log"    -> "**/*.log", "**/*.log/**"
//
// Blank lines, comments and negations produce nothing. Anchors are dropped,
// so a rooted rule also excludes same-named paths deeper down.
func ToGlobs(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return nil
	}

	line = strings.TrimPrefix(line, "/")
	dirOnly := strings.HasSuffix(line, "/")
	line = strings.TrimRight(line, "/")
	if line == "" || line == "**" {
		return nil
	}

	if !strings.HasPrefix(line, "**/") {
		line = "**/" + line
	}
	if dirOnly {
		return []string{line + "/**"}
	}
	return []string{line, line + "/**"}
}

// NewMatcher builds a go-git matcher with the same precedence as File: a
// root .docwikiignore replaces the .gitignore files entirely; otherwise
// every .gitignore under root, nested ones included, is loaded. Paths are
// matched as segment lists relative to root.
func NewMatcher(root string) (gitignore.Matcher, error) {
	data, err := os.ReadFile(filepath.Join(root, DocwikiIgnore))
	switch {
	case err == nil:
		return gitignore.NewMatcher(parsePatterns(data)), nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read %s: %w", DocwikiIgnore, err)
	}

	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore patterns: %w", err)
	}
	return gitignore.NewMatcher(patterns), nil
}

func parsePatterns(data []byte) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns
}
